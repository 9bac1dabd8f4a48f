package scheduler

import (
	"sync"
	"testing"
)

// Running is read by stats requests while Start and Stop run on other
// goroutines; the flag must stay consistent under concurrent readers.
func TestIndexWorkerRunningLifecycle(t *testing.T) {
	w := NewIndexWorker(nil, nil)

	if w.Running() {
		t.Fatal("worker should not be running before Start")
	}

	w.Start()
	if !w.Running() {
		t.Fatal("worker should be running after Start")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Running()
			}
		}()
	}

	w.Stop()
	wg.Wait()

	if w.Running() {
		t.Fatal("worker should not be running after Stop")
	}

	// A second Stop must be a no-op, not a double channel close.
	w.Stop()
}
