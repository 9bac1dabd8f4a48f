package ratelimit

import "testing"

func TestAllowRequestPerClient(t *testing.T) {
	rl := NewRateLimiter(3, 100, true)

	for i := 0; i < 3; i++ {
		if !rl.AllowRequest("client-a") {
			t.Fatalf("request %d for client-a should be allowed", i+1)
		}
	}
	if rl.AllowRequest("client-a") {
		t.Error("4th request for client-a should be denied")
	}

	// Another client has its own windows.
	if !rl.AllowRequest("client-b") {
		t.Error("client-b should not be affected by client-a's limit")
	}
}

func TestAllowRequestHourlyLimit(t *testing.T) {
	rl := NewRateLimiter(0, 2, true)

	if !rl.AllowRequest("c") || !rl.AllowRequest("c") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.AllowRequest("c") {
		t.Error("3rd request should exceed hourly limit")
	}
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)

	for i := 0; i < 10; i++ {
		if !rl.AllowRequest("c") {
			t.Fatal("disabled limiter should always allow")
		}
	}

	stats := rl.GetStats()
	if stats.Enabled {
		t.Error("stats should report disabled")
	}
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(10, 100, true)

	rl.AllowRequest("client-a")
	rl.AllowRequest("client-b")

	stats := rl.GetStats()
	if !stats.Enabled {
		t.Error("stats should report enabled")
	}
	if stats.TrackedClients != 2 {
		t.Errorf("TrackedClients = %d, want 2", stats.TrackedClients)
	}
	if stats.LimitPerMinute != 10 || stats.LimitPerHour != 100 {
		t.Errorf("limits = %d/%d, want 10/100", stats.LimitPerMinute, stats.LimitPerHour)
	}
}

func TestReset(t *testing.T) {
	rl := NewRateLimiter(1, 1, true)

	rl.AllowRequest("c")
	if rl.AllowRequest("c") {
		t.Fatal("limit should be hit before reset")
	}

	rl.Reset()
	if !rl.AllowRequest("c") {
		t.Error("request after Reset should be allowed")
	}
}
