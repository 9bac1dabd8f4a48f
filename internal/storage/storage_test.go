package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"
)

func TestObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		ownerID  string
		propID   string
		filename string
		want     string
		wantErr  bool
	}{
		{"plain", "agent-1", "prop-1", "kitchen.jpg", "agent-1/prop-1/kitchen.jpg", false},
		{"traversal stripped", "agent-1", "prop-1", "../../etc/passwd", "agent-1/prop-1/passwd", false},
		{"nested path reduced to base", "agent-1", "prop-1", "a/b/c.png", "agent-1/prop-1/c.png", false},
		{"missing owner", "", "prop-1", "x.jpg", "", true},
		{"missing property", "agent-1", "", "x.jpg", "", true},
		{"dot filename", "agent-1", "prop-1", ".", "", true},
		{"dotdot filename", "agent-1", "prop-1", "..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectPath(tt.ownerID, tt.propID, tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ObjectPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ObjectPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOwnerOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"agent-1/prop-1/kitchen.jpg", "agent-1"},
		{"agent-1", ""},
		{"", ""},
		{"/leading/slash", ""},
	}

	for _, tt := range tests {
		if got := OwnerOf(tt.path); got != tt.want {
			t.Errorf("OwnerOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCanWrite(t *testing.T) {
	owner := policy.Actor{ID: "agent-1", Role: models.RoleAgent}
	other := policy.Actor{ID: "agent-2", Role: models.RoleAgent}

	if err := CanWrite(owner, "agent-1/prop-1/a.jpg"); err != nil {
		t.Errorf("owner write denied: %v", err)
	}
	if err := CanWrite(other, "agent-1/prop-1/a.jpg"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("foreign write = %v, want ErrPermissionDenied", err)
	}
	if err := CanWrite(policy.Anonymous(), "agent-1/prop-1/a.jpg"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous write = %v, want ErrPermissionDenied", err)
	}
}

func TestDerivedPaths(t *testing.T) {
	thumb, med := DerivedPaths("agent-1/prop-1/kitchen.jpg")
	if thumb != "agent-1/prop-1/kitchen_thumb.jpg" {
		t.Errorf("thumb = %q", thumb)
	}
	if med != "agent-1/prop-1/kitchen_med.jpg" {
		t.Errorf("med = %q", med)
	}

	thumb, med = DerivedPaths("agent-1/prop-1/noext")
	if thumb != "agent-1/prop-1/noext_thumb" || med != "agent-1/prop-1/noext_med" {
		t.Errorf("extensionless derived = %q, %q", thumb, med)
	}
}

func TestStoreSaveAndRemove(t *testing.T) {
	store := NewStore(t.TempDir())
	owner := policy.Actor{ID: "agent-1", Role: models.RoleAgent}

	path, err := store.Save(owner, "agent-1/prop-1/kitchen.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if path != "agent-1/prop-1/kitchen.jpg" {
		t.Errorf("Save() path = %q", path)
	}

	full := filepath.Join(store.root, "agent-1", "prop-1", "kitchen.jpg")
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}

	// Removing also covers derived names that were never produced.
	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove() = %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Error("object still present after Remove")
	}
}

func TestStoreSaveDeniedForForeignPath(t *testing.T) {
	store := NewStore(t.TempDir())
	other := policy.Actor{ID: "agent-2", Role: models.RoleAgent}

	_, err := store.Save(other, "agent-1/prop-1/kitchen.jpg", strings.NewReader("x"))
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("Save() = %v, want ErrPermissionDenied", err)
	}

	// Nothing may be written on a denied save.
	entries, _ := os.ReadDir(store.root)
	if len(entries) != 0 {
		t.Errorf("denied save left %d entries behind", len(entries))
	}
}
