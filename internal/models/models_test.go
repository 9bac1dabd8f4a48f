package models

import (
	"testing"
	"time"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to MessageStatus
		want     bool
	}{
		{MessageStatusUnread, MessageStatusRead, true},
		{MessageStatusUnread, MessageStatusResponded, true},
		{MessageStatusRead, MessageStatusResponded, true},
		{MessageStatusRead, MessageStatusUnread, false},
		{MessageStatusResponded, MessageStatusRead, false},
		{MessageStatusResponded, MessageStatusUnread, false},
		{MessageStatusUnread, MessageStatusUnread, false},
	}

	for _, tt := range tests {
		if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidStatusTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPublicView(t *testing.T) {
	agent := Profile{
		ID:           "a1",
		Email:        "agent@example.com",
		PasswordHash: "secret",
		Phone:        "+12025550123",
		Name:         "Agent One",
		Role:         RoleAgent,
		Verified:     true,
	}

	view, ok := agent.PublicView()
	if !ok {
		t.Fatal("agent should have a public view")
	}
	if view.ID != "a1" || view.Name != "Agent One" || !view.Verified {
		t.Errorf("unexpected view %+v", view)
	}

	// Seekers and admins have no public shape at all.
	for _, role := range []Role{RoleSeeker, RoleAdmin} {
		p := Profile{ID: "x", Role: role}
		if _, ok := p.PublicView(); ok {
			t.Errorf("role %s should have no public view", role)
		}
	}
}

func TestMarkArchived(t *testing.T) {
	p := Property{Status: PropertyStatusPublished}
	p.MarkArchived()

	if p.Status != PropertyStatusArchived {
		t.Errorf("status = %s, want archived", p.Status)
	}
	if p.ArchivedAt == nil {
		t.Error("ArchivedAt should be set")
	}
	if p.IsPublished() {
		t.Error("archived listing must not be published")
	}
}

func TestNextIndexRetryDelay(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, 2 * time.Minute},
		{2, 10 * time.Minute},
		{3, 30 * time.Minute},
		{4, 1 * time.Hour},
		{5, 1 * time.Hour},
		{100, 1 * time.Hour},
	}

	for _, tt := range tests {
		if got := NextIndexRetryDelay(tt.attempts); got != tt.want {
			t.Errorf("NextIndexRetryDelay(%d) = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}
