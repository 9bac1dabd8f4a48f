package policy

import (
	"errors"
	"testing"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
)

func TestCanReadProperty(t *testing.T) {
	owner := Actor{ID: "agent-1", Role: models.RoleAgent}
	other := Actor{ID: "agent-2", Role: models.RoleAgent}
	seeker := Actor{ID: "seeker-1", Role: models.RoleSeeker}

	tests := []struct {
		name  string
		actor Actor
		prop  models.Property
		want  bool
	}{
		{"anonymous sees published", Anonymous(), models.Property{AgentID: "agent-1", Status: models.PropertyStatusPublished}, true},
		{"anonymous does not see draft", Anonymous(), models.Property{AgentID: "agent-1", Status: models.PropertyStatusDraft}, false},
		{"anonymous does not see archived", Anonymous(), models.Property{AgentID: "agent-1", Status: models.PropertyStatusArchived}, false},
		{"owner sees own draft", owner, models.Property{AgentID: "agent-1", Status: models.PropertyStatusDraft}, true},
		{"owner sees own archived", owner, models.Property{AgentID: "agent-1", Status: models.PropertyStatusArchived}, true},
		{"other agent does not see draft", other, models.Property{AgentID: "agent-1", Status: models.PropertyStatusDraft}, false},
		{"other agent sees published", other, models.Property{AgentID: "agent-1", Status: models.PropertyStatusPublished}, true},
		{"seeker does not see draft", seeker, models.Property{AgentID: "agent-1", Status: models.PropertyStatusDraft}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadProperty(tt.actor, &tt.prop); got != tt.want {
				t.Errorf("CanReadProperty() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Ownership wins over status: an owner whose listing is archived still
// reads it even though the public rule alone would deny.
func TestCanReadPropertyOwnerPrecedence(t *testing.T) {
	owner := Actor{ID: "agent-1", Role: models.RoleAgent}
	p := models.Property{AgentID: "agent-1", Status: models.PropertyStatusArchived}

	if !CanReadProperty(owner, &p) {
		t.Fatal("owner should see own archived listing")
	}
}

func TestCanCreateProperty(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		wantErr bool
	}{
		{"agent allowed", Actor{ID: "a1", Role: models.RoleAgent}, false},
		{"seeker denied", Actor{ID: "s1", Role: models.RoleSeeker}, true},
		{"anonymous denied", Anonymous(), true},
		{"admin without agent role denied", Actor{ID: "adm", Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreateProperty(tt.actor)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanCreateProperty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanModifyProperty(t *testing.T) {
	p := models.Property{AgentID: "agent-1", Status: models.PropertyStatusPublished}

	if err := CanModifyProperty(Actor{ID: "agent-1", Role: models.RoleAgent}, &p); err != nil {
		t.Errorf("owner should modify own listing: %v", err)
	}
	if err := CanModifyProperty(Actor{ID: "agent-2", Role: models.RoleAgent}, &p); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("non-owner modify = %v, want ErrPermissionDenied", err)
	}
	if err := CanModifyProperty(Anonymous(), &p); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous modify = %v, want ErrPermissionDenied", err)
	}
}

func TestCanSave(t *testing.T) {
	seeker := Actor{ID: "seeker-1", Role: models.RoleSeeker}
	published := models.Property{AgentID: "agent-1", Status: models.PropertyStatusPublished}
	draft := models.Property{AgentID: "agent-1", Status: models.PropertyStatusDraft}

	if err := CanSave(seeker, &published); err != nil {
		t.Errorf("save of published listing: %v", err)
	}
	if err := CanSave(Anonymous(), &published); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous save = %v, want ErrPermissionDenied", err)
	}

	// An invisible listing must look absent, not forbidden.
	if err := CanSave(seeker, &draft); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("save of invisible listing = %v, want ErrNotFound", err)
	}
}

func TestCanReadSaved(t *testing.T) {
	s := models.SavedProperty{UserID: "seeker-1", PropertyID: "p1"}

	if !CanReadSaved(Actor{ID: "seeker-1", Role: models.RoleSeeker}, &s) {
		t.Error("owner should read own save")
	}
	if CanReadSaved(Actor{ID: "agent-1", Role: models.RoleAgent}, &s) {
		t.Error("listing agent must not see who saved")
	}
	if CanReadSaved(Anonymous(), &s) {
		t.Error("anonymous must not read saves")
	}
}

func TestCanInsertMessage(t *testing.T) {
	seeker := Actor{ID: "seeker-1", Role: models.RoleSeeker}

	ok := models.Message{PropertyID: "p1", SeekerID: "seeker-1", Body: "hi"}
	if err := CanInsertMessage(seeker, &ok); err != nil {
		t.Errorf("insert as self: %v", err)
	}

	spoofed := models.Message{PropertyID: "p1", SeekerID: "seeker-2", Body: "hi"}
	if err := CanInsertMessage(seeker, &spoofed); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("insert with spoofed seeker = %v, want ErrPermissionDenied", err)
	}

	if err := CanInsertMessage(Anonymous(), &ok); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous insert = %v, want ErrPermissionDenied", err)
	}
}

func TestCanReadMessage(t *testing.T) {
	m := models.Message{SeekerID: "seeker-1", AgentID: "agent-1"}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"seeker party", Actor{ID: "seeker-1", Role: models.RoleSeeker}, true},
		{"agent party", Actor{ID: "agent-1", Role: models.RoleAgent}, true},
		{"third party", Actor{ID: "seeker-2", Role: models.RoleSeeker}, false},
		{"anonymous", Anonymous(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadMessage(tt.actor, &m); got != tt.want {
				t.Errorf("CanReadMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanUpdateMessageStatus(t *testing.T) {
	m := models.Message{SeekerID: "seeker-1", AgentID: "agent-1"}

	if err := CanUpdateMessageStatus(Actor{ID: "agent-1", Role: models.RoleAgent}, &m); err != nil {
		t.Errorf("receiving agent update: %v", err)
	}
	if err := CanUpdateMessageStatus(Actor{ID: "seeker-1", Role: models.RoleSeeker}, &m); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("seeker update = %v, want ErrPermissionDenied", err)
	}
}

func TestCanReadFullProfile(t *testing.T) {
	if !CanReadFullProfile(Actor{ID: "u1", Role: models.RoleSeeker}, "u1") {
		t.Error("owner should read own full profile")
	}
	if CanReadFullProfile(Actor{ID: "u2", Role: models.RoleAgent}, "u1") {
		t.Error("full profile must be self-only")
	}
	if CanReadFullProfile(Anonymous(), "") {
		t.Error("anonymous actor must never match a profile")
	}
}
