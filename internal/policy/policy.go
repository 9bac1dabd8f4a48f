// Package policy decides, for every (actor, action, row) triple,
// whether the action is allowed. Every decision is a pure function of
// its arguments: nothing here touches the database, so each rule is
// unit-testable with constructed rows. Row-level read denial is
// expressed twice: as a predicate for single rows and as a query
// scope (scope.go) that keeps invisible rows out of result sets.
package policy

import (
	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
)

// Actor is the identity performing a request. The zero value is the
// anonymous actor, which may only exercise public read paths.
type Actor struct {
	ID   string
	Role models.Role
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanReadProperty reports whether the listing is visible to the actor.
// Owners always see their own rows regardless of status; everyone else
// sees published rows only. A false result means the row is entirely
// absent for this actor, not column-restricted.
func CanReadProperty(a Actor, p *models.Property) bool {
	if a.ID != "" && a.ID == p.AgentID {
		return true
	}
	return p.IsPublished()
}

// CanCreateProperty requires the agent role; seekers and anonymous
// actors cannot own listings.
func CanCreateProperty(a Actor) error {
	if a.IsAnonymous() || a.Role != models.RoleAgent {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CanModifyProperty allows update and delete for the owning agent only.
func CanModifyProperty(a Actor, p *models.Property) error {
	if a.IsAnonymous() || a.ID != p.AgentID {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CanReadPhoto: photo visibility inherits from the parent listing.
func CanReadPhoto(a Actor, parent *models.Property) bool {
	return CanReadProperty(a, parent)
}

// CanModifyPhoto: photos are owned through the parent listing.
func CanModifyPhoto(a Actor, parent *models.Property) error {
	return CanModifyProperty(a, parent)
}

// CanSave requires authentication; any signed-in user may bookmark a
// listing they can see.
func CanSave(a Actor, p *models.Property) error {
	if a.IsAnonymous() {
		return apperr.ErrPermissionDenied
	}
	if !CanReadProperty(a, p) {
		// Saving an invisible listing would confirm its existence.
		return apperr.ErrNotFound
	}
	return nil
}

// CanReadSaved: saves are private to their owner. Not even the
// listing's agent may see who saved it.
func CanReadSaved(a Actor, s *models.SavedProperty) bool {
	return a.ID != "" && a.ID == s.UserID
}

// CanDeleteSaved allows removing one's own bookmark only.
func CanDeleteSaved(a Actor, s *models.SavedProperty) error {
	if !CanReadSaved(a, s) {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CanInsertMessage gates an inquiry insert. The sender must be
// authenticated and must be the message's seeker; impersonating
// another seeker is refused before validation even runs.
func CanInsertMessage(a Actor, m *models.Message) error {
	if a.IsAnonymous() {
		return apperr.ErrPermissionDenied
	}
	if m.SeekerID != a.ID {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CanReadMessage: visible to the two parties of the conversation and
// nobody else.
func CanReadMessage(a Actor, m *models.Message) bool {
	if a.IsAnonymous() {
		return false
	}
	return a.ID == m.SeekerID || a.ID == m.AgentID
}

// CanUpdateMessageStatus: only the receiving agent moves an inquiry
// through unread -> read -> responded.
func CanUpdateMessageStatus(a Actor, m *models.Message) error {
	if a.IsAnonymous() || a.ID != m.AgentID {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CanReadFullProfile: the full row, including email and phone, is
// visible to its owner only. Every other actor goes through the
// PublicAgentProfile projection, which is a separate read path with
// its own type (models.PublicAgentProfile), never a filtered variant
// of this one.
func CanReadFullProfile(a Actor, profileID string) bool {
	return a.ID != "" && a.ID == profileID
}
