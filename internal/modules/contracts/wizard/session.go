package wizard

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Session is one independent wizard instance owned by a single user.
// Pending is set while a submission is in flight.
type Session struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	State     State     `json:"state"`
	Pending   bool      `json:"pending"`
	FormError string    `json:"form_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(ownerID uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		State:     New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.State.Draft.SelectedTemplate != nil {
		v := *s.State.Draft.SelectedTemplate
		out.State.Draft.SelectedTemplate = &v
	}
	return &out
}
