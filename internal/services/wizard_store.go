package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
)

// WizardStore holds wizard sessions outside the relational store. Update
// applies fn atomically; when fn fails nothing is written and the unmodified
// session is returned alongside the error.
type WizardStore interface {
	Create(ctx context.Context, sess *wizard.Session) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type memoryEntry struct {
	sess      *wizard.Session
	expiresAt time.Time
}

type memoryWizardStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryWizardStore(ttl time.Duration) WizardStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &memoryWizardStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memoryWizardStore) Create(ctx context.Context, sess *wizard.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[sess.ID] = memoryEntry{sess: sess.Clone(), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *memoryWizardStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookupLocked(ownerID, id)
	if err != nil {
		return nil, err
	}
	return e.sess.Clone(), nil
}

func (m *memoryWizardStore) Update(ctx context.Context, ownerID, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookupLocked(ownerID, id)
	if err != nil {
		return nil, err
	}
	working := e.sess.Clone()
	if err := fn(working); err != nil {
		return e.sess.Clone(), err
	}
	now := m.now()
	working.UpdatedAt = now.UTC()
	m.sessions[id] = memoryEntry{sess: working, expiresAt: now.Add(m.ttl)}
	return working.Clone(), nil
}

func (m *memoryWizardStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookupLocked(ownerID, id); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

func (m *memoryWizardStore) lookupLocked(ownerID, id uuid.UUID) (memoryEntry, error) {
	e, ok := m.sessions[id]
	if !ok || e.sess.OwnerID != ownerID {
		return memoryEntry{}, wizard.ErrSessionNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.sessions, id)
		return memoryEntry{}, wizard.ErrSessionNotFound
	}
	return e, nil
}

func (m *memoryWizardStore) sweepLocked() {
	now := m.now()
	for id, e := range m.sessions {
		if !now.Before(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
