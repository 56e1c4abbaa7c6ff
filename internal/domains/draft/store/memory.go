package store

import (
	"context"
	"strings"
	"sync"
	"trek/internal/domains/draft/model"
	"trek/shared/timezone"
)

// MemoryStore is an in-process Store used by tests. Claims and slots behave
// like the Redis implementation minus expiry.
type MemoryStore struct {
	mu     sync.Mutex
	slots  map[string]model.Envelope
	emails map[string]string
	claims map[string]struct{}

	// SaveErr, when set, makes Save fail. Storage write failure is a
	// non-fatal degradation and tests exercise that path.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:  map[string]model.Envelope{},
		emails: map[string]string{},
		claims: map[string]struct{}{},
	}
}

func (s *MemoryStore) Save(_ context.Context, env model.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	env.UpdatedAt = timezone.Now()
	s.slots[env.SessionID] = env

	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (model.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok := s.slots[sessionID]
	if !ok {
		return model.Envelope{}, ErrNotFound
	}

	return env, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, sessionID)

	return nil
}

func (s *MemoryStore) IndexEmail(_ context.Context, email, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emails[strings.ToLower(strings.TrimSpace(email))] = sessionID

	return nil
}

func (s *MemoryStore) SessionByEmail(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return "", ErrNotFound
	}

	return sessionID, nil
}

func (s *MemoryStore) DropEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.emails, strings.ToLower(strings.TrimSpace(email)))

	return nil
}

func (s *MemoryStore) ClaimTransition(_ context.Context, sessionID, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionID + ":" + name
	if _, exists := s.claims[key]; exists {
		return false, nil
	}

	s.claims[key] = struct{}{}

	return true, nil
}
