package store

import (
	"context"
	"fmt"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

func (s *Store) ListUsers(ctx context.Context) ([]internal.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]internal.User(nil), s.data.Users...), nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*internal.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("store: user %s: %w", id, internal.ErrNotFound)
}

// CurrentUser resolves the active-user pointer, falling back to the first
// seeded user when the pointer is dangling.
func (s *Store) CurrentUser(ctx context.Context) (*internal.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.ID == s.data.CurrentUserID {
			out := u
			return &out, nil
		}
	}
	if len(s.data.Users) == 0 {
		return nil, fmt.Errorf("store: no users: %w", internal.ErrNotFound)
	}
	out := s.data.Users[0]
	return &out, nil
}

func (s *Store) SetCurrentUser(ctx context.Context, id string) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, u := range s.data.Users {
		if u.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("store: user %s: %w", id, internal.ErrNotFound)
	}
	s.data.CurrentUserID = id
	return s.persistLocked()
}
