package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

// SessionPatch carries the fields an update may change. Nil means leave
// untouched; the merge is shallow, matching the original update semantics.
type SessionPatch struct {
	Title            *string
	Description      *string
	StartTime        *time.Time
	EndTime          *time.Time
	DurationHours    *float64
	Source           *internal.SessionSource
	Quality          *internal.SleepQuality
	Score            *float64
	RestingHeartRate *float64
	SleepStages      internal.SleepStages
}

func validateSession(sess *internal.SleepSession) error {
	if sess.UserID == "" {
		return fmt.Errorf("store: session requires a user id")
	}
	switch sess.Source {
	case internal.SourceManual, internal.SourceGarmin:
	case "":
		sess.Source = internal.SourceManual
	default:
		return fmt.Errorf("store: unknown session source %q", sess.Source)
	}
	if !internal.ValidQuality(sess.Quality) {
		return fmt.Errorf("store: unknown sleep quality %q", sess.Quality)
	}
	return nil
}

// ListSessions returns every session, most recently created first.
func (s *Store) ListSessions(ctx context.Context) ([]internal.SleepSession, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := internal.CloneSessions(s.data.Sessions)
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out, nil
}

// ListSessionsByUser returns one user's sessions, most recent start first.
func (s *Store) ListSessionsByUser(ctx context.Context, userID string) ([]internal.SleepSession, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]internal.SleepSession, 0)
	for _, sess := range s.data.Sessions {
		if sess.UserID == userID {
			out = append(out, sess.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

// CreateSession stamps a fresh id and creation date, validates at the
// boundary, appends, and persists.
func (s *Store) CreateSession(ctx context.Context, sess internal.SleepSession) (*internal.SleepSession, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	if err := validateSession(&sess); err != nil {
		return nil, err
	}
	sess.ID = s.newID("session")
	sess.CreatedDate = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Sessions = append(s.data.Sessions, sess.Clone())
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// BulkCreateSessions behaves like CreateSession for each payload but
// persists once for the whole batch. Used by the CSV import.
func (s *Store) BulkCreateSessions(ctx context.Context, payloads []internal.SleepSession) ([]internal.SleepSession, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	created := make([]internal.SleepSession, 0, len(payloads))
	for _, sess := range payloads {
		if err := validateSession(&sess); err != nil {
			return nil, err
		}
		sess.ID = s.newID("session")
		sess.CreatedDate = s.now()
		created = append(created, sess)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Sessions = append(s.data.Sessions, internal.CloneSessions(created)...)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSession shallow-merges the patch into the stored session. Unknown
// ids fail with ErrNotFound and leave the store unchanged.
func (s *Store) UpdateSession(ctx context.Context, id string, patch SessionPatch) (*internal.SleepSession, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	if patch.Quality != nil && !internal.ValidQuality(*patch.Quality) {
		return nil, fmt.Errorf("store: unknown sleep quality %q", *patch.Quality)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Sessions {
		if s.data.Sessions[i].ID != id {
			continue
		}
		sess := &s.data.Sessions[i]
		if patch.Title != nil {
			sess.Title = *patch.Title
		}
		if patch.Description != nil {
			sess.Description = *patch.Description
		}
		if patch.StartTime != nil {
			sess.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			sess.EndTime = *patch.EndTime
		}
		if patch.DurationHours != nil {
			sess.DurationHours = *patch.DurationHours
		}
		if patch.Source != nil {
			sess.Source = *patch.Source
		}
		if patch.Quality != nil {
			sess.Quality = *patch.Quality
		}
		if patch.Score != nil {
			v := *patch.Score
			sess.Score = &v
		}
		if patch.RestingHeartRate != nil {
			v := *patch.RestingHeartRate
			sess.RestingHeartRate = &v
		}
		if patch.SleepStages != nil {
			sess.SleepStages = append(internal.SleepStages(nil), patch.SleepStages...)
		}
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		out := sess.Clone()
		return &out, nil
	}
	return nil, fmt.Errorf("store: session %s: %w", id, internal.ErrNotFound)
}

// DeleteSession removes the session and cascades: its likes, its comments,
// and the likes of those comments all go. Deleting an absent id still
// reports success.
func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.data.Sessions[:0]
	for _, sess := range s.data.Sessions {
		if sess.ID != id {
			sessions = append(sessions, sess)
		}
	}
	s.data.Sessions = sessions
	s.removeSessionDependentsLocked(id)

	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// removeSessionDependentsLocked drops every like and comment referencing
// the session, and every comment like referencing those comments.
func (s *Store) removeSessionDependentsLocked(sessionID string) {
	likes := s.data.Likes[:0]
	for _, l := range s.data.Likes {
		if l.SessionID != sessionID {
			likes = append(likes, l)
		}
	}
	s.data.Likes = likes

	removed := make(map[string]bool)
	comments := s.data.Comments[:0]
	for _, c := range s.data.Comments {
		if c.SessionID == sessionID {
			removed[c.ID] = true
			continue
		}
		comments = append(comments, c)
	}
	s.data.Comments = comments

	commentLikes := s.data.CommentLikes[:0]
	for _, cl := range s.data.CommentLikes {
		if !removed[cl.CommentID] {
			commentLikes = append(commentLikes, cl)
		}
	}
	s.data.CommentLikes = commentLikes
}
