// Package store holds the snapshot of all entities and exposes the entity
// operations every surface goes through. One logical writer at a time; the
// mutex only covers in-process access.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pwslcc24-hash/Sleepr/internal"
)

type Store struct {
	mu        sync.RWMutex
	data      *internal.Snapshot
	persister Persister
	logger    internal.Logger
	latency   time.Duration
	now       func() time.Time
	newID     func(prefix string) string
}

type Option func(*Store)

// WithClock overrides the timestamp source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id synthesis. Tests make ids predictable.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSimulatedLatency delays every operation's return by d, emulating the
// network round-trip the original client faked.
func WithSimulatedLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// Open loads the persisted snapshot, falling back to a deep copy of the
// seed when nothing is persisted or the blob does not parse. The fallback
// on a corrupt blob discards whatever was there.
func Open(p Persister, seed *internal.Snapshot, logger internal.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    logger,
		now:       time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := p.Load()
	if err != nil {
		logger.Warnf("store: failed to load persisted snapshot, seeding again: %v", err)
		snap = nil
	}
	if snap == nil {
		s.data = seed.Clone()
	} else {
		s.data = snap
	}
	return s, nil
}

// persistLocked writes the full snapshot. Callers hold the write lock, so
// every mutation is on disk before its result is returned.
func (s *Store) persistLocked() error {
	return s.persister.Save(s.data)
}

// simulate blocks for the configured latency, honoring ctx cancellation.
func (s *Store) simulate(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
