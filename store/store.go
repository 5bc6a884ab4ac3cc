// Package store keeps the client-side copy of the attorney collection and
// synchronises it with the gateway.
package store

import (
	"context"
	"sync"

	"attorney_directory_go/models"

	"github.com/rs/zerolog"
)

// Gateway is the remote side of the collection.
type Gateway interface {
	List(ctx context.Context) ([]models.Attorney, error)
	Create(ctx context.Context, in models.AttorneyInput) (models.Attorney, error)
	Update(ctx context.Context, a models.Attorney) (models.Attorney, error)
	Delete(ctx context.Context, id int64) error
}

// Snapshot is an immutable view of the store state.
type Snapshot struct {
	Attorneys []models.Attorney
	Loading   bool
}

// Store holds the collection and a loading flag. The mutex only guards the
// Go data; overlapping Load and Remove calls are not serialised against each
// other and the last response to arrive wins.
type Store struct {
	gateway Gateway
	logger  zerolog.Logger

	mu          sync.Mutex
	attorneys   []models.Attorney
	loading     bool
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// New returns an empty store backed by gateway.
func New(gateway Gateway, logger zerolog.Logger) *Store {
	return &Store{
		gateway:     gateway,
		logger:      logger.With().Str("component", "store").Logger(),
		attorneys:   []models.Attorney{},
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	out := make([]models.Attorney, len(s.attorneys))
	copy(out, s.attorneys)
	return Snapshot{Attorneys: out, Loading: s.loading}
}

// update applies fn under the lock, then notifies subscribers outside it.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Store) setLoading(v bool) {
	s.update(func() { s.loading = v })
}

// Load replaces the collection with the gateway's list. On failure the
// previous collection is kept and the error is logged and returned.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	attorneys, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load attorneys")
		return err
	}
	if attorneys == nil {
		attorneys = []models.Attorney{}
	}

	s.update(func() { s.attorneys = attorneys })
	s.logger.Debug().Int("count", len(attorneys)).Msg("Attorneys loaded")
	return nil
}

// Add merges a record confirmed by the gateway. A record with the same id is
// replaced in place, otherwise a is appended.
func (s *Store) Add(a models.Attorney) {
	s.update(func() {
		if i := s.indexLocked(a.ID); i >= 0 {
			s.attorneys[i] = a
			return
		}
		s.attorneys = append(s.attorneys, a)
	})
}

// Remove deletes id on the gateway, then drops it locally. On failure the
// collection is untouched.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gateway.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("Failed to delete attorney")
		return err
	}

	s.update(func() {
		kept := make([]models.Attorney, 0, len(s.attorneys))
		for _, a := range s.attorneys {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		s.attorneys = kept
	})
	return nil
}

// Create posts in and merges the record the gateway returns.
func (s *Store) Create(ctx context.Context, in models.AttorneyInput) (models.Attorney, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.gateway.Create(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create attorney")
		return models.Attorney{}, err
	}
	s.Add(created)
	return created, nil
}

// Update sends the full record and stores the gateway's version of it.
func (s *Store) Update(ctx context.Context, a models.Attorney) (models.Attorney, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.gateway.Update(ctx, a)
	if err != nil {
		s.logger.Error().Err(err).Int64("id", a.ID).Msg("Failed to update attorney")
		return models.Attorney{}, err
	}
	s.Add(updated)
	return updated, nil
}

// Find returns the record with id from the local collection.
func (s *Store) Find(id int64) (models.Attorney, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.attorneys[i], true
	}
	return models.Attorney{}, false
}

// Filter returns the records of one specialty; "" returns them all.
func (s *Store) Filter(specialty string) []models.Attorney {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Attorney, 0, len(s.attorneys))
	for _, a := range s.attorneys {
		if specialty == "" || a.Specialty == specialty {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) indexLocked(id int64) int {
	for i, a := range s.attorneys {
		if a.ID == id {
			return i
		}
	}
	return -1
}
