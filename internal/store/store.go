// Package store owns the authoritative in-memory reservation collection and
// its persisted mirror. All reads and writes funnel through Store; no other
// component touches the snapshot slot.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/infra/snapshot"
	"table-reserve/internal/pkg/errs"
)

// SnapshotKey is the fixed slot the collection is mirrored into, carried over
// from the legacy browser widget so exported data stays compatible.
const SnapshotKey = "restaurant-reservations"

var ErrNotFound = errors.New("reservation not found")

// Store serializes every mutation behind one mutex: the legacy widget ran in
// a single-threaded event loop, and the server rendition keeps that model by
// being a single writer.
type Store struct {
	mu      sync.RWMutex
	records []*reservation.Reservation
	snap    snapshot.Store
	logger  *slog.Logger

	subsMu  sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New loads the snapshot slot and builds the store. A missing slot yields an
// empty collection; a present-but-unreadable one is logged and treated as
// empty rather than failing startup.
func New(ctx context.Context, snap snapshot.Store, logger *slog.Logger) (*Store, error) {
	s := &Store{
		snap:   snap,
		logger: logger,
		subs:   make(map[int]func()),
	}

	data, ok, err := snap.Load(ctx, SnapshotKey)
	if err != nil {
		logger.Warn("failed to load reservation snapshot, starting empty", "error", err)
		return s, nil
	}
	if !ok {
		return s, nil
	}

	records, err := decodeCollection(data)
	if err != nil {
		logger.Warn("corrupt reservation snapshot, starting empty", "error", err)
		return s, nil
	}
	s.records = records
	return s, nil
}

// Add appends a pre-validated reservation and mirrors the collection. The
// payload itself has no failure mode here; only the snapshot write can fail,
// in which case the in-memory append is rolled back.
func (s *Store) Add(ctx context.Context, r *reservation.Reservation) error {
	s.mu.Lock()
	s.records = append(s.records, r)
	if err := s.persistLocked(ctx); err != nil {
		s.records = s.records[:len(s.records)-1]
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Update replaces the record with a matching id in place. An unknown id is a
// signaled error, not a silent no-op.
func (s *Store) Update(ctx context.Context, r *reservation.Reservation) error {
	s.mu.Lock()
	idx := s.indexOfLocked(r.ID())
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	previous := s.records[idx]
	s.records[idx] = r
	if err := s.persistLocked(ctx); err != nil {
		s.records[idx] = previous
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Cancel swaps the matching record for a cancelled copy and returns the copy.
// Records already handed out keep reading their old status; mutating a shared
// record under the lock would race with readers that hold it past List. An
// unknown id is a silent no-op returning (nil, nil); cancelling twice is
// idempotent.
func (s *Store) Cancel(ctx context.Context, id string) (*reservation.Reservation, error) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	previous := s.records[idx]
	cancelled := previous.Cancelled()
	s.records[idx] = cancelled
	if err := s.persistLocked(ctx); err != nil {
		s.records[idx] = previous
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.notify()
	return cancelled, nil
}

// List returns the full collection in insertion order.
func (s *Store) List() []*reservation.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*reservation.Reservation, len(s.records))
	copy(out, s.records)
	return out
}

// ListActive returns only confirmed records, preserving relative order.
func (s *Store) ListActive() []*reservation.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*reservation.Reservation
	for _, r := range s.records {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Find(id string) (*reservation.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, false
	}
	return s.records[idx], true
}

// Subscribe registers a change listener fired after every successful
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) indexOfLocked(id string) int {
	for i, r := range s.records {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := encodeCollection(s.records)
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation collection")
	}
	if err := s.snap.Save(ctx, SnapshotKey, data); err != nil {
		return errs.Wrap(err, "failed to save reservation snapshot")
	}
	return nil
}

// notify runs outside the store lock so a listener re-reading List() cannot
// deadlock.
func (s *Store) notify() {
	s.subsMu.Lock()
	listeners := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
