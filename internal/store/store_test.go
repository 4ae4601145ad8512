//go:build unit

package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/infra/snapshot"
	"table-reserve/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSaveBroken = errors.New("save broken")

// flakySnapshot wraps the in-memory adapter and fails Save on demand.
type flakySnapshot struct {
	*snapshot.MemoryStore
	failSave bool
}

func (f *flakySnapshot) Save(ctx context.Context, key string, value []byte) error {
	if f.failSave {
		return errSaveBroken
	}
	return f.MemoryStore.Save(ctx, key, value)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func newReservation(t *testing.T, name, date, slot string) *reservation.Reservation {
	t.Helper()

	factory := reservation.NewFactory(fixedClock{t: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)})

	customerName, err := reservation.NewCustomerName(name)
	require.NoError(t, err)
	phone, err := reservation.NewPhone("555-123-4567")
	require.NoError(t, err)
	email, err := reservation.NewEmail("guest@example.com")
	require.NoError(t, err)
	d, err := reservation.NewDate(date)
	require.NoError(t, err)
	s, err := reservation.NewSlot(slot)
	require.NoError(t, err)
	size, err := reservation.NewPartySize(4)
	require.NoError(t, err)
	pref, err := reservation.NewTablePreference("no_preference")
	require.NoError(t, err)
	requests, err := reservation.NewSpecialRequests("")
	require.NoError(t, err)

	return factory.NewReservation(customerName, phone, email, d, s, size, pref, requests)
}

func newStore(t *testing.T, snap snapshot.Store) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), snap, discardLogger())
	require.NoError(t, err)
	return s
}

func TestNewStartsEmpty(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())
	assert.Empty(t, s.List())
}

func TestNewRecoversFromCorruptSnapshot(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{{{"},
		{name: "wrong shape", payload: `{"id":"res_1"}`},
		{name: "invalid field", payload: `[{"id":"res_1","customerName":"X","phone":"555-123-4567","email":"a@b.com","date":"2026-09-15","time":"19:00","partySize":2,"tablePreference":"window","createdAt":"2026-08-31T12:00:00Z","status":"confirmed"}]`},
		{name: "invalid status", payload: `[{"id":"res_1","customerName":"Alice Smith","phone":"555-123-4567","email":"a@b.com","date":"2026-09-15","time":"19:00","partySize":2,"tablePreference":"window","createdAt":"2026-08-31T12:00:00Z","status":"pending"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := snapshot.NewMemoryStore()
			snap.Seed(store.SnapshotKey, []byte(tc.payload))

			s := newStore(t, snap)
			assert.Empty(t, s.List())
		})
	}
}

func TestAddAndReload(t *testing.T) {
	snap := snapshot.NewMemoryStore()
	s := newStore(t, snap)

	first := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	second := newReservation(t, "Bob Jones", "2026-09-14", "11:30")
	require.NoError(t, s.Add(context.Background(), first))
	require.NoError(t, s.Add(context.Background(), second))

	// insertion order, not date order
	records := s.List()
	require.Len(t, records, 2)
	assert.Equal(t, first.ID(), records[0].ID())
	assert.Equal(t, second.ID(), records[1].ID())

	// a fresh store over the same snapshot sees the same collection
	reloaded := newStore(t, snap)
	if diff := cmp.Diff(exportAll(s), exportAll(reloaded)); diff != "" {
		t.Errorf("reloaded collection mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRollsBackOnPersistFailure(t *testing.T) {
	snap := &flakySnapshot{MemoryStore: snapshot.NewMemoryStore()}
	s := newStore(t, snap)

	snap.failSave = true
	err := s.Add(context.Background(), newReservation(t, "Alice Smith", "2026-09-15", "19:00"))
	assert.ErrorIs(t, err, errSaveBroken)
	assert.Empty(t, s.List())
}

func TestUpdate(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	original := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	other := newReservation(t, "Bob Jones", "2026-09-14", "11:30")
	require.NoError(t, s.Add(context.Background(), original))
	require.NoError(t, s.Add(context.Background(), other))

	name, err := reservation.NewCustomerName("Alice Rewritten")
	require.NoError(t, err)
	replacement := reservation.Reconstruct(
		original.ID(), name, original.Phone(), original.Email(), original.Date(),
		original.Slot(), original.PartySize(), original.TablePreference(),
		original.SpecialRequests(), original.CreatedAt(), original.Status(),
	)
	require.NoError(t, s.Update(context.Background(), replacement))

	// updated in place, position preserved
	records := s.List()
	require.Len(t, records, 2)
	assert.Equal(t, "Alice Rewritten", records[0].CustomerName().Value())
	assert.Equal(t, other.ID(), records[1].ID())
}

func TestUpdateUnknownID(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	ghost := newReservation(t, "Nobody Here", "2026-09-15", "19:00")
	err := s.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateRollsBackOnPersistFailure(t *testing.T) {
	snap := &flakySnapshot{MemoryStore: snapshot.NewMemoryStore()}
	s := newStore(t, snap)

	original := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	require.NoError(t, s.Add(context.Background(), original))

	name, err := reservation.NewCustomerName("Alice Rewritten")
	require.NoError(t, err)
	replacement := reservation.Reconstruct(
		original.ID(), name, original.Phone(), original.Email(), original.Date(),
		original.Slot(), original.PartySize(), original.TablePreference(),
		original.SpecialRequests(), original.CreatedAt(), original.Status(),
	)

	snap.failSave = true
	assert.ErrorIs(t, s.Update(context.Background(), replacement), errSaveBroken)

	got, ok := s.Find(original.ID())
	require.True(t, ok)
	assert.Equal(t, "Alice Smith", got.CustomerName().Value())
}

func TestCancel(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	r := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	require.NoError(t, s.Add(context.Background(), r))

	cancelled, err := s.Cancel(context.Background(), r.ID())
	require.NoError(t, err)
	require.NotNil(t, cancelled)
	assert.Equal(t, reservation.StatusCancelled, cancelled.Status())

	// the record stays in the collection
	records := s.List()
	require.Len(t, records, 1)
	assert.False(t, records[0].IsActive())

	// cancelling again is idempotent
	again, err := s.Cancel(context.Background(), r.ID())
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, reservation.StatusCancelled, again.Status())
}

func TestCancelUnknownIDIsNoOp(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	got, err := s.Cancel(context.Background(), "res_missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCancelRollsBackOnPersistFailure(t *testing.T) {
	snap := &flakySnapshot{MemoryStore: snapshot.NewMemoryStore()}
	s := newStore(t, snap)

	r := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	require.NoError(t, s.Add(context.Background(), r))

	snap.failSave = true
	got, err := s.Cancel(context.Background(), r.ID())
	assert.ErrorIs(t, err, errSaveBroken)
	assert.Nil(t, got)

	restored, ok := s.Find(r.ID())
	require.True(t, ok)
	assert.True(t, restored.IsActive())
}

func TestCancelLeavesHandedOutRecordsUntouched(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	r := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	require.NoError(t, s.Add(context.Background(), r))

	held := s.List()[0]

	cancelled, err := s.Cancel(context.Background(), r.ID())
	require.NoError(t, err)

	// a record fetched before the cancel keeps reading its old status; the
	// store swaps in a new record instead of writing through the shared one
	assert.Equal(t, reservation.StatusConfirmed, held.Status())
	assert.Equal(t, reservation.StatusCancelled, cancelled.Status())

	current, ok := s.Find(r.ID())
	require.True(t, ok)
	assert.False(t, current.IsActive())
}

func TestConcurrentReadsDuringCancel(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	r := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	require.NoError(t, s.Add(context.Background(), r))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			for _, rec := range s.List() {
				_ = rec.Status()
				_ = rec.IsActive()
			}
		}
	}()

	for i := 0; i < 100; i++ {
		_, err := s.Cancel(context.Background(), r.ID())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestListActive(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	keep := newReservation(t, "Alice Smith", "2026-09-15", "19:00")
	drop := newReservation(t, "Bob Jones", "2026-09-14", "11:30")
	require.NoError(t, s.Add(context.Background(), keep))
	require.NoError(t, s.Add(context.Background(), drop))

	_, err := s.Cancel(context.Background(), drop.ID())
	require.NoError(t, err)

	active := s.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID(), active[0].ID())
	assert.Len(t, s.List(), 2)
}

func TestSubscribe(t *testing.T) {
	s := newStore(t, snapshot.NewMemoryStore())

	var fired int
	unsubscribe := s.Subscribe(func() { fired++ })

	require.NoError(t, s.Add(context.Background(), newReservation(t, "Alice Smith", "2026-09-15", "19:00")))
	assert.Equal(t, 1, fired)

	unsubscribe()
	require.NoError(t, s.Add(context.Background(), newReservation(t, "Bob Jones", "2026-09-14", "11:30")))
	assert.Equal(t, 1, fired)
}

func TestSubscribeNotFiredOnFailedMutation(t *testing.T) {
	snap := &flakySnapshot{MemoryStore: snapshot.NewMemoryStore()}
	s := newStore(t, snap)

	var fired int
	s.Subscribe(func() { fired++ })

	snap.failSave = true
	_ = s.Add(context.Background(), newReservation(t, "Alice Smith", "2026-09-15", "19:00"))
	assert.Zero(t, fired)
}

// exportAll flattens a store into comparable rows.
func exportAll(s *store.Store) [][]string {
	var out [][]string
	for _, r := range s.List() {
		out = append(out, []string{
			r.ID(),
			r.CustomerName().Value(),
			r.Phone().Value(),
			r.Email().Value(),
			r.Date().String(),
			r.Slot().Value(),
			strconv.Itoa(r.PartySize().Value()),
			r.TablePreference().String(),
			r.SpecialRequests().String(),
			r.CreatedAt().Format(time.RFC3339Nano),
			r.Status().String(),
		})
	}
	return out
}
