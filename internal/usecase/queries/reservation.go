package queries

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"table-reserve/internal/domain/reservation"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ReservationView is the read model. JSON field names match the persisted
// snapshot format.
type ReservationView struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customerName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	PartySize       int       `json:"partySize"`
	TablePreference string    `json:"tablePreference"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Status          string    `json:"status"`
}

type StatsView struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// ReservationReader is the read-side port satisfied by *store.Store.
type ReservationReader interface {
	List() []*reservation.Reservation
	ListActive() []*reservation.Reservation
	Find(id string) (*reservation.Reservation, bool)
}

type ReservationQueries interface {
	List(ctx context.Context) []*ReservationView
	ListActive(ctx context.Context) []*ReservationView
	Search(ctx context.Context, term string) []*ReservationView
	Get(ctx context.Context, id string) (*ReservationView, error)
	Stats(ctx context.Context) *StatsView
	Slots() []string
}

type reservationQueriesImpl struct {
	reader ReservationReader
}

func NewReservationQueries(reader ReservationReader) ReservationQueries {
	return &reservationQueriesImpl{reader: reader}
}

// List returns every reservation in store (insertion) order.
func (q *reservationQueriesImpl) List(_ context.Context) []*ReservationView {
	return toViews(q.reader.List())
}

// ListActive returns only confirmed reservations, preserving relative order.
func (q *reservationQueriesImpl) ListActive(_ context.Context) []*ReservationView {
	return toViews(q.reader.ListActive())
}

// Search filters the full collection by substring match on name, phone,
// email, or date, then sorts chronologically by date and time. Name and email
// match case-insensitively. An empty term returns everything, sorted.
func (q *reservationQueriesImpl) Search(_ context.Context, term string) []*ReservationView {
	term = strings.TrimSpace(term)
	lower := strings.ToLower(term)

	var matched []*reservation.Reservation
	for _, r := range q.reader.List() {
		if term == "" || matches(r, term, lower) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return sortKey(matched[i]) < sortKey(matched[j])
	})
	return toViews(matched)
}

func (q *reservationQueriesImpl) Get(_ context.Context, id string) (*ReservationView, error) {
	r, ok := q.reader.Find(id)
	if !ok {
		return nil, ErrReservationNotFound
	}
	return toView(r), nil
}

func (q *reservationQueriesImpl) Stats(_ context.Context) *StatsView {
	return &StatsView{
		Total:  len(q.reader.List()),
		Active: len(q.reader.ListActive()),
	}
}

// Slots returns the fixed table of bookable times for form rendering.
func (q *reservationQueriesImpl) Slots() []string {
	return reservation.Slots()
}

func matches(r *reservation.Reservation, term, lower string) bool {
	return strings.Contains(strings.ToLower(r.CustomerName().Value()), lower) ||
		strings.Contains(r.Phone().Value(), term) ||
		strings.Contains(strings.ToLower(r.Email().Value()), lower) ||
		strings.Contains(r.Date().String(), term)
}

// sortKey is lexicographically ordered because both parts are fixed-width
// ISO-style strings.
func sortKey(r *reservation.Reservation) string {
	return r.Date().String() + "T" + r.Slot().Value()
}

func toView(r *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:              r.ID(),
		CustomerName:    r.CustomerName().Value(),
		Phone:           r.Phone().Value(),
		Email:           r.Email().Value(),
		Date:            r.Date().String(),
		Time:            r.Slot().Value(),
		PartySize:       r.PartySize().Value(),
		TablePreference: r.TablePreference().String(),
		SpecialRequests: r.SpecialRequests().String(),
		CreatedAt:       r.CreatedAt(),
		Status:          r.Status().String(),
	}
}

func toViews(records []*reservation.Reservation) []*ReservationView {
	views := make([]*ReservationView, len(records))
	for i, r := range records {
		views[i] = toView(r)
	}
	return views
}
