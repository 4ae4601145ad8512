package reservation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"table-reserve/internal/pkg/clock"
)

// Reservation is the sole entity of the system: a single booking for a
// customer at a given date, slot, and party size. id and createdAt are set
// once at creation and never change; status only ever moves
// confirmed -> cancelled.
type Reservation struct {
	id              string
	customerName    CustomerName
	phone           Phone
	email           Email
	date            Date
	slot            Slot
	partySize       PartySize
	tablePreference TablePreference
	specialRequests SpecialRequests
	createdAt       time.Time
	status          Status
}

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// NewReservation assumes a pre-validated payload: every value object has
// already passed its constructor. It assigns the id, stamps createdAt, and
// starts the record as confirmed.
func (f *Factory) NewReservation(
	name CustomerName,
	phone Phone,
	email Email,
	date Date,
	slot Slot,
	partySize PartySize,
	pref TablePreference,
	requests SpecialRequests,
) *Reservation {
	now := f.Clock.Now()
	return &Reservation{
		id:              newReservationID(now),
		customerName:    name,
		phone:           phone,
		email:           email,
		date:            date,
		slot:            slot,
		partySize:       partySize,
		tablePreference: pref,
		specialRequests: requests,
		createdAt:       now,
		status:          StatusConfirmed,
	}
}

// Reconstruct rebuilds an entity from persisted fields without re-validation.
func Reconstruct(
	id string,
	name CustomerName,
	phone Phone,
	email Email,
	date Date,
	slot Slot,
	partySize PartySize,
	pref TablePreference,
	requests SpecialRequests,
	createdAt time.Time,
	status Status,
) *Reservation {
	return &Reservation{
		id:              id,
		customerName:    name,
		phone:           phone,
		email:           email,
		date:            date,
		slot:            slot,
		partySize:       partySize,
		tablePreference: pref,
		specialRequests: requests,
		createdAt:       createdAt,
		status:          status,
	}
}

// Cancelled returns a copy of the reservation with status cancelled. Records
// handed out by the store are shared between readers, so the transition
// produces a new value instead of mutating in place. The transition is
// one-way; applying it to an already cancelled record changes nothing.
func (r *Reservation) Cancelled() *Reservation {
	copied := *r
	copied.status = StatusCancelled
	return &copied
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) ID() string                       { return r.id }
func (r *Reservation) CustomerName() CustomerName       { return r.customerName }
func (r *Reservation) Phone() Phone                     { return r.phone }
func (r *Reservation) Email() Email                     { return r.email }
func (r *Reservation) Date() Date                       { return r.date }
func (r *Reservation) Slot() Slot                       { return r.slot }
func (r *Reservation) PartySize() PartySize             { return r.partySize }
func (r *Reservation) TablePreference() TablePreference { return r.tablePreference }
func (r *Reservation) SpecialRequests() SpecialRequests { return r.specialRequests }
func (r *Reservation) CreatedAt() time.Time             { return r.createdAt }
func (r *Reservation) Status() Status                   { return r.status }

// newReservationID combines a millisecond timestamp with a random suffix so
// ids stay collision-free for the lifetime of the store.
func newReservationID(now time.Time) string {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("res_%d_%08d", now.UnixMilli(), now.UnixNano()%100000000)
	}
	return fmt.Sprintf("res_%d_%s", now.UnixMilli(), hex.EncodeToString(randomBytes))
}
