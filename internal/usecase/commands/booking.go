// Package commands implements the booking intake: the gatekeeper between raw
// user input and the reservation store. Every write funnels through here, and
// nothing reaches the store until the whole form has validated.
package commands

import (
	"context"
	"errors"
	"sort"
	"strings"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/store"
)

var ErrReservationNotFound = errors.New("reservation not found")

// BookingForm is the raw, unvalidated input as submitted. Normalization
// (trimming, date formatting) happens during validation.
type BookingForm struct {
	CustomerName    string
	Phone           string
	Email           string
	Date            string
	Time            string
	PartySize       int
	TablePreference string
	SpecialRequests string
}

// FieldErrors maps field name to a human-readable message. Validation is not
// fail-fast: the caller always receives the full mapping.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, field := range fields {
		b.WriteString(" ")
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(e[field])
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}

type BookingCommands interface {
	Create(ctx context.Context, form BookingForm) (*reservation.Reservation, error)
	Update(ctx context.Context, id string, form BookingForm) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id string) (*reservation.Reservation, error)
}

// ReservationStore is the write-side port satisfied by *store.Store.
type ReservationStore interface {
	Add(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
	Cancel(ctx context.Context, id string) (*reservation.Reservation, error)
	Find(id string) (*reservation.Reservation, bool)
}

type bookingCommandsImpl struct {
	store   ReservationStore
	factory *reservation.Factory
}

func NewBookingCommands(store ReservationStore, factory *reservation.Factory) BookingCommands {
	return &bookingCommandsImpl{
		store:   store,
		factory: factory,
	}
}

// Create validates the form and, only on success, hands a well-formed payload
// to the store. A failed form never produces a partial write.
func (c *bookingCommandsImpl) Create(ctx context.Context, form BookingForm) (*reservation.Reservation, error) {
	payload, fieldErrs := validate(form)
	if fieldErrs != nil {
		return nil, fieldErrs
	}

	entity := c.factory.NewReservation(
		payload.name,
		payload.phone,
		payload.email,
		payload.date,
		payload.slot,
		payload.partySize,
		payload.pref,
		payload.requests,
	)
	if err := c.store.Add(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Update replaces the record with the given id wholesale. id, createdAt, and
// status are immutable and carried over from the existing record.
func (c *bookingCommandsImpl) Update(ctx context.Context, id string, form BookingForm) (*reservation.Reservation, error) {
	payload, fieldErrs := validate(form)
	if fieldErrs != nil {
		return nil, fieldErrs
	}

	existing, ok := c.store.Find(id)
	if !ok {
		return nil, ErrReservationNotFound
	}

	entity := reservation.Reconstruct(
		existing.ID(),
		payload.name,
		payload.phone,
		payload.email,
		payload.date,
		payload.slot,
		payload.partySize,
		payload.pref,
		payload.requests,
		existing.CreatedAt(),
		existing.Status(),
	)
	if err := c.store.Update(ctx, entity); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return entity, nil
}

// Cancel passes through the store's semantics: flipping an unknown id is a
// silent no-op and returns (nil, nil).
func (c *bookingCommandsImpl) Cancel(ctx context.Context, id string) (*reservation.Reservation, error) {
	return c.store.Cancel(ctx, id)
}

type validatedForm struct {
	name      reservation.CustomerName
	phone     reservation.Phone
	email     reservation.Email
	date      reservation.Date
	slot      reservation.Slot
	partySize reservation.PartySize
	pref      reservation.TablePreference
	requests  reservation.SpecialRequests
}

func validate(form BookingForm) (*validatedForm, FieldErrors) {
	fieldErrs := FieldErrors{}
	payload := &validatedForm{}

	var err error
	if payload.name, err = reservation.NewCustomerName(form.CustomerName); err != nil {
		fieldErrs["customerName"] = err.Error()
	}
	if payload.phone, err = reservation.NewPhone(form.Phone); err != nil {
		fieldErrs["phone"] = err.Error()
	}
	if payload.email, err = reservation.NewEmail(form.Email); err != nil {
		fieldErrs["email"] = err.Error()
	}
	if payload.date, err = reservation.NewDate(form.Date); err != nil {
		fieldErrs["date"] = err.Error()
	}
	if payload.slot, err = reservation.NewSlot(form.Time); err != nil {
		fieldErrs["time"] = err.Error()
	}
	if payload.partySize, err = reservation.NewPartySize(form.PartySize); err != nil {
		fieldErrs["partySize"] = err.Error()
	}
	if payload.pref, err = reservation.NewTablePreference(form.TablePreference); err != nil {
		fieldErrs["tablePreference"] = err.Error()
	}
	if payload.requests, err = reservation.NewSpecialRequests(form.SpecialRequests); err != nil {
		fieldErrs["specialRequests"] = err.Error()
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return payload, nil
}
