package store

import (
	"encoding/json"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/infra"
	"table-reserve/internal/pkg/errs"
)

// record is the persisted shape of a reservation. Field names match the
// legacy widget's local-storage payload, so an exported snapshot stays
// readable by anything that consumed the old format.
type record struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customerName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	TablePreference string `json:"tablePreference"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	CreatedAt       string `json:"createdAt"`
	Status          string `json:"status"`
}

func encodeCollection(reservations []*reservation.Reservation) ([]byte, error) {
	records := make([]record, len(reservations))
	for i, r := range reservations {
		records[i] = record{
			ID:              r.ID(),
			CustomerName:    r.CustomerName().Value(),
			Phone:           r.Phone().Value(),
			Email:           r.Email().Value(),
			Date:            r.Date().String(),
			Time:            r.Slot().Value(),
			PartySize:       r.PartySize().Value(),
			TablePreference: r.TablePreference().String(),
			SpecialRequests: r.SpecialRequests().String(),
			CreatedAt:       r.CreatedAt().Format(time.RFC3339Nano),
			Status:          r.Status().String(),
		}
	}
	return json.Marshal(records)
}

// decodeCollection rebuilds entities through the domain constructors. A
// snapshot that fails either JSON parsing or domain validation is reported as
// one error; the caller decides what to do with it.
func decodeCollection(data []byte) ([]*reservation.Reservation, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, infra.WrapStorageErr("failed to parse snapshot payload", err, infra.KindCorruptSnapshot)
	}

	reservations := make([]*reservation.Reservation, 0, len(records))
	for _, rec := range records {
		entity, err := decodeRecord(rec)
		if err != nil {
			return nil, infra.WrapStorageErr("snapshot record failed validation", err, infra.KindCorruptSnapshot)
		}
		reservations = append(reservations, entity)
	}
	return reservations, nil
}

func decodeRecord(rec record) (*reservation.Reservation, error) {
	name, err := reservation.NewCustomerName(rec.CustomerName)
	if err != nil {
		return nil, err
	}
	phone, err := reservation.NewPhone(rec.Phone)
	if err != nil {
		return nil, err
	}
	email, err := reservation.NewEmail(rec.Email)
	if err != nil {
		return nil, err
	}
	date, err := reservation.NewDate(rec.Date)
	if err != nil {
		return nil, err
	}
	slot, err := reservation.NewSlot(rec.Time)
	if err != nil {
		return nil, err
	}
	partySize, err := reservation.NewPartySize(rec.PartySize)
	if err != nil {
		return nil, err
	}
	pref, err := reservation.NewTablePreference(rec.TablePreference)
	if err != nil {
		return nil, err
	}
	requests, err := reservation.NewSpecialRequests(rec.SpecialRequests)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, errs.Wrap(err, "invalid createdAt timestamp")
	}

	status := reservation.Status(rec.Status)
	if !status.IsValid() {
		return nil, errs.Newf("invalid status %q", rec.Status)
	}

	return reservation.Reconstruct(
		rec.ID, name, phone, email, date, slot, partySize, pref, requests, createdAt, status,
	), nil
}
