package response

import (
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/usecase/queries"
)

type ReservationResponse struct {
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

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
	Active       int                    `json:"active"`
}

type SlotsResponse struct {
	Slots []string `json:"slots"`
}

func FromView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              rm.ID,
		CustomerName:    rm.CustomerName,
		Phone:           rm.Phone,
		Email:           rm.Email,
		Date:            rm.Date,
		Time:            rm.Time,
		PartySize:       rm.PartySize,
		TablePreference: rm.TablePreference,
		SpecialRequests: rm.SpecialRequests,
		CreatedAt:       rm.CreatedAt,
		Status:          rm.Status,
	}
}

func FromViews(rms []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromView(rm)
	}
	return out
}

func FromEntity(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
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
