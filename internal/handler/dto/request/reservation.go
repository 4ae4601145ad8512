package request

import (
	"strconv"
	"strings"

	"table-reserve/internal/usecase/commands"
)

// FlexInt decodes from a JSON number or a numeric string. Browser forms
// submit every field as a string, so "4" and 4 are both accepted. Anything
// non-numeric decodes to zero and is left for the intake validator to reject
// with a proper field-level message.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(v)
	return nil
}

// BookingRequest carries the raw form fields. Shape errors (wrong JSON types)
// fail at binding; everything semantic is left to the intake validator so the
// client gets the full field-level error mapping in one pass.
type BookingRequest struct {
	CustomerName    string  `json:"customerName"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	PartySize       FlexInt `json:"partySize"`
	TablePreference string  `json:"tablePreference"`
	SpecialRequests string  `json:"specialRequests"`
}

func (r BookingRequest) ToForm() commands.BookingForm {
	return commands.BookingForm{
		CustomerName:    r.CustomerName,
		Phone:           r.Phone,
		Email:           r.Email,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       int(r.PartySize),
		TablePreference: r.TablePreference,
		SpecialRequests: r.SpecialRequests,
	}
}
