//go:build unit || e2e

package builder

import (
	reqdto "table-reserve/internal/handler/dto/request"
	"table-reserve/internal/usecase/commands"
)

// BookingFormBuilder builds valid booking forms for tests. Every field
// starts from a value that passes validation; override what the test
// needs broken.
type BookingFormBuilder struct {
	form commands.BookingForm
}

func NewBookingFormBuilder() *BookingFormBuilder {
	return &BookingFormBuilder{
		form: commands.BookingForm{
			CustomerName:    "Alice Smith",
			Phone:           "555-123-4567",
			Email:           "alice@example.com",
			Date:            "2026-09-15",
			Time:            "19:00",
			PartySize:       2,
			TablePreference: "window",
			SpecialRequests: "",
		},
	}
}

func (b *BookingFormBuilder) WithCustomerName(name string) *BookingFormBuilder {
	b.form.CustomerName = name
	return b
}

func (b *BookingFormBuilder) WithPhone(phone string) *BookingFormBuilder {
	b.form.Phone = phone
	return b
}

func (b *BookingFormBuilder) WithEmail(email string) *BookingFormBuilder {
	b.form.Email = email
	return b
}

func (b *BookingFormBuilder) WithDate(date string) *BookingFormBuilder {
	b.form.Date = date
	return b
}

func (b *BookingFormBuilder) WithTime(slot string) *BookingFormBuilder {
	b.form.Time = slot
	return b
}

func (b *BookingFormBuilder) WithPartySize(size int) *BookingFormBuilder {
	b.form.PartySize = size
	return b
}

func (b *BookingFormBuilder) WithTablePreference(pref string) *BookingFormBuilder {
	b.form.TablePreference = pref
	return b
}

func (b *BookingFormBuilder) WithSpecialRequests(requests string) *BookingFormBuilder {
	b.form.SpecialRequests = requests
	return b
}

func (b *BookingFormBuilder) Build() commands.BookingForm {
	return b.form
}

func (b *BookingFormBuilder) BuildRequestDTO() reqdto.BookingRequest {
	return reqdto.BookingRequest{
		CustomerName:    b.form.CustomerName,
		Phone:           b.form.Phone,
		Email:           b.form.Email,
		Date:            b.form.Date,
		Time:            b.form.Time,
		PartySize:       reqdto.FlexInt(b.form.PartySize),
		TablePreference: b.form.TablePreference,
		SpecialRequests: b.form.SpecialRequests,
	}
}
