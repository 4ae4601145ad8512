package reservation

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrCustomerNameLength     = errors.New("customer name must be between 2 and 50 characters")
	ErrCustomerNameChars      = errors.New("customer name can only contain letters, spaces, hyphens, and apostrophes")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrEmailTooLong           = errors.New("email must be at most 100 characters")
	ErrInvalidDate            = errors.New("invalid reservation date")
	ErrInvalidPartySize       = errors.New("party size must be between 1 and 12")
	ErrInvalidTablePreference = errors.New("invalid table preference")
	ErrSpecialRequestsTooLong = errors.New("special requests must be at most 500 characters")
)

const (
	MinCustomerNameLength = 2
	MaxCustomerNameLength = 50
	MaxEmailLength        = 100
	MinPartySize          = 1
	MaxPartySize          = 12
	MaxSpecialRequestsLen = 500
)

var (
	customerNameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	phoneRegex        = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type CustomerName struct {
	value string
}

func NewCustomerName(s string) (CustomerName, error) {
	s = strings.TrimSpace(s)
	length := utf8.RuneCountInString(s)
	if length < MinCustomerNameLength || length > MaxCustomerNameLength {
		return CustomerName{}, ErrCustomerNameLength
	}
	if !customerNameRegex.MatchString(s) {
		return CustomerName{}, ErrCustomerNameChars
	}
	return CustomerName{value: s}, nil
}

func (n CustomerName) Value() string {
	return n.value
}

type Phone struct {
	value string
}

// NewPhone accepts 10-digit North-American numbers with optional parentheses,
// dashes, dots, and spaces. The number is stored as entered.
func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if !phoneRegex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) Value() string {
	return p.value
}

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxEmailLength {
		return Email{}, ErrEmailTooLong
	}
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

const dateLayout = "2006-01-02"

type Date struct {
	value time.Time
}

// NewDate requires a parseable YYYY-MM-DD calendar date. Range restrictions
// (today through +90 days) belong to the form layer, not the domain.
func NewDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{value: t}, nil
}

func (d Date) String() string {
	return d.value.Format(dateLayout)
}

func (d Date) Time() time.Time {
	return d.value
}

type PartySize struct {
	value int
}

func NewPartySize(n int) (PartySize, error) {
	if n < MinPartySize || n > MaxPartySize {
		return PartySize{}, ErrInvalidPartySize
	}
	return PartySize{value: n}, nil
}

func (p PartySize) Value() int {
	return p.value
}

func NewTablePreference(s string) (TablePreference, error) {
	pref := TablePreference(strings.TrimSpace(s))
	if !pref.IsValid() {
		return "", ErrInvalidTablePreference
	}
	return pref, nil
}

type SpecialRequests struct {
	value string
}

func NewSpecialRequests(s string) (SpecialRequests, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxSpecialRequestsLen {
		return SpecialRequests{}, ErrSpecialRequestsTooLong
	}
	return SpecialRequests{value: s}, nil
}

func (r SpecialRequests) String() string {
	return r.value
}

func (r SpecialRequests) IsEmpty() bool {
	return r.value == ""
}
