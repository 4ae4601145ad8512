package reservation

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

type TablePreference string

const (
	TableWindow       TablePreference = "window"
	TablePatio        TablePreference = "patio"
	TableIndoor       TablePreference = "indoor"
	TableNoPreference TablePreference = "no_preference"
)

func (p TablePreference) String() string {
	return string(p)
}

func (p TablePreference) IsValid() bool {
	switch p {
	case TableWindow, TablePatio, TableIndoor, TableNoPreference:
		return true
	default:
		return false
	}
}
