package reservation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSlot = errors.New("time is not an available booking slot")

// Bookable slots run from 11:00 through 22:00 inclusive, every 30 minutes.
const (
	slotOpenHour     = 11
	slotCloseHour    = 22
	slotIntervalMins = 30
)

var slotTable = buildSlotTable()

func buildSlotTable() []string {
	var slots []string
	for hour := slotOpenHour; hour <= slotCloseHour; hour++ {
		for minute := 0; minute < 60; minute += slotIntervalMins {
			if hour == slotCloseHour && minute > 0 {
				break
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// Slots returns the fixed table of bookable HH:MM values.
func Slots() []string {
	out := make([]string, len(slotTable))
	copy(out, slotTable)
	return out
}

type Slot struct {
	value string
}

func NewSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	for _, v := range slotTable {
		if v == s {
			return Slot{value: s}, nil
		}
	}
	return Slot{}, ErrInvalidSlot
}

func (s Slot) Value() string {
	return s.value
}
