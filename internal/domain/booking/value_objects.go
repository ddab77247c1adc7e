package booking

import (
	"errors"
	"time"
)

const (
	dateLayout = "2006-01-02"
	slotLayout = "15:04"
)

// GameDate is the calendar date of a booking in the venue's local calendar.
type GameDate struct {
	value string
}

func NewGameDate(value string) (GameDate, error) {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return GameDate{}, errors.New("game date must be formatted as YYYY-MM-DD")
	}
	return GameDate{value: value}, nil
}

func (d GameDate) String() string {
	return d.value
}

func (d GameDate) IsZero() bool {
	return d.value == ""
}

// TimeOfDay is the wall-clock start of a slot, e.g. "07:00".
type TimeOfDay struct {
	value string
}

func NewTimeOfDay(value string) (TimeOfDay, error) {
	if _, err := time.Parse(slotLayout, value); err != nil {
		return TimeOfDay{}, errors.New("time slot must be formatted as HH:MM")
	}
	return TimeOfDay{value: value}, nil
}

func (t TimeOfDay) String() string {
	return t.value
}

// Instant combines a date and a time of day into a single instant in the
// given location. Both values are validated at construction, so parse errors
// cannot occur here.
func Instant(d GameDate, t TimeOfDay, loc *time.Location) time.Time {
	combined, _ := time.ParseInLocation(dateLayout+" "+slotLayout, d.value+" "+t.value, loc)
	return combined
}
