package slot

import (
	"errors"

	"courtside/internal/domain/booking"

	"github.com/google/uuid"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is a published court schedule instance: one venue, one date, one
// time-of-day slot, a fixed number of courts. Published by an external
// scheduling authority and read-only here.
type Schedule struct {
	id           uuid.UUID
	venueID      uuid.UUID
	date         booking.GameDate
	timeSlot     booking.TimeOfDay
	gameDuration int
	totalCourts  int
}

func NewSchedule(
	id, venueID uuid.UUID,
	date booking.GameDate,
	timeSlot booking.TimeOfDay,
	gameDuration, totalCourts int,
) (*Schedule, error) {
	if totalCourts < 1 || gameDuration < 1 {
		return nil, ErrInvalidSchedule
	}
	return &Schedule{
		id:           id,
		venueID:      venueID,
		date:         date,
		timeSlot:     timeSlot,
		gameDuration: gameDuration,
		totalCourts:  totalCourts,
	}, nil
}

func (s *Schedule) ID() uuid.UUID               { return s.id }
func (s *Schedule) VenueID() uuid.UUID          { return s.venueID }
func (s *Schedule) Date() booking.GameDate      { return s.date }
func (s *Schedule) TimeSlot() booking.TimeOfDay { return s.timeSlot }
func (s *Schedule) GameDuration() int           { return s.gameDuration }
func (s *Schedule) TotalCourts() int            { return s.totalCourts }
