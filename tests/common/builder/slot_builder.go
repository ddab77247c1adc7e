//go:build unit

package builder

import (
	dombooking "courtside/internal/domain/booking"
	"courtside/internal/domain/slot"
	"courtside/internal/infra/courtapi"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ScheduleID   uuid.UUID
	VenueID      uuid.UUID
	Date         string
	TimeSlot     string
	GameDuration int
	TotalCourts  int
	Bookings     []courtapi.CourtBooking
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ScheduleID:   uuid.New(),
		VenueID:      uuid.New(),
		Date:         "2026-09-10",
		TimeSlot:     "18:00",
		GameDuration: 90,
		TotalCourts:  2,
	}
}

func (s *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(s)
	return s
}

// WithBooking appends a confirmed booking for the given seat.
func (s *SlotBuilder) WithBooking(userID, userName string, courtNumber, teamNumber int) *SlotBuilder {
	s.Bookings = append(s.Bookings, NewBookingBuilder().With(func(b *BookingBuilder) {
		b.ScheduleID = s.ScheduleID
		b.VenueID = s.VenueID
		b.BookingDate = s.Date
		b.TimeSlot = s.TimeSlot
		b.GameDuration = s.GameDuration
		b.UserID = userID
		b.UserName = userName
		b.CourtNumber = courtNumber
		b.TeamNumber = teamNumber
	}).BuildWire())
	return s
}

func (s *SlotBuilder) BuildWire() courtapi.AvailableSlot {
	return courtapi.AvailableSlot{
		ScheduleID:   s.ScheduleID,
		VenueID:      s.VenueID,
		Date:         s.Date,
		TimeSlot:     s.TimeSlot,
		GameDuration: s.GameDuration,
		TotalCourts:  s.TotalCourts,
		Bookings:     s.Bookings,
	}
}

func (s *SlotBuilder) BuildDomain() (*slot.Schedule, []*dombooking.Booking, error) {
	date, err := dombooking.NewGameDate(s.Date)
	if err != nil {
		return nil, nil, err
	}
	timeSlot, err := dombooking.NewTimeOfDay(s.TimeSlot)
	if err != nil {
		return nil, nil, err
	}
	sched, err := slot.NewSchedule(s.ScheduleID, s.VenueID, date, timeSlot, s.GameDuration, s.TotalCourts)
	if err != nil {
		return nil, nil, err
	}

	bookings := make([]*dombooking.Booking, 0, len(s.Bookings))
	for _, row := range s.Bookings {
		bb := NewBookingBuilder()
		bb.ID = row.ID
		bb.ScheduleID = row.ScheduleID
		bb.VenueID = row.VenueID
		bb.UserID = row.UserID
		bb.UserName = row.UserName
		bb.BookingDate = row.BookingDate
		bb.TimeSlot = row.TimeSlot
		bb.GameDuration = row.GameDuration
		bb.CourtNumber = row.CourtNumber
		bb.TeamNumber = row.TeamNumber
		bb.Status = row.Status
		b, buildErr := bb.BuildDomain()
		if buildErr != nil {
			return nil, nil, buildErr
		}
		bookings = append(bookings, b)
	}
	return sched, bookings, nil
}
