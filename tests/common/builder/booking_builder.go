//go:build unit

package builder

import (
	dombooking "courtside/internal/domain/booking"
	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/infra/courtapi"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	ScheduleID   uuid.UUID
	VenueID      uuid.UUID
	UserID       string
	UserName     string
	BookingDate  string
	TimeSlot     string
	GameDuration int
	CourtNumber  int
	TeamNumber   int
	Status       string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           uuid.New(),
		ScheduleID:   uuid.New(),
		VenueID:      uuid.New(),
		UserID:       "uid-player-1",
		UserName:     "Alex Player",
		BookingDate:  "2026-09-10",
		TimeSlot:     "18:00",
		GameDuration: 90,
		CourtNumber:  1,
		TeamNumber:   1,
		Status:       "confirmed",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	date, err := dombooking.NewGameDate(b.BookingDate)
	if err != nil {
		return nil, err
	}
	timeSlot, err := dombooking.NewTimeOfDay(b.TimeSlot)
	if err != nil {
		return nil, err
	}
	return dombooking.ReconstructBooking(
		b.ID, b.ScheduleID, b.VenueID,
		b.UserID, b.UserName,
		date, timeSlot,
		b.GameDuration,
		b.CourtNumber, b.TeamNumber,
		dombooking.Status(b.Status),
	)
}

func (b *BookingBuilder) BuildWire() courtapi.CourtBooking {
	return courtapi.CourtBooking{
		ID:           b.ID,
		ScheduleID:   b.ScheduleID,
		UserID:       b.UserID,
		UserName:     b.UserName,
		BookingDate:  b.BookingDate,
		TimeSlot:     b.TimeSlot,
		GameDuration: b.GameDuration,
		VenueID:      b.VenueID,
		CourtNumber:  b.CourtNumber,
		TeamNumber:   b.TeamNumber,
		Status:       b.Status,
	}
}

func (b *BookingBuilder) BuildJoinRequestDTO() reqdto.JoinTeamRequest {
	return reqdto.JoinTeamRequest{
		ScheduleID:  b.ScheduleID,
		VenueID:     b.VenueID,
		Date:        b.BookingDate,
		CourtNumber: b.CourtNumber,
		TeamNumber:  b.TeamNumber,
	}
}

func (b *BookingBuilder) BuildView() queries.BookingView {
	return queries.BookingView{
		ID:           b.ID,
		ScheduleID:   b.ScheduleID,
		VenueID:      b.VenueID,
		Date:         b.BookingDate,
		TimeSlot:     b.TimeSlot,
		GameDuration: b.GameDuration,
		CourtNumber:  b.CourtNumber,
		TeamNumber:   b.TeamNumber,
		Status:       b.Status,
		CanCancel:    true,
	}
}
