package commands

import (
	"context"

	"courtside/internal/infra/courtapi"

	"github.com/google/uuid"
)

// BookingGateway is the write side of the backend contract, plus the fresh
// reads the guard needs for its optimistic pre-checks. The backend remains
// the sole arbiter of truth; every check here is a UX optimization.
type BookingGateway interface {
	GetAvailableSlots(ctx context.Context, venueID uuid.UUID, startDate, endDate string) ([]courtapi.AvailableSlot, error)
	GetUserBookings(ctx context.Context, userID, startDate, endDate string) ([]courtapi.CourtBooking, error)
	CreateBooking(ctx context.Context, req courtapi.CreateBookingRequest) error
	CancelBooking(ctx context.Context, bookingID uuid.UUID, userID string) error
}

type JoinTeamParams struct {
	ScheduleID  uuid.UUID
	VenueID     uuid.UUID
	Date        string
	CourtNumber int
	TeamNumber  int
	UserID      string
	UserName    string
}

type CancelBookingParams struct {
	BookingID uuid.UUID
	Date      string
	UserID    string
}
