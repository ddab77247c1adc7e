package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrMissingUser        = errors.New("booking requires a user id")
	ErrInvalidCourtNumber = errors.New("court number out of range")
	ErrInvalidTeamNumber  = errors.New("team number must be 1 or 2")
)

// Booking is one confirmed team seat on one court of one schedule. The
// authoritative copy lives in the booking backend; instances here are either
// intents about to be submitted or reconstructions of backend rows.
type Booking struct {
	id           uuid.UUID
	scheduleID   uuid.UUID
	venueID      uuid.UUID
	userID       string
	userName     string
	date         GameDate
	timeSlot     TimeOfDay
	gameDuration int
	courtNumber  int
	teamNumber   int
	status       Status
}

func NewBooking(
	scheduleID, venueID uuid.UUID,
	userID, userName string,
	date GameDate,
	timeSlot TimeOfDay,
	gameDuration int,
	courtNumber, teamNumber, totalCourts int,
) (*Booking, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if courtNumber < 1 || courtNumber > totalCourts {
		return nil, ErrInvalidCourtNumber
	}
	if teamNumber != 1 && teamNumber != 2 {
		return nil, ErrInvalidTeamNumber
	}

	return &Booking{
		id:           uuid.New(),
		scheduleID:   scheduleID,
		venueID:      venueID,
		userID:       userID,
		userName:     userName,
		date:         date,
		timeSlot:     timeSlot,
		gameDuration: gameDuration,
		courtNumber:  courtNumber,
		teamNumber:   teamNumber,
		status:       StatusConfirmed,
	}, nil
}

func ReconstructBooking(
	id, scheduleID, venueID uuid.UUID,
	userID, userName string,
	date GameDate,
	timeSlot TimeOfDay,
	gameDuration int,
	courtNumber, teamNumber int,
	status Status,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:           id,
		scheduleID:   scheduleID,
		venueID:      venueID,
		userID:       userID,
		userName:     userName,
		date:         date,
		timeSlot:     timeSlot,
		gameDuration: gameDuration,
		courtNumber:  courtNumber,
		teamNumber:   teamNumber,
		status:       status,
	}, nil
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

// StartTime anchors the booking's start instant in the venue's local time.
func (b *Booking) StartTime(loc *time.Location) time.Time {
	return Instant(b.date, b.timeSlot, loc)
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ScheduleID() uuid.UUID { return b.scheduleID }
func (b *Booking) VenueID() uuid.UUID    { return b.venueID }
func (b *Booking) UserID() string        { return b.userID }
func (b *Booking) UserName() string      { return b.userName }
func (b *Booking) Date() GameDate        { return b.date }
func (b *Booking) TimeSlot() TimeOfDay   { return b.timeSlot }
func (b *Booking) GameDuration() int     { return b.gameDuration }
func (b *Booking) CourtNumber() int      { return b.courtNumber }
func (b *Booking) TeamNumber() int       { return b.teamNumber }
func (b *Booking) Status() Status        { return b.status }
