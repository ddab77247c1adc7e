package response

import (
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ScheduleID   uuid.UUID `json:"scheduleId"`
	VenueID      uuid.UUID `json:"venueId"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"timeSlot"`
	GameDuration int       `json:"gameDuration"`
	CourtNumber  int       `json:"courtNumber"`
	TeamNumber   int       `json:"teamNumber"`
	Status       string    `json:"status"`
	CanCancel    bool      `json:"canCancel"`
}

type JoinTeamResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	State     string    `json:"state"`
}

type CancelBookingResponse struct {
	Success         bool `json:"success"`
	AlreadyResolved bool `json:"alreadyResolved,omitempty"`
}

func FromBookingView(v queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:           v.ID,
		ScheduleID:   v.ScheduleID,
		VenueID:      v.VenueID,
		Date:         v.Date,
		TimeSlot:     v.TimeSlot,
		GameDuration: v.GameDuration,
		CourtNumber:  v.CourtNumber,
		TeamNumber:   v.TeamNumber,
		Status:       v.Status,
		CanCancel:    v.CanCancel,
	}
}

func FromJoinTeamResult(r *commands.JoinTeamResult) JoinTeamResponse {
	return JoinTeamResponse{
		BookingID: r.BookingID,
		State:     string(r.Attempt.State),
	}
}
