package request

import (
	"courtside/internal/usecase/commands"

	"github.com/google/uuid"
)

type JoinTeamRequest struct {
	ScheduleID  uuid.UUID `json:"schedule_id" binding:"required"`
	VenueID     uuid.UUID `json:"venue_id" binding:"required"`
	Date        string    `json:"date" binding:"required,datetime=2006-01-02"`
	CourtNumber int       `json:"court_number" binding:"required,min=1"`
	TeamNumber  int       `json:"team_number" binding:"required,min=1,max=2"`
}

func (r JoinTeamRequest) ToParams(uid, userName string) commands.JoinTeamParams {
	return commands.JoinTeamParams{
		ScheduleID:  r.ScheduleID,
		VenueID:     r.VenueID,
		Date:        r.Date,
		CourtNumber: r.CourtNumber,
		TeamNumber:  r.TeamNumber,
		UserID:      uid,
		UserName:    userName,
	}
}

type CancelBookingRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}
