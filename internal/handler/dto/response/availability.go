package response

import (
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type VenueResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PlayerResponse struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

type TeamResponse struct {
	Number  int              `json:"number"`
	Players []PlayerResponse `json:"players"`
}

type CourtResponse struct {
	Number        int            `json:"number"`
	IsBooked      bool           `json:"isBooked"`
	PlayerCount   int            `json:"playerCount"`
	MaxPlayers    int            `json:"maxPlayers"`
	Teams         []TeamResponse `json:"teams"`
	PlayerSummary string         `json:"playerSummary"`
}

type SlotResponse struct {
	ScheduleID      uuid.UUID       `json:"scheduleId"`
	VenueID         uuid.UUID       `json:"venueId"`
	Date            string          `json:"date"`
	TimeSlot        string          `json:"timeSlot"`
	GameDuration    int             `json:"gameDuration"`
	TotalCourts     int             `json:"totalCourts"`
	Courts          []CourtResponse `json:"courts"`
	AvailableCourts int             `json:"availableCourts"`
	IsBookedByUser  bool            `json:"isBookedByUser"`
}

func FromVenueView(v queries.VenueView) VenueResponse {
	return VenueResponse{ID: v.ID, Name: v.Name}
}

func FromSlotView(v queries.SlotView) SlotResponse {
	courts := make([]CourtResponse, len(v.Courts))
	for i, court := range v.Courts {
		teams := make([]TeamResponse, len(court.Teams))
		for j, team := range court.Teams {
			players := make([]PlayerResponse, len(team.Players))
			for k, p := range team.Players {
				players[k] = PlayerResponse{Name: p.Name, UserID: p.UserID}
			}
			teams[j] = TeamResponse{Number: team.Number, Players: players}
		}
		courts[i] = CourtResponse{
			Number:        court.Number,
			IsBooked:      court.IsBooked,
			PlayerCount:   court.PlayerCount,
			MaxPlayers:    court.MaxPlayers,
			Teams:         teams,
			PlayerSummary: court.PlayerSummary,
		}
	}
	return SlotResponse{
		ScheduleID:      v.ScheduleID,
		VenueID:         v.VenueID,
		Date:            v.Date,
		TimeSlot:        v.TimeSlot,
		GameDuration:    v.GameDuration,
		TotalCourts:     v.TotalCourts,
		Courts:          courts,
		AvailableCourts: v.AvailableCourts,
		IsBookedByUser:  v.IsBookedByUser,
	}
}
