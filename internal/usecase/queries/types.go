package queries

import (
	"github.com/google/uuid"
)

// Read models (DTO for read side)

type VenueView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PlayerView struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

type TeamView struct {
	Number  int          `json:"number"`
	Players []PlayerView `json:"players"`
}

type CourtView struct {
	Number        int        `json:"number"`
	IsBooked      bool       `json:"is_booked"`
	PlayerCount   int        `json:"player_count"`
	MaxPlayers    int        `json:"max_players"`
	Teams         []TeamView `json:"teams"`
	PlayerSummary string     `json:"player_summary"`
}

type SlotView struct {
	ScheduleID      uuid.UUID   `json:"schedule_id"`
	VenueID         uuid.UUID   `json:"venue_id"`
	Date            string      `json:"date"`
	TimeSlot        string      `json:"time_slot"`
	GameDuration    int         `json:"game_duration"`
	TotalCourts     int         `json:"total_courts"`
	Courts          []CourtView `json:"courts"`
	AvailableCourts int         `json:"available_courts"`
	IsBookedByUser  bool        `json:"is_booked_by_user"`
}

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ScheduleID   uuid.UUID `json:"schedule_id"`
	VenueID      uuid.UUID `json:"venue_id"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	GameDuration int       `json:"game_duration"`
	CourtNumber  int       `json:"court_number"`
	TeamNumber   int       `json:"team_number"`
	Status       string    `json:"status"`
	CanCancel    bool      `json:"can_cancel"`
}
