package courtapi

import (
	"strings"

	"github.com/google/uuid"
)

// Wire shapes of the booking backend. Field names are part of the HTTP/JSON
// contract and must not drift.

type Venue struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type AvailableSlot struct {
	ScheduleID   uuid.UUID      `json:"scheduleId"`
	VenueID      uuid.UUID      `json:"venueId"`
	Date         string         `json:"date"`
	TimeSlot     string         `json:"timeSlot"`
	GameDuration int            `json:"gameDuration"`
	TotalCourts  int            `json:"totalCourts"`
	Bookings     []CourtBooking `json:"bookings"`
}

type CourtBooking struct {
	ID           uuid.UUID `json:"id"`
	ScheduleID   uuid.UUID `json:"scheduleId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	BookingDate  string    `json:"bookingDate"`
	TimeSlot     string    `json:"timeSlot"`
	GameDuration int       `json:"gameDuration"`
	VenueID      uuid.UUID `json:"venueId"`
	CourtNumber  int       `json:"courtNumber"`
	TeamNumber   int       `json:"teamNumber"`
	Status       string    `json:"status"`
}

type CreateBookingRequest struct {
	ScheduleID   uuid.UUID `json:"scheduleId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	BookingDate  string    `json:"bookingDate"`
	TimeSlot     string    `json:"timeSlot"`
	GameDuration int       `json:"gameDuration"`
	VenueID      uuid.UUID `json:"venueId"`
	CourtNumber  int       `json:"courtNumber"`
	TeamNumber   int       `json:"teamNumber"`
	Status       string    `json:"status"`
}

// mutationResult is the backend's envelope for booking mutations. Conflict
// responses additionally carry a code when the backend supports it.
type mutationResult struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type UserProfile struct {
	DisplayName string `json:"display_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
}

// BestName resolves the display name with the fixed precedence:
// display_name → first+last → first → last → username → email → fallback.
func (p UserProfile) BestName(fallback string) string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	if name := strings.TrimSpace(p.Username); name != "" {
		return name
	}
	if name := strings.TrimSpace(p.Email); name != "" {
		return name
	}
	return fallback
}
