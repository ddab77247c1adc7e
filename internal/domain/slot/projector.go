package slot

import (
	"log/slog"

	"courtside/internal/domain/booking"
)

// Project derives the per-court occupancy view from a schedule's confirmed
// bookings. Pure: same input always yields the same output, and the inputs are
// never mutated.
//
// Seat order within a team is the insertion order of the bookings slice. The
// backend returns bookings in creation order, so first-come players keep the
// seats they booked.
func Project(sched *Schedule, bookings []*booking.Booking, logger *slog.Logger) []Court {
	courts := make([]Court, sched.TotalCourts())
	for i := range courts {
		courts[i] = Court{
			Number:     i + 1,
			MaxPlayers: MaxPlayersPerCourt,
			Teams: [TeamsPerCourt]Team{
				{Number: 1, Players: []Player{}},
				{Number: 2, Players: []Player{}},
			},
		}
	}

	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		if !IsValidCourtNumber(b.CourtNumber(), sched.TotalCourts()) {
			// Data inconsistency from the external store; never user-facing.
			if logger != nil {
				logger.Warn("booking references court outside schedule",
					"schedule_id", sched.ID(),
					"booking_id", b.ID(),
					"court_number", b.CourtNumber(),
					"total_courts", sched.TotalCourts(),
				)
			}
			continue
		}
		team := courts[CourtIndexFor(b.CourtNumber())].Team(b.TeamNumber())
		if team == nil {
			if logger != nil {
				logger.Warn("booking references invalid team number",
					"schedule_id", sched.ID(),
					"booking_id", b.ID(),
					"team_number", b.TeamNumber(),
				)
			}
			continue
		}

		if team.IsFull() {
			// The backend's uniqueness constraint should make this
			// impossible; tolerate it the same way as a bad court number.
			if logger != nil {
				logger.Warn("booking overflows team capacity",
					"schedule_id", sched.ID(),
					"booking_id", b.ID(),
					"court_number", b.CourtNumber(),
					"team_number", b.TeamNumber(),
				)
			}
			continue
		}

		name := b.UserName()
		if name == "" {
			name = PlaceholderName
		}
		team.Players = append(team.Players, Player{Name: name, UserID: b.UserID()})

		court := &courts[CourtIndexFor(b.CourtNumber())]
		court.PlayerCount++
		court.IsBooked = true
	}

	return courts
}

// AvailableCourtCount is the number of courts that still have at least one
// open seat.
func AvailableCourtCount(courts []Court) int {
	n := 0
	for i := range courts {
		if courts[i].PlayerCount < MaxPlayersPerCourt {
			n++
		}
	}
	return n
}

// TotalPlayerCount sums occupancy across all courts.
func TotalPlayerCount(courts []Court) int {
	n := 0
	for i := range courts {
		n += courts[i].PlayerCount
	}
	return n
}
