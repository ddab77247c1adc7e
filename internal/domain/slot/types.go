package slot

const (
	// MaxPlayersPerCourt is two teams of two.
	MaxPlayersPerCourt = 4
	TeamsPerCourt      = 2
	TeamSize           = 2

	// PlaceholderName stands in for a player whose display name has not
	// resolved yet. The projection is recomputed once the name arrives.
	PlaceholderName = "Loading…"

	// UnknownPlayerName is the final fallback when the profile carries no
	// usable name at all.
	UnknownPlayerName = "Unknown Player"
)

func IsValidCourtNumber(n, totalCourts int) bool {
	return n >= 1 && n <= totalCourts
}

func IsValidTeamNumber(n int) bool {
	return n == 1 || n == 2
}

// CourtIndexFor maps a 1-based court number to its slice index.
func CourtIndexFor(courtNumber int) int {
	return courtNumber - 1
}
