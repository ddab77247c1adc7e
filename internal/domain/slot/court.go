package slot

import "strings"

// Player is one occupied team seat.
type Player struct {
	Name   string
	UserID string
}

// Team holds at most TeamSize players in the order they booked.
type Team struct {
	Number  int
	Players []Player
}

func (t Team) IsFull() bool {
	return len(t.Players) >= TeamSize
}

func (t Team) HasPlayer(userID string) bool {
	for _, p := range t.Players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Court is the derived occupancy of one playing surface. It holds no identity
// of its own; it is recomputed from the schedule's bookings on every fetch.
type Court struct {
	Number      int
	IsBooked    bool
	PlayerCount int
	MaxPlayers  int
	Teams       [TeamsPerCourt]Team
}

// Team returns the team with the given number, or nil if out of range.
func (c *Court) Team(teamNumber int) *Team {
	if !IsValidTeamNumber(teamNumber) {
		return nil
	}
	return &c.Teams[teamNumber-1]
}

func (c *Court) IsFull() bool {
	return c.PlayerCount >= c.MaxPlayers
}

func (c *Court) HasPlayer(userID string) bool {
	for i := range c.Teams {
		if c.Teams[i].HasPlayer(userID) {
			return true
		}
	}
	return false
}

// PlayerSummary concatenates all player names, team 1 then team 2, in seat
// order. Used for compact display lines.
func (c *Court) PlayerSummary() string {
	names := make([]string, 0, c.PlayerCount)
	for i := range c.Teams {
		for _, p := range c.Teams[i].Players {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}
