package match

import "time"

// Match is a played fixture between the home and away side.
type Match struct {
	ID        int64
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	MatchDate time.Time
}
