package memory

import (
	"time"

	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/player"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Username: "admin", FullName: "League Admin", Role: player.RoleAdmin, Level: 1},
		{ID: 2, Username: "rafael", FullName: "Rafael Costa", Nationality: "BR", FavoritePosition: "FW", Role: player.RolePlayer, Level: 1},
		{ID: 3, Username: "momo", FullName: "Mohamed Diallo", Nationality: "SN", FavoritePosition: "MF", Role: player.RolePlayer, Level: 1},
		{ID: 4, Username: "kenji", FullName: "Kenji Sato", Nationality: "JP", FavoritePosition: "MF", Role: player.RolePlayer, Level: 1},
		{ID: 5, Username: "luca", FullName: "Luca Bianchi", Nationality: "IT", FavoritePosition: "DF", Role: player.RolePlayer, Level: 1},
		{ID: 6, Username: "arif", FullName: "Arif Nugroho", Nationality: "ID", FavoritePosition: "GK", Role: player.RolePlayer, Level: 1},
	}
}

func SeedMatches() []match.Match {
	kickoff := time.Date(2026, time.September, 5, 19, 0, 0, 0, time.UTC)
	return []match.Match{
		{ID: 1, HomeTeam: "Blue", AwayTeam: "Red", MatchDate: kickoff},
		{ID: 2, HomeTeam: "Red", AwayTeam: "Blue", MatchDate: kickoff.AddDate(0, 0, 7)},
		{ID: 3, HomeTeam: "Blue", AwayTeam: "Red", MatchDate: kickoff.AddDate(0, 0, 14)},
		{ID: 4, HomeTeam: "Red", AwayTeam: "Blue", MatchDate: kickoff.AddDate(0, 0, 21)},
		{ID: 5, HomeTeam: "Blue", AwayTeam: "Red", MatchDate: kickoff.AddDate(0, 0, 28)},
		{ID: 6, HomeTeam: "Red", AwayTeam: "Blue", MatchDate: kickoff.AddDate(0, 0, 35)},
	}
}

// NewSeededStore returns a store with the demo roster and fixtures.
func NewSeededStore() *Store {
	return NewStore(SeedPlayers(), SeedMatches())
}
