package player

import "fmt"

// Role separates ranked players from administrators.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

var AllRoles = map[Role]struct{}{
	RolePlayer: {},
	RoleAdmin:  {},
}

// Player is a league member. XP and Level are derived from unlocked
// achievements and are only ever written by the progression recompute.
type Player struct {
	ID               int64
	Username         string
	FullName         string
	PhotoURL         string
	Nationality      string
	FavoritePosition string
	Role             Role
	XP               int
	Level            int
}

func (p Player) IsRanked() bool {
	return p.Role != RoleAdmin
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Username == "" {
		return fmt.Errorf("player username is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.XP < 0 {
		return fmt.Errorf("player xp cannot be negative")
	}
	if p.Level < 1 || p.Level > 10 {
		return fmt.Errorf("player level must be within 1..10, got %d", p.Level)
	}

	return nil
}
