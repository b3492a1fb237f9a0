package minimax

import "github.com/mitchelldurbincs/ConnectR/internal/game/core"

// Role is the side a search node is evaluated for.
type Role int

const (
	// Maximizing is player A's role.
	Maximizing Role = iota
	// Minimizing is player B's role.
	Minimizing
)

// RoleFor maps a player to the role it searches with.
func RoleFor(p core.Player) Role {
	if p == core.PlayerB {
		return Minimizing
	}
	return Maximizing
}

func (r Role) Other() Role {
	if r == Maximizing {
		return Minimizing
	}
	return Maximizing
}

func (r Role) Player() core.Player {
	if r == Minimizing {
		return core.PlayerB
	}
	return core.PlayerA
}

func (r Role) String() string {
	if r == Minimizing {
		return "min"
	}
	return "max"
}
