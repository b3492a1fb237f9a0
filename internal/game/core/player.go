package core

// Player is the owner tag of a cell. Empty marks an unoccupied cell.
type Player int8

const (
	Empty Player = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player. Empty has no opponent and maps to itself.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// IsValid reports whether p is one of the two players (not Empty).
func (p Player) IsValid() bool {
	return p == PlayerA || p == PlayerB
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "."
	}
}

// ParsePlayer converts "A"/"B" (any case) into a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "A", "a", "1":
		return PlayerA, nil
	case "B", "b", "2":
		return PlayerB, nil
	}
	return Empty, ErrInvalidPlayer
}

// MarshalText encodes the player as "A", "B" or ".".
func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
