package game

// Mark is the occupancy state of a single cell.
type Mark byte

const (
	Empty   Mark = iota
	PlayerA      // Vertical player, connects the top and bottom rows
	PlayerB      // Horizontal player, connects the left and right columns
)

// Opponent returns the other player's mark, or Empty for Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

// IsPlayer reports whether the mark belongs to one of the two players.
func (m Mark) IsPlayer() bool {
	return m == PlayerA || m == PlayerB
}

func (m Mark) String() string {
	switch m {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "-"
}
