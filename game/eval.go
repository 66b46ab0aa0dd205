package game

// Features flattens the board row-major into {-1, 0, 1}: player A's cells
// are 1 and player B's are -1. With swap the players trade places, which
// puts player B's position into player A's perspective.
func Features(b *Board, swap bool) []int8 {
	features := make([]int8, len(b.cells))
	for i, m := range b.cells {
		if swap {
			m = m.Opponent()
		}
		switch m {
		case PlayerA:
			features[i] = 1
		case PlayerB:
			features[i] = -1
		}
	}
	return features
}

// Perspective returns the features as seen by player, always from player
// A's side of the table.
func Perspective(b *Board, player Mark) []int8 {
	return Features(b, player == PlayerB)
}
