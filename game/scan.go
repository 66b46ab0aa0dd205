package game

import "fmt"

// Scanner decides whether a player connects their two edges by sweeping
// the board line by line along the player's own axis: rows top to bottom
// for player A, columns left to right for player B. It keeps no state
// between calls apart from reusable scratch space, so one scanner per
// goroutine can test any number of throwaway boards.
type Scanner struct {
	size  int
	reach []bool // Line-major reachability, size*size
}

// NewScanner allocates a scanner for boards of the given size.
func NewScanner(size int) *Scanner {
	return &Scanner{
		size:  size,
		reach: make([]bool, size*size),
	}
}

// Connected is a convenience wrapper that allocates a fresh scanner.
func Connected(b *Board, player Mark) bool {
	return NewScanner(b.Size()).Connected(b, player)
}

// Connected reports whether the player's cells join the player's two edges.
//
// The first downward sweep activates a cell when it is owned and touches an
// active cell of the previous line (positions i and i+1), then spreads
// activity sideways within the line. A chain that doubles back towards the
// start edge is picked up by an upward sweep (positions i-1 and i of the
// next line); sweeps alternate until the far edge is reached or nothing
// changes.
func (s *Scanner) Connected(b *Board, player Mark) bool {
	if b.size != s.size {
		panic(fmt.Sprintf("scanner for size %d used on board of size %d", s.size, b.size))
	}
	n := s.size
	clear(s.reach)

	// Strides mapping (line, pos) to a cell index
	lineStride, posStride := n, 1
	if player == PlayerB {
		lineStride, posStride = 1, n
	}

	far := s.reach[(n-1)*n:]
	for {
		changed := false
		for line := 0; line < n; line++ {
			if s.sweep(b.cells, player, line, line-1, lineStride, posStride) {
				changed = true
			}
		}
		for _, active := range far {
			if active {
				return true
			}
		}
		if !changed {
			return false
		}

		changed = false
		for line := n - 2; line >= 0; line-- {
			if s.sweep(b.cells, player, line, line+1, lineStride, posStride) {
				changed = true
			}
		}
		if !changed {
			return false
		}
	}
}

// sweep activates owned cells of line that touch active cells of the
// adjacent line from (from == -1 is the virtual all-active line before the
// start edge), then spreads within the line. It reports whether anything
// was newly activated.
func (s *Scanner) sweep(cells []Mark, player Mark, line, from, lineStride, posStride int) bool {
	n := s.size
	row := s.reach[line*n : line*n+n]
	base := line * lineStride
	changed := false

	switch {
	case from < 0:
		for i := 0; i < n; i++ {
			if !row[i] && cells[base+i*posStride] == player {
				row[i] = true
				changed = true
			}
		}
	case from < line:
		prev := s.reach[from*n : from*n+n]
		for i := 0; i < n-1; i++ {
			if !row[i] && (prev[i] || prev[i+1]) && cells[base+i*posStride] == player {
				row[i] = true
				changed = true
			}
		}
		if !row[n-1] && prev[n-1] && cells[base+(n-1)*posStride] == player {
			row[n-1] = true
			changed = true
		}
	default:
		next := s.reach[from*n : from*n+n]
		if !row[0] && next[0] && cells[base] == player {
			row[0] = true
			changed = true
		}
		for i := 1; i < n; i++ {
			if !row[i] && (next[i] || next[i-1]) && cells[base+i*posStride] == player {
				row[i] = true
				changed = true
			}
		}
	}

	// Cells joined sideways to an active cell
	for i := 1; i < n; i++ {
		if !row[i] && row[i-1] && cells[base+i*posStride] == player {
			row[i] = true
			changed = true
		}
	}
	for i := n - 2; i >= 0; i-- {
		if !row[i] && row[i+1] && cells[base+i*posStride] == player {
			row[i] = true
			changed = true
		}
	}
	return changed
}
