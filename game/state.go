package game

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// neighborOffsets are the six hex-adjacent (row, col) offsets.
var neighborOffsets = [6][2]int{
	{-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0},
}

// Board represents the rhombus-shaped board on which Hex is played.
// Player A connects row 0 with row size-1, player B connects column 0 with
// column size-1.
type Board struct {
	size  int
	cells []Mark // Row-major, size*size
	empty int    // Number of empty cells
	turn  Mark   // Player to move next
}

// NewBoard returns an empty board with player A to move.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]Mark, size*size),
		empty: size * size,
		turn:  PlayerA,
	}
}

// newBoardFromCells derives the bookkeeping from existing cells. The player
// to move is A when both players hold the same number of cells.
func newBoardFromCells(size int, cells []Mark) *Board {
	b := &Board{size: size, cells: cells}
	var a, bb int
	for _, m := range cells {
		switch m {
		case Empty:
			b.empty++
		case PlayerA:
			a++
		case PlayerB:
			bb++
		}
	}
	b.turn = PlayerA
	if a > bb {
		b.turn = PlayerB
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Turn() Mark {
	return b.turn
}

func (b *Board) EmptyCount() int {
	return b.empty
}

// MovesPlayed returns the number of marked cells.
func (b *Board) MovesPlayed() int {
	return len(b.cells) - b.empty
}

// At returns the mark of an in-bounds cell.
func (b *Board) At(c Coordinate) Mark {
	return b.cells[c.Row*b.size+c.Col]
}

// PlaceMark marks an empty cell and passes the turn. It returns false, and
// changes nothing, when the cell is off the board or already marked.
func (b *Board) PlaceMark(c Coordinate, m Mark) bool {
	if !m.IsPlayer() || !b.IsLegal(c) {
		return false
	}
	b.cells[c.Row*b.size+c.Col] = m
	b.empty--
	b.turn = b.turn.Opponent()
	return true
}

// ClearMark undoes PlaceMark. Clears must happen in reverse order of
// placement for the turn to stay consistent.
func (b *Board) ClearMark(c Coordinate) bool {
	if !c.InBounds(b.size) || b.At(c) == Empty {
		return false
	}
	b.cells[c.Row*b.size+c.Col] = Empty
	b.empty++
	b.turn = b.turn.Opponent()
	return true
}

// Overwrite sets a cell without any bookkeeping. Only for private scratch
// copies that are filled wholesale, such as rollout boards.
func (b *Board) Overwrite(c Coordinate, m Mark) {
	b.cells[c.Row*b.size+c.Col] = m
}

// IsLegal reports whether the cell is on the board and unmarked.
func (b *Board) IsLegal(c Coordinate) bool {
	return c.InBounds(b.size) && b.cells[c.Row*b.size+c.Col] == Empty
}

// EmptyFields returns the coordinates of all unmarked cells in row-major
// order. Callers index into this order, so it must stay stable.
func (b *Board) EmptyFields() []Coordinate {
	fields := make([]Coordinate, 0, b.empty)
	for i, m := range b.cells {
		if m == Empty {
			fields = append(fields, Coordinate{Row: i / b.size, Col: i % b.size})
		}
	}
	return fields
}

// Neighbors returns the adjacent cells holding the same mark as c.
func (b *Board) Neighbors(c Coordinate) []Coordinate {
	mark := b.At(c)
	result := make([]Coordinate, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		n := Coordinate{Row: c.Row + off[0], Col: c.Col + off[1]}
		if n.InBounds(b.size) && b.At(n) == mark {
			result = append(result, n)
		}
	}
	return result
}

// CoordinateAt converts a row-major index into a coordinate.
func (b *Board) CoordinateAt(i int) (Coordinate, error) {
	if i < 0 || i >= len(b.cells) {
		return Coordinate{}, fmt.Errorf("index %d outside board of %d cells", i, len(b.cells))
	}
	return Coordinate{Row: i / b.size, Col: i % b.size}, nil
}

// Copy returns a deep copy with its own backing grid.
func (b *Board) Copy() *Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:  b.size,
		cells: cells,
		empty: b.empty,
		turn:  b.turn,
	}
}

// Equal reports whether both boards hold the same cells, counts and turn.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size || b.empty != other.empty || b.turn != other.turn {
		return false
	}
	for i, m := range b.cells {
		if other.cells[i] != m {
			return false
		}
	}
	return true
}

// Hash fingerprints the cell contents.
func (b *Board) Hash() uint64 {
	buf := make([]byte, len(b.cells))
	for i, m := range b.cells {
		buf[i] = byte(m)
	}
	return xxhash.Sum64(buf)
}

// String draws the board as a rhombus, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		sb.WriteString(strings.Repeat(" ", row))
		for col := 0; col < b.size; col++ {
			fmt.Fprintf(&sb, "%d ", b.cells[row*b.size+col])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
