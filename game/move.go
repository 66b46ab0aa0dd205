package game

import "fmt"

// Coordinate addresses a cell by zero-based row and column.
type Coordinate struct {
	Row int
	Col int
}

// InBounds reports whether the coordinate lies on a board of the given size.
func (c Coordinate) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Index returns the row-major cell index on a board of the given size.
func (c Coordinate) Index(size int) int {
	return c.Row*size + c.Col
}

// String renders the coordinate 1-based, the way players type it.
func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d", c.Row+1, c.Col+1)
}
