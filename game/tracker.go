package game

// Rail node offsets, counted from size*size.
const (
	railTopA = iota
	railBottomA
	railLeftB
	railRightB
	numRails
)

// Tracker incrementally tracks which cells are connected through chains of
// the same mark, plus one virtual rail node per board edge. It only ever
// merges sets, so it is valid for a single game played forward.
type Tracker struct {
	size   int
	parent []int
	weight []int
}

// NewTracker returns a tracker for an empty board of the given size.
func NewTracker(size int) *Tracker {
	n := size*size + numRails
	t := &Tracker{
		size:   size,
		parent: make([]int, n),
		weight: make([]int, n),
	}
	for i := range t.parent {
		t.parent[i] = i
		t.weight[i] = 1
	}
	return t
}

// TrackerFor builds a tracker reflecting every mark already on the board.
func TrackerFor(b *Board) *Tracker {
	t := NewTracker(b.Size())
	for i, m := range b.cells {
		if m != Empty {
			t.Place(b, Coordinate{Row: i / b.size, Col: i % b.size})
		}
	}
	return t
}

// Place records a mark already placed on the board at c.
func (t *Tracker) Place(b *Board, c Coordinate) {
	mark := b.At(c)
	if mark == Empty {
		return
	}
	cell := c.Index(t.size)
	for _, n := range b.Neighbors(c) {
		t.union(cell, n.Index(t.size))
	}

	rails := t.size * t.size
	last := t.size - 1
	switch mark {
	case PlayerA:
		if c.Row == 0 {
			t.union(cell, rails+railTopA)
		}
		if c.Row == last {
			t.union(cell, rails+railBottomA)
		}
	case PlayerB:
		if c.Col == 0 {
			t.union(cell, rails+railLeftB)
		}
		if c.Col == last {
			t.union(cell, rails+railRightB)
		}
	}
}

// Connected reports whether the player's two rails are joined.
func (t *Tracker) Connected(player Mark) bool {
	rails := t.size * t.size
	switch player {
	case PlayerA:
		return t.find(rails+railTopA) == t.find(rails+railBottomA)
	case PlayerB:
		return t.find(rails+railLeftB) == t.find(rails+railRightB)
	}
	return false
}

// Winner returns the connected player, or Empty while the game is open.
func (t *Tracker) Winner() Mark {
	if t.Connected(PlayerA) {
		return PlayerA
	}
	if t.Connected(PlayerB) {
		return PlayerB
	}
	return Empty
}

func (t *Tracker) find(i int) int {
	for t.parent[i] != i {
		t.parent[i] = t.parent[t.parent[i]] // Path halving
		i = t.parent[i]
	}
	return i
}

func (t *Tracker) union(i, j int) {
	ri, rj := t.find(i), t.find(j)
	if ri == rj {
		return
	}
	if t.weight[ri] < t.weight[rj] {
		ri, rj = rj, ri
	}
	t.parent[rj] = ri
	t.weight[ri] += t.weight[rj]
}
