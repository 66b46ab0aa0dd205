package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustLoad(t *testing.T, s string) *Board {
	t.Helper()
	b, err := Load(strings.NewReader(s))
	require.NoError(t, err)
	return b
}

// transposeSwap mirrors the board along its main diagonal and swaps the
// players, turning an A connection into a B connection.
func transposeSwap(b *Board) *Board {
	n := b.Size()
	cells := make([]Mark, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cells[col*n+row] = b.cells[row*n+col].Opponent()
		}
	}
	return newBoardFromCells(n, cells)
}

func TestConnectedHorizontalRow(t *testing.T) {
	b := mustLoad(t, `4
0 0 0 0
2 2 2 2
0 0 0 0
0 0 0 0`)

	require.True(t, Connected(b, PlayerB), "Full row connects left and right")
	require.False(t, Connected(b, PlayerA))
}

func TestConnectedEdges(t *testing.T) {
	t.Run("single cell board", func(t *testing.T) {
		b := mustLoad(t, "1 1")
		require.True(t, Connected(b, PlayerA))
		require.False(t, Connected(b, PlayerB))
	})

	t.Run("empty board", func(t *testing.T) {
		b := NewBoard(5)
		require.False(t, Connected(b, PlayerA))
		require.False(t, Connected(b, PlayerB))
	})

	t.Run("non-adjacent diagonal is not a path", func(t *testing.T) {
		b := mustLoad(t, `3
1 0 0
0 1 0
0 0 1`)
		require.False(t, Connected(b, PlayerA))
	})

	t.Run("anti-diagonal is a path", func(t *testing.T) {
		b := mustLoad(t, `3
0 0 1
0 1 0
1 0 0`)
		require.True(t, Connected(b, PlayerA))
		require.True(t, Connected(transposeSwap(b), PlayerB))
	})
}

func TestConnectedSnakingPath(t *testing.T) {
	// Player A's only path runs down the left edge, along row 3, back up to
	// row 2 and down the right edge again.
	b := mustLoad(t, `5
1 2 2 2 2
1 2 2 2 2
1 2 2 1 1
1 1 1 2 1
2 2 2 2 1`)

	t.Run("vertical player", func(t *testing.T) {
		require.True(t, Connected(b, PlayerA))
		require.False(t, Connected(b, PlayerB))
		require.Equal(t, PlayerA, TrackerFor(b).Winner())
	})

	t.Run("horizontal player", func(t *testing.T) {
		mirrored := transposeSwap(b)
		require.True(t, Connected(mirrored, PlayerB))
		require.False(t, Connected(mirrored, PlayerA))
		require.Equal(t, PlayerB, TrackerFor(mirrored).Winner())
	})
}

func TestConnectedMatchesTracker(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{1, 2, 3, 5, 7, 11} {
		scanner := NewScanner(size)
		for trial := 0; trial < 200; trial++ {
			cells := make([]Mark, size*size)
			for i := range cells {
				cells[i] = PlayerA
				if rng.Intn(2) == 1 {
					cells[i] = PlayerB
				}
			}
			b := newBoardFromCells(size, cells)
			tr := TrackerFor(b)

			a := scanner.Connected(b, PlayerA)
			bb := scanner.Connected(b, PlayerB)
			require.Equal(t, tr.Connected(PlayerA), a, "Scan for A disagrees with tracker on\n%s", b)
			require.Equal(t, tr.Connected(PlayerB), bb, "Scan for B disagrees with tracker on\n%s", b)
			require.True(t, a != bb, "Exactly one player connects on a full board\n%s", b)
		}
	}
}

func TestScannerSizeMismatchPanics(t *testing.T) {
	require.Panics(t, func() { NewScanner(3).Connected(NewBoard(4), PlayerA) })
}
