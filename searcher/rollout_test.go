package searcher

import (
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func countMarks(seq []game.Mark) (a, b int) {
	for _, m := range seq {
		switch m {
		case game.PlayerA:
			a++
		case game.PlayerB:
			b++
		}
	}
	return a, b
}

func TestBalance(t *testing.T) {
	t.Run("examples", func(t *testing.T) {
		a, b := Balance(0, 9)
		require.Equal(t, 4, a)
		require.Equal(t, 4, b)

		a, b = Balance(3, 9)
		require.Equal(t, 3, a, "Odd moves and odd remainder give A the extra mark")
		require.Equal(t, 2, b)

		a, b = Balance(0, 16)
		require.Equal(t, 7, a)
		require.Equal(t, 8, b)
	})

	t.Run("last empty cell leaves nothing to fill", func(t *testing.T) {
		a, b := Balance(8, 9)
		require.Zero(t, a)
		require.Zero(t, b)
	})

	t.Run("completions keep turns alternating", func(t *testing.T) {
		for size := 1; size <= 8; size++ {
			total := size * size
			for movesPlayed := 0; movesPlayed < total; movesPlayed++ {
				countA, countB := Balance(movesPlayed, total)
				require.Equal(t, total-movesPlayed-1, countA+countB)

				// Marks on the board after alternating play from A, plus the candidate
				finalA := (movesPlayed+1)/2 + countA
				finalB := movesPlayed/2 + countB
				if movesPlayed%2 == 0 {
					finalA++
				} else {
					finalB++
				}
				require.Contains(t, []int{0, 1}, finalA-finalB,
					"size %d with %d moves played should end with A at most one ahead", size, movesPlayed)
			}
		}
	})
}

func TestRolloutGeneratorSequence(t *testing.T) {
	t.Run("sequence holds the balanced counts", func(t *testing.T) {
		g := NewRolloutGenerator(rand.New(rand.NewSource(1)))
		for size := 1; size <= 6; size++ {
			total := size * size
			for movesPlayed := 0; movesPlayed < total; movesPlayed++ {
				seq := g.Sequence(movesPlayed, total)
				wantA, wantB := Balance(movesPlayed, total)
				a, b := countMarks(seq)

				require.Len(t, seq, wantA+wantB)
				require.Equal(t, wantA, a)
				require.Equal(t, wantB, b)
			}
		}
	})

	t.Run("same seed gives the same sequence", func(t *testing.T) {
		g1 := NewRolloutGenerator(rand.New(rand.NewSource(99)))
		g2 := NewRolloutGenerator(rand.New(rand.NewSource(99)))

		for i := 0; i < 10; i++ {
			require.Equal(t, g1.Sequence(10, 49), g2.Sequence(10, 49))
		}
	})

	t.Run("shuffle moves marks around", func(t *testing.T) {
		g := NewRolloutGenerator(rand.New(rand.NewSource(5)))
		firstB := 0
		for i := 0; i < 200; i++ {
			if g.Sequence(0, 25)[0] == game.PlayerB {
				firstB++
			}
		}

		require.Greater(t, firstB, 0, "Unshuffled sequences always start with A")
		require.Less(t, firstB, 200)
	})
}
