package record

import (
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
)

func TestSamplerSample(t *testing.T) {
	t.Run("positions are evaluated and sorted", func(t *testing.T) {
		s := NewSampler(RandomOptions{Repetitions: 5, Trials: 2, From: 1, To: 3}, 7)

		positions, err := s.Sample(game.NewBoard(3))

		require.NoError(t, err)
		require.NotEmpty(t, positions)
		require.LessOrEqual(t, len(positions), 4)
		for _, p := range positions {
			require.Contains(t, []int{1, 3}, p.Board.MovesPlayed())
			require.Len(t, p.Moves, p.Board.EmptyCount())
			require.Equal(t, 5, p.Repetitions)
			for i := 1; i < len(p.Moves); i++ {
				require.GreaterOrEqual(t, p.Moves[i-1].Wins, p.Moves[i].Wins, "Best move first")
			}
		}
	})

	t.Run("repeated positions are skipped", func(t *testing.T) {
		s := NewSampler(RandomOptions{Repetitions: 3, Trials: 3, From: 0, To: 0}, 7)
		b := game.NewBoard(3)
		b.PlaceMark(game.Coordinate{Row: 1, Col: 1}, game.PlayerA)

		first, err := s.Sample(b)
		require.NoError(t, err)
		second, err := s.Sample(b)
		require.NoError(t, err)

		require.Len(t, first, 1, "Zero random moves always reach the same board")
		require.Empty(t, second)
	})

	t.Run("source board is untouched", func(t *testing.T) {
		s := NewSampler(RandomOptions{Repetitions: 2, Trials: 1, From: 1, To: 1}, 1)
		b := game.NewBoard(3)

		_, err := s.Sample(b)

		require.NoError(t, err)
		require.Equal(t, 9, b.EmptyCount())
	})
}

func TestRandomLines(t *testing.T) {
	s := NewSampler(RandomOptions{Repetitions: 20, Trials: 1, From: 1, To: 1}, 3)
	positions, err := s.Sample(game.NewBoard(3))
	require.NoError(t, err)
	require.Len(t, positions, 1)

	lines := RandomLines(positions)

	require.Len(t, lines, 8)
	for _, l := range lines {
		require.Len(t, l.Features, 9)
		require.GreaterOrEqual(t, l.Label, 0.0)
		require.LessOrEqual(t, l.Label, 1.0)
	}
	if positions[0].Moves[0].Wins != positions[0].Moves[7].Wins {
		require.InDelta(t, 1.0, lines[0].Label, 1e-9)
		require.InDelta(t, 0.0, lines[7].Label, 1e-9)
	}
}
