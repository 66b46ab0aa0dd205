package searcher

import (
	"strings"
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func loadBoard(t *testing.T, s string) *game.Board {
	t.Helper()
	b, err := game.Load(strings.NewReader(s))
	require.NoError(t, err)
	return b
}

// randomBoard plays moves random legal moves in alternation.
func randomBoard(rng *rand.Rand, size, moves int) *game.Board {
	b := game.NewBoard(size)
	for i := 0; i < moves; i++ {
		fields := b.EmptyFields()
		b.PlaceMark(fields[rng.Intn(len(fields))], b.Turn())
	}
	return b
}

func TestEvaluateShape(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	evaluator := NewMonteCarlo(WithWorkers(3), WithRepetitions(20), WithSeed(11))

	for _, size := range []int{2, 3, 5, 7} {
		for _, moves := range []int{0, 1, size, size*size - 2} {
			b := randomBoard(rng, size, moves)
			before := b.Copy()

			got, err := evaluator.Evaluate(b)

			require.NoError(t, err)
			require.Len(t, got, b.EmptyCount(), "One scored move per empty cell")
			for i, c := range b.EmptyFields() {
				require.Equal(t, c, got[i].Coordinate, "Results should follow EmptyFields order")
				require.GreaterOrEqual(t, got[i].Wins, 0)
				require.LessOrEqual(t, got[i].Wins, 20)
			}
			require.True(t, b.Equal(before), "Evaluation must not touch the caller's board")
		}
	}
}

func TestEvaluateTwoEmptyCells(t *testing.T) {
	b := loadBoard(t, `3
1 2 1
2 1 2
0 1 0`)
	require.Equal(t, game.PlayerB, b.Turn())
	evaluator := NewMonteCarlo(WithWorkers(2), WithRepetitions(50))

	got, err := evaluator.Evaluate(b)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, m := range got {
		require.GreaterOrEqual(t, m.Wins, 0)
		require.LessOrEqual(t, m.Wins, 50)
	}
}

func TestEvaluateFullBoard(t *testing.T) {
	b := loadBoard(t, "2 1 2 2 1")
	evaluator := NewMonteCarlo(WithWorkers(4))

	got, err := evaluator.Evaluate(b)

	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestEvaluateWinningMove(t *testing.T) {
	// A to move; (2,0) completes column 0 whatever happens elsewhere
	b := loadBoard(t, `3
1 0 2
1 0 2
0 0 0`)
	require.Equal(t, game.PlayerA, b.Turn())
	evaluator := NewMonteCarlo(WithWorkers(2), WithRepetitions(40), WithSeed(1))

	got, err := evaluator.Evaluate(b)

	require.NoError(t, err)
	for _, m := range got {
		if m.Coordinate == (game.Coordinate{Row: 2, Col: 0}) {
			require.Equal(t, 40, m.Wins, "Completing the column wins every rollout")
		}
	}
}

func TestEvaluateLosingPosition(t *testing.T) {
	// B to move with A already connected down column 0 after any completion
	b := loadBoard(t, `3
1 0 0
1 0 2
1 2 0`)
	require.Equal(t, game.PlayerB, b.Turn())
	evaluator := NewMonteCarlo(WithWorkers(2), WithRepetitions(30), WithSeed(1))

	got, err := evaluator.Evaluate(b)

	require.NoError(t, err)
	for _, m := range got {
		require.Zero(t, m.Wins, "B cannot connect once A has")
	}
}

func TestEvaluateWorkerCounts(t *testing.T) {
	b := loadBoard(t, `3
1 2 1
2 0 0
0 1 2`)

	t.Run("more workers than fields", func(t *testing.T) {
		evaluator := NewMonteCarlo(WithWorkers(64), WithRepetitions(10))

		got, err := evaluator.Evaluate(b)

		require.NoError(t, err)
		require.Len(t, got, 3)
	})

	t.Run("non-positive worker count keeps the default", func(t *testing.T) {
		evaluator := NewMonteCarlo(WithWorkers(0), WithRepetitions(-5))

		require.GreaterOrEqual(t, evaluator.Workers(), 1)
		require.Equal(t, DefaultRepetitions, evaluator.Repetitions())
	})

	t.Run("seeded runs are reproducible", func(t *testing.T) {
		e1 := NewMonteCarlo(WithWorkers(2), WithRepetitions(25), WithSeed(42))
		e2 := NewMonteCarlo(WithWorkers(2), WithRepetitions(25), WithSeed(42))

		got1, err := e1.Evaluate(b)
		require.NoError(t, err)
		got2, err := e2.Evaluate(b)
		require.NoError(t, err)

		require.Equal(t, got1, got2)
	})
}

func TestSearchMetrics(t *testing.T) {
	b := loadBoard(t, `3
1 0 0
0 2 0
0 0 0`)
	evaluator := NewMonteCarlo(WithWorkers(4), WithRepetitions(10), WithMetrics())

	got, metric, err := evaluator.Search(b)

	require.NoError(t, err)
	require.Len(t, got, 7)
	require.Equal(t, 4, metric.Workers)
	require.Equal(t, 10, metric.Repetitions)
	require.Equal(t, 7, metric.Fields)
	require.Equal(t, 70, metric.Rollouts)
}
