package searcher

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

var ErrProbabilityOverflow = errors.New("win probability above 1")

// Best returns the move with the most wins. Only a strictly greater count
// replaces the current best, so ties keep the earliest move.
func Best(moves []ScoredMove) (ScoredMove, bool) {
	if len(moves) == 0 {
		return ScoredMove{}, false
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Wins > best.Wins {
			best = m
		}
	}
	return best, true
}

// WeightedRandom samples a move with probability proportional to its wins.
// When no move won a single rollout it falls back to Best.
func WeightedRandom(moves []ScoredMove, rng *rand.Rand) (ScoredMove, bool) {
	if len(moves) == 0 {
		return ScoredMove{}, false
	}
	total := lo.SumBy(moves, func(m ScoredMove) int { return max(m.Wins, 0) })
	if total == 0 {
		return Best(moves)
	}

	draw := rng.Float64() * float64(total)
	cumulative := 0.0
	last := moves[0]
	for _, m := range moves {
		if m.Wins <= 0 {
			continue
		}
		cumulative += float64(m.Wins)
		if draw < cumulative {
			return m, true
		}
		last = m
	}
	return last, true // Rounding at the upper end
}

// Probability converts a win count into a win rate.
func Probability(wins, repetitions int) (float64, error) {
	if repetitions <= 0 {
		return 0, fmt.Errorf("invalid repetitions %d", repetitions)
	}
	p := float64(wins) / float64(repetitions)
	if p > 1 {
		return 0, fmt.Errorf("%w: %d wins in %d rollouts", ErrProbabilityOverflow, wins, repetitions)
	}
	return p, nil
}

// SortByWins returns a copy ordered from most to fewest wins. Equal counts
// keep their original order.
func SortByWins(moves []ScoredMove) []ScoredMove {
	sorted := slices.Clone(moves)
	slices.SortStableFunc(sorted, func(a, b ScoredMove) int {
		return b.Wins - a.Wins
	})
	return sorted
}

type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize describes the spread of win rates over all candidates.
func Summarize(moves []ScoredMove, repetitions int) Summary {
	if len(moves) == 0 || repetitions <= 0 {
		return Summary{}
	}
	rates := lo.Map(moves, func(m ScoredMove, _ int) float64 {
		return float64(m.Wins) / float64(repetitions)
	})
	s := Summary{
		Min: slices.Min(rates),
		Max: slices.Max(rates),
	}
	if len(rates) == 1 {
		s.Mean = rates[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(rates, nil)
	return s
}
