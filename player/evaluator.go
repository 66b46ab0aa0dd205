package player

import (
	"fmt"

	"hex/game"
)

// Scorer rates a position from the point of view of player, who has just
// moved on it. Higher is better.
type Scorer interface {
	Score(b *game.Board, player game.Mark) (float64, error)
}

type ScorerFunc func(b *game.Board, player game.Mark) (float64, error)

func (f ScorerFunc) Score(b *game.Board, player game.Mark) (float64, error) {
	return f(b, player)
}

// Evaluator tries every empty cell and plays the one its scorer rates
// highest. Equal scores keep the earliest cell.
type Evaluator struct {
	scorer Scorer
}

func NewEvaluator(scorer Scorer) *Evaluator {
	return &Evaluator{scorer: scorer}
}

func (e *Evaluator) Decide(b *game.Board) (game.Coordinate, error) {
	fields := b.EmptyFields()
	if len(fields) == 0 {
		return game.Coordinate{}, ErrNoMoves
	}
	player := b.Turn()
	probe := b.Copy()

	best := fields[0]
	bestScore := 0.0
	for i, c := range fields {
		probe.PlaceMark(c, player)
		score, err := e.scorer.Score(probe, player)
		probe.ClearMark(c)
		if err != nil {
			return game.Coordinate{}, fmt.Errorf("score %v: %w", c, err)
		}
		if i == 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}
