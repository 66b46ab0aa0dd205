package player

import (
	"errors"

	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
)

var ErrNoMoves = errors.New("no legal moves")

// Player picks the next move for whoever is to move on the board.
type Player interface {
	Decide(b *game.Board) (game.Coordinate, error)
}

// ScoringPlayer also reports the score behind its choice.
type ScoringPlayer interface {
	Player
	DecideWithScore(b *game.Board) (searcher.ScoredMove, error)
}

// Decision is a move together with everything that was weighed to pick it.
type Decision struct {
	Move        searcher.ScoredMove
	Candidates  []searcher.ScoredMove // In EmptyFields order
	Repetitions int
	Metric      metrics.SearchMetric
}

// Analyzer exposes the full evaluation, for recording training data.
type Analyzer interface {
	Analyze(b *game.Board) (Decision, error)
}
