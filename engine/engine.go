package engine

import (
	"errors"
	"time"

	"hex/experiments/metrics"
	"hex/game"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoWinner    = errors.New("board filled without a winner")
)

type Result struct {
	Winner   game.Mark
	Moves    int
	Metrics  []metrics.MoveMetric
	Start    time.Time
	Duration time.Duration
}

type Runner interface {
	// Run plays until one player connects their edges
	Run() (Result, error)
}
