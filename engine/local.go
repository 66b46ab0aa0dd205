package engine

import (
	"fmt"
	"time"

	"hex/experiments/metrics"
	"hex/game"
	"hex/player"
	"hex/record"
	"hex/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// Engine drives a single game between two players on one goroutine.
type Engine struct {
	board    *game.Board
	tracker  *game.Tracker
	players  [2]player.Player // Player A, player B
	logger   zerolog.Logger
	recorder *record.Game
	observer func(*game.Board)
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRecorder stores every move in g. Candidates are only recorded for
// players that implement player.Analyzer.
func WithRecorder(g *record.Game) Option {
	return func(e *Engine) {
		e.recorder = g
	}
}

// WithObserver calls fn with the board after every move.
func WithObserver(fn func(*game.Board)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// NewEngine sets up a game on board, which may already hold moves. The
// engine plays on board directly.
func NewEngine(board *game.Board, first, second player.Player, options ...Option) *Engine {
	if first == nil || second == nil {
		panic("need two players")
	}
	e := &Engine{
		board:   board,
		tracker: game.TrackerFor(board),
		players: [2]player.Player{first, second},
		logger:  log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Board() *game.Board {
	return e.board
}

func (e *Engine) Run() (Result, error) {
	start := time.Now()
	var moveMetrics []metrics.MoveMetric

	e.logger.Info().Msgf("starting %dx%d game with %s to move", e.board.Size(), e.board.Size(), e.board.Turn())

	step := 0
	for e.tracker.Winner() == game.Empty {
		if e.board.EmptyCount() == 0 {
			return Result{}, ErrNoWinner
		}
		mover := e.board.Turn()
		var before *game.Board
		if e.recorder != nil {
			before = e.board.Copy()
		}

		decision, err := e.decide(e.playerFor(mover))
		if err != nil {
			return Result{}, fmt.Errorf("move %d by %s: %w", step+1, mover, err)
		}
		move := decision.Move.Coordinate
		if !e.board.PlaceMark(move, mover) {
			return Result{}, fmt.Errorf("%w: %s played %v", ErrIllegalMove, mover, move)
		}
		e.tracker.Place(e.board, move)
		step++

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mover.String(),
			Move:         move.String(),
			SearchMetric: decision.Metric,
		})
		if e.recorder != nil {
			e.recorder.Add(before, e.board, mover, decision.Move, decision.Candidates, decision.Repetitions)
		}
		e.logger.Debug().Msgf("move %d: %s plays %v", step, mover, move)
		if e.observer != nil {
			e.observer(e.board)
		}
	}

	winner := e.tracker.Winner()
	if e.recorder != nil {
		e.recorder.Winner = winner
	}
	e.logger.Info().Msgf("player %s wins after %d moves", winner, step)

	return Result{
		Winner:   winner,
		Moves:    step,
		Metrics:  moveMetrics,
		Start:    start,
		Duration: time.Since(start),
	}, nil
}

func (e *Engine) playerFor(mover game.Mark) player.Player {
	if mover == game.PlayerB {
		return e.players[1]
	}
	return e.players[0]
}

// decide asks for the richest answer the player can give.
func (e *Engine) decide(p player.Player) (player.Decision, error) {
	switch p := p.(type) {
	case player.Analyzer:
		return p.Analyze(e.board)
	case player.ScoringPlayer:
		m, err := p.DecideWithScore(e.board)
		return player.Decision{Move: m}, err
	default:
		c, err := p.Decide(e.board)
		return player.Decision{Move: searcher.ScoredMove{Coordinate: c}}, err
	}
}
