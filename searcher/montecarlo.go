package searcher

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"hex/experiments/metrics"
	"hex/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

const DefaultRepetitions = 1000

var ErrStaleBoard = errors.New("board changed during evaluation")

// ScoredMove is a candidate move with the number of rollouts it won.
type ScoredMove struct {
	Coordinate game.Coordinate
	Wins       int
}

type Option func(m *MonteCarlo)

// MonteCarlo scores every empty cell by the fraction of random completions
// in which the player to move ends up connected. Evaluate is not safe for
// concurrent use; the parallelism is internal.
type MonteCarlo struct {
	workers     int
	repetitions int
	rng         *rand.Rand // Master source, only touched by the caller's goroutine
	metrics     metrics.Collector
	logger      zerolog.Logger
}

func WithWorkers(workers int) Option {
	return func(m *MonteCarlo) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

func WithRepetitions(repetitions int) Option {
	return func(m *MonteCarlo) {
		if repetitions > 0 {
			m.repetitions = repetitions
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MonteCarlo) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MonteCarlo) {
		m.logger = logger
	}
}

func NewMonteCarlo(options ...Option) *MonteCarlo {
	m := &MonteCarlo{ // Default values
		workers:     runtime.NumCPU(),
		repetitions: DefaultRepetitions,
		metrics:     metrics.NewDummyCollector(),
		logger:      log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	if m.workers < 1 {
		m.workers = 1
	}
	return m
}

func (m *MonteCarlo) Workers() int {
	return m.workers
}

func (m *MonteCarlo) Repetitions() int {
	return m.repetitions
}

// Evaluate returns one ScoredMove per empty cell, in EmptyFields order.
func (m *MonteCarlo) Evaluate(board *game.Board) ([]ScoredMove, error) {
	moves, _, err := m.Search(board)
	return moves, err
}

// Search is Evaluate plus the metrics of the call.
func (m *MonteCarlo) Search(board *game.Board) ([]ScoredMove, metrics.SearchMetric, error) {
	fields := board.EmptyFields()
	n := len(fields)
	if n == 0 {
		return []ScoredMove{}, metrics.SearchMetric{}, nil
	}
	workers := min(m.workers, n)
	player := board.Turn()

	// Seeds are drawn up front so results depend only on the master seed
	seeds := make([]uint64, workers)
	for i := range seeds {
		seeds[i] = m.rng.Uint64()
	}

	m.metrics.Start(workers, m.repetitions)
	results := make([]ScoredMove, n)
	chunk := n / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if w == workers-1 {
			end = n
		}
		seed := seeds[w]
		g.Go(func() error {
			return m.work(board, fields, start, end, player, seed, results)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	metric := m.metrics.Complete()
	m.logger.Debug().
		Str("player", player.String()).
		Int("fields", n).
		Int("workers", workers).
		Int("repetitions", m.repetitions).
		Dur("duration", metric.Duration).
		Msg("evaluated board")
	return results, metric, nil
}

// work scores fields[start:end] on a private copy of the board.
func (m *MonteCarlo) work(original *game.Board, fields []game.Coordinate, start, end int, player game.Mark, seed uint64, results []ScoredMove) error {
	board := original.Copy()
	scanner := game.NewScanner(board.Size())
	generator := NewRolloutGenerator(rand.New(rand.NewSource(seed)))
	movesPlayed := original.MovesPlayed()
	totalCells := board.Size() * board.Size()

	for f := start; f < end; f++ {
		candidate := fields[f]
		if original.At(candidate) != game.Empty {
			return fmt.Errorf("%w: field %v is marked", ErrStaleBoard, candidate)
		}
		board.Overwrite(candidate, player)

		wins := 0
		for r := 0; r < m.repetitions; r++ {
			sequence := generator.Sequence(movesPlayed, totalCells)
			next := 0
			for i, c := range fields {
				if i == f || original.At(c) != game.Empty {
					continue
				}
				if next == len(sequence) {
					return fmt.Errorf("%w: rollout sequence too short", ErrStaleBoard)
				}
				board.Overwrite(c, sequence[next])
				next++
			}
			if scanner.Connected(board, player) {
				wins++
			}
		}

		results[f] = ScoredMove{Coordinate: candidate, Wins: wins}
		board.Overwrite(candidate, game.Empty)
		m.metrics.AddField()
		m.metrics.AddRollouts(m.repetitions)
	}
	return nil
}
