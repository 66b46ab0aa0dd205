// Package experiments plays series of engine games between Monte Carlo
// agents and collects their metrics and training records.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hex/engine"
	"hex/experiments/metrics"
	"hex/game"
	"hex/player"
	"hex/record"
	"hex/searcher"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Random positions are branched off after the first player's moves once
// this many moves are on the board.
const sampleFrom = 5

var ErrNoOpponent = errors.New("no opponent to play against")

type Options struct {
	Size          int
	Games         int
	Seed          uint64 // 0 draws a random seed
	Agent         metrics.AgentConfig
	Opponents     []metrics.AgentConfig
	Random        bool // Sample random positions for training
	RandomOptions record.RandomOptions
	Start         *game.Board // Optional opening position, copied for every game
}

type Result struct {
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Records []*record.Game
}

// Runner plays the main agent against opponents drawn by weight, switching
// who moves first every game.
type Runner struct {
	opts      Options
	rng       *rand.Rand
	opponents searcher.FrequencyTable[metrics.AgentConfig]
	sampler   *record.Sampler
	logger    zerolog.Logger
}

type Option func(r *Runner)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(opts Options, options ...Option) (*Runner, error) {
	if opts.Size <= 0 && opts.Start == nil {
		return nil, fmt.Errorf("board size %d", opts.Size)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	r := &Runner{
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.Logger,
	}
	for _, o := range opts.Opponents {
		r.opponents.Add(o, o.Weight)
	}
	if opts.Games > 0 && r.opponents.Len() == 0 {
		return nil, ErrNoOpponent
	}
	if opts.Random {
		r.sampler = record.NewSampler(opts.RandomOptions, r.rng.Uint64())
	}
	for _, option := range options {
		option(r)
	}
	r.checkMemory()
	return r, nil
}

func (r *Runner) size() int {
	if r.opts.Start != nil {
		return r.opts.Start.Size()
	}
	return r.opts.Size
}

// checkMemory warns when the boards kept for every recorded game are
// likely to crowd out the machine's memory.
func (r *Runner) checkMemory() {
	cells := uint64(r.size() * r.size())
	estimate := uint64(r.opts.Games) * cells * cells * 2
	if total := memory.TotalMemory(); total > 0 && estimate > total/2 {
		r.logger.Warn().
			Uint64("estimate", estimate).
			Uint64("total", total).
			Msg("game records may not fit in memory")
	}
}

// Run plays the configured number of games. It stops early with ctx's
// error, returning the games finished so far.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result
	r.logger.Info().Msgf("starting %d games on a %dx%d board", r.opts.Games, r.size(), r.size())

	for i := 0; i < r.opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		opponent, err := r.opponents.Pick(r.rng)
		if err != nil {
			return result, err
		}
		id := i + 1
		r.logger.Info().Msgf("starting game %d of %d against agent %d", id, r.opts.Games, opponent.ID)

		gameMetric, moveMetrics, rec, err := r.play(r.opts.Agent, opponent, i%2 == 0)
		if err != nil {
			return result, fmt.Errorf("game %d: %w", id, err)
		}
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         id,
			Agent1:     r.opts.Agent.ID,
			Agent2:     opponent.ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			result.Moves = append(result.Moves, metrics.MoveRecord{
				Game:       id,
				MoveMetric: mm,
			})
		}
		result.Records = append(result.Records, rec)

		r.logger.Info().Msgf("completed game %d with winner: agent %d (%s)", id, gameMetric.WinnerAgent, gameMetric.Winner)
	}

	r.logger.Info().Msgf("completed %d games", r.opts.Games)
	return result, nil
}

// play runs one game. The main agent moves first when agentFirst is set.
func (r *Runner) play(agent, opponent metrics.AgentConfig, agentFirst bool) (metrics.GameMetric, []metrics.MoveMetric, *record.Game, error) {
	first, second := agent, opponent
	if !agentFirst {
		first, second = opponent, agent
	}
	p1, err := r.newPlayer(first)
	if err != nil {
		return metrics.GameMetric{}, nil, nil, err
	}
	p2, err := r.newPlayer(second)
	if err != nil {
		return metrics.GameMetric{}, nil, nil, err
	}

	board := game.NewBoard(r.size())
	if r.opts.Start != nil {
		board = r.opts.Start.Copy()
	}
	rec := record.NewGame(board.Size())
	e := engine.NewEngine(board, p1, p2,
		engine.WithLogger(r.logger),
		engine.WithRecorder(rec),
		engine.WithObserver(func(b *game.Board) { r.sample(b, rec) }),
	)

	res, err := e.Run()
	if err != nil {
		return metrics.GameMetric{}, nil, nil, err
	}

	winnerAgent := first.ID
	if res.Winner == game.PlayerB {
		winnerAgent = second.ID
	}
	end := res.Start.Add(res.Duration)
	return metrics.GameMetric{
		StartingAgent: first.ID,
		Winner:        res.Winner.String(),
		WinnerAgent:   winnerAgent,
		StartTime:     res.Start,
		EndTime:       end,
		Duration:      res.Duration,
		TotalMoves:    res.Moves,
	}, res.Metrics, rec, nil
}

// sample branches random positions off the board after each first-player
// move once the opening is over.
func (r *Runner) sample(b *game.Board, rec *record.Game) {
	if r.sampler == nil {
		return
	}
	moves := b.MovesPlayed()
	if moves < sampleFrom || moves%2 == 0 {
		return
	}
	start := time.Now()
	positions, err := r.sampler.Sample(b)
	if err != nil {
		r.logger.Error().Err(err).Int("moves", moves).Msg("failed to sample random positions")
		return
	}
	rec.Random = append(rec.Random, positions...)
	r.logger.Debug().
		Int("moves", moves).
		Int("positions", len(positions)).
		Dur("duration", time.Since(start)).
		Msg("sampled random positions")
}

func (r *Runner) newPlayer(config metrics.AgentConfig) (player.Player, error) {
	mode, err := player.ParseMode(config.Mode)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	evaluator := searcher.NewMonteCarlo(
		searcher.WithWorkers(config.Workers),
		searcher.WithRepetitions(config.Repetitions),
		searcher.WithSeed(r.rng.Uint64()),
		searcher.WithMetrics(),
		searcher.WithLogger(r.logger),
	)
	return player.NewMonteCarlo(evaluator, mode, rand.New(rand.NewSource(r.rng.Uint64()))), nil
}

// Configs lists the main agent followed by every opponent.
func (r *Runner) Configs() []metrics.AgentConfig {
	return append([]metrics.AgentConfig{r.opts.Agent}, r.opts.Opponents...)
}

// Store writes the agent configs and the game and move records as CSV.
func (r *Runner) Store(w *metrics.Writer, result Result) error {
	if err := w.WriteAgentConfigs(r.Configs()); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := w.WriteGameRecords(result.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := w.WriteMoveRecords(result.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	r.logger.Info().Msgf("stored experiment results in %s", w.Dir())
	return nil
}
