package player

import (
	"fmt"
	"math"
	"strings"

	"hex/game"
	"hex/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Mode int

const (
	ModeBest     Mode = iota // Always the move with the most wins
	ModeWeighted             // Sampled in proportion to wins
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "best", "":
		return ModeBest, nil
	case "weighted":
		return ModeWeighted, nil
	}
	return ModeBest, fmt.Errorf("unknown selection mode %q", s)
}

func (m Mode) String() string {
	if m == ModeWeighted {
		return "weighted"
	}
	return "best"
}

// MonteCarlo plays the move its evaluator scores highest, or samples one
// in proportion to the scores.
type MonteCarlo struct {
	evaluator *searcher.MonteCarlo
	mode      Mode
	rng       *rand.Rand
}

// NewMonteCarlo wraps an evaluator. A nil rng is replaced by a randomly
// seeded one; it is only used in ModeWeighted.
func NewMonteCarlo(evaluator *searcher.MonteCarlo, mode Mode, rng *rand.Rand) *MonteCarlo {
	if rng == nil {
		rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return &MonteCarlo{
		evaluator: evaluator,
		mode:      mode,
		rng:       rng,
	}
}

func (p *MonteCarlo) Analyze(b *game.Board) (Decision, error) {
	moves, metric, err := p.evaluator.Search(b)
	if err != nil {
		return Decision{}, fmt.Errorf("evaluate board: %w", err)
	}

	var chosen searcher.ScoredMove
	var ok bool
	switch p.mode {
	case ModeWeighted:
		chosen, ok = searcher.WeightedRandom(moves, p.rng)
	default:
		chosen, ok = searcher.Best(moves)
	}
	if !ok {
		return Decision{}, ErrNoMoves
	}

	summary := searcher.Summarize(moves, p.evaluator.Repetitions())
	log.Debug().Msgf("%s picks %v with %d/%d wins (mean %.3f, sd %.3f)",
		b.Turn(), chosen.Coordinate, chosen.Wins, p.evaluator.Repetitions(), summary.Mean, summary.StdDev)

	return Decision{
		Move:        chosen,
		Candidates:  moves,
		Repetitions: p.evaluator.Repetitions(),
		Metric:      metric,
	}, nil
}

func (p *MonteCarlo) DecideWithScore(b *game.Board) (searcher.ScoredMove, error) {
	d, err := p.Analyze(b)
	if err != nil {
		return searcher.ScoredMove{}, err
	}
	return d.Move, nil
}

func (p *MonteCarlo) Decide(b *game.Board) (game.Coordinate, error) {
	m, err := p.DecideWithScore(b)
	return m.Coordinate, err
}
