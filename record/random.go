package record

import (
	"fmt"

	"hex/game"
	"hex/searcher"

	"golang.org/x/exp/rand"
)

type RandomOptions struct {
	Repetitions int // Rollouts per candidate on each random position
	Trials      int // Random positions per move count
	From        int // Fewest random moves played
	To          int // Most random moves played, stepping by two
}

func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		Repetitions: 10000,
		Trials:      2,
		From:        1,
		To:          5,
	}
}

// RandomPosition is a board reached by random play, with every move on it
// evaluated and sorted best first.
type RandomPosition struct {
	Board       *game.Board
	Moves       []searcher.ScoredMove
	Repetitions int
}

// Sampler branches random positions off real games to widen the training
// data beyond what the agents actually play. Positions seen before are
// skipped.
type Sampler struct {
	opts      RandomOptions
	rng       *rand.Rand
	evaluator *searcher.MonteCarlo
	seen      map[uint64]struct{}
}

func NewSampler(opts RandomOptions, seed uint64) *Sampler {
	rng := rand.New(rand.NewSource(seed))
	return &Sampler{
		opts: opts,
		rng:  rng,
		evaluator: searcher.NewMonteCarlo(
			searcher.WithWorkers(1),
			searcher.WithRepetitions(opts.Repetitions),
			searcher.WithSeed(rng.Uint64()),
		),
		seen: make(map[uint64]struct{}),
	}
}

// Sample plays From, From+2, ..., To random moves on copies of b, Trials
// times each, and evaluates the resulting positions.
func (s *Sampler) Sample(b *game.Board) ([]RandomPosition, error) {
	var positions []RandomPosition
	for moves := s.opts.From; moves <= s.opts.To; moves += 2 {
		for trial := 0; trial < s.opts.Trials; trial++ {
			board := b.Copy()
			s.playRandom(board, moves)
			if board.EmptyCount() == 0 {
				continue
			}
			hash := board.Hash()
			if _, ok := s.seen[hash]; ok {
				continue
			}
			s.seen[hash] = struct{}{}

			scored, err := s.evaluator.Evaluate(board)
			if err != nil {
				return nil, fmt.Errorf("evaluate random position: %w", err)
			}
			positions = append(positions, RandomPosition{
				Board:       board,
				Moves:       searcher.SortByWins(scored),
				Repetitions: s.evaluator.Repetitions(),
			})
		}
	}
	return positions, nil
}

func (s *Sampler) playRandom(b *game.Board, moves int) {
	for i := 0; i < moves && b.EmptyCount() > 0; i++ {
		fields := b.EmptyFields()
		b.PlaceMark(fields[s.rng.Intn(len(fields))], b.Turn())
	}
}

// RandomLines labels every evaluated move with its min-max normalised win
// count within the position.
func RandomLines(positions []RandomPosition) []Line {
	var lines []Line
	for _, p := range positions {
		if len(p.Moves) == 0 {
			continue
		}
		high := float64(p.Moves[0].Wins)
		low := float64(p.Moves[len(p.Moves)-1].Wins)
		mover := p.Board.Turn()
		probe := p.Board.Copy()
		for _, m := range p.Moves {
			probe.PlaceMark(m.Coordinate, mover)
			lines = append(lines, Line{
				Features: game.Perspective(probe, mover),
				Label:    Normalize(float64(m.Wins), low, high),
			})
			probe.ClearMark(m.Coordinate)
		}
	}
	return lines
}
