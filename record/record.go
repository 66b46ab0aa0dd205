package record

import (
	"errors"
	"fmt"

	"hex/game"
	"hex/searcher"

	"github.com/samber/lo"
)

var ErrUnfinished = errors.New("game has no winner")

// Position is one recorded move.
type Position struct {
	Before      *game.Board
	After       *game.Board
	Mover       game.Mark
	Played      searcher.ScoredMove
	Candidates  []searcher.ScoredMove // Every move considered, in EmptyFields order
	Repetitions int                   // Rollouts per candidate, 0 if the mover did not search
}

// Game collects the positions of a single game for export as training data.
type Game struct {
	Size      int
	Positions []Position
	Random    []RandomPosition
	Winner    game.Mark
}

func NewGame(size int) *Game {
	return &Game{Size: size}
}

// Add records a move. The boards are copied.
func (g *Game) Add(before, after *game.Board, mover game.Mark, played searcher.ScoredMove, candidates []searcher.ScoredMove, repetitions int) {
	g.Positions = append(g.Positions, Position{
		Before:      before.Copy(),
		After:       after.Copy(),
		Mover:       mover,
		Played:      played,
		Candidates:  candidates,
		Repetitions: repetitions,
	})
}

// Line is one training sample: board features followed by a label.
type Line struct {
	Features []int8
	Label    float64
}

// PlayedLines labels every position after the move with the played move's
// win rate, from the mover's perspective.
func (g *Game) PlayedLines() ([]Line, error) {
	lines := make([]Line, 0, len(g.Positions))
	for i, p := range g.Positions {
		if p.Repetitions == 0 {
			continue
		}
		label, err := searcher.Probability(p.Played.Wins, p.Repetitions)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		lines = append(lines, Line{
			Features: game.Perspective(p.After, p.Mover),
			Label:    label,
		})
	}
	return lines, nil
}

type Options struct {
	Normalize       bool // Min-max scale labels within each position
	FirstPlayerOnly bool // Only positions where player A moved
}

// CandidateLines labels every considered move of every searched position.
func (g *Game) CandidateLines(opts Options) ([]Line, error) {
	var lines []Line
	for i, p := range g.Positions {
		if p.Repetitions == 0 || len(p.Candidates) == 0 {
			continue
		}
		if opts.FirstPlayerOnly && p.Mover != game.PlayerA {
			continue
		}

		minWins := lo.MinBy(p.Candidates, func(a, b searcher.ScoredMove) bool { return a.Wins < b.Wins }).Wins
		maxWins := lo.MaxBy(p.Candidates, func(a, b searcher.ScoredMove) bool { return a.Wins > b.Wins }).Wins
		probe := p.Before.Copy()
		for _, c := range p.Candidates {
			var label float64
			if opts.Normalize && minWins != maxWins {
				label = Normalize(float64(c.Wins), float64(minWins), float64(maxWins))
			} else {
				var err error
				label, err = searcher.Probability(c.Wins, p.Repetitions)
				if err != nil {
					return nil, fmt.Errorf("move %d candidate %v: %w", i+1, c.Coordinate, err)
				}
			}

			if !probe.PlaceMark(c.Coordinate, p.Mover) {
				return nil, fmt.Errorf("move %d: candidate %v is not free", i+1, c.Coordinate)
			}
			lines = append(lines, Line{
				Features: game.Perspective(probe, p.Mover),
				Label:    label,
			})
			probe.ClearMark(c.Coordinate)
		}
	}
	return lines, nil
}

// OutcomeLines labels every position after a move with 1 when player A
// went on to win, plus the colour-swapped position with the opposite label.
func (g *Game) OutcomeLines() ([]Line, error) {
	if !g.Winner.IsPlayer() {
		return nil, ErrUnfinished
	}
	won := 0.0
	if g.Winner == game.PlayerA {
		won = 1
	}
	lines := make([]Line, 0, 2*len(g.Positions))
	for _, p := range g.Positions {
		lines = append(lines,
			Line{Features: game.Features(p.After, false), Label: won},
			Line{Features: game.Features(p.After, true), Label: 1 - won},
		)
	}
	return lines, nil
}

// Normalize min-max scales p. When low equals high the result is 0 for an
// all-zero range and 1 otherwise.
func Normalize(p, low, high float64) float64 {
	if low != high {
		return (p - low) / (high - low)
	}
	if low == 0 {
		return 0
	}
	return 1
}
