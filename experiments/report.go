package experiments

import (
	"fmt"
	"io"

	"hex/experiments/metrics"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	histogramBins  = 10
	histogramWidth = 40
)

type Summary struct {
	Games          int
	AgentWins      int // Games won by the main agent
	FirstMoverWins int
	MeanMoves      float64
	Rollouts       int
	lengths        []float64
}

// Summarize aggregates a result from the point of view of the agent with
// the given ID.
func Summarize(agentID int, result Result) Summary {
	s := Summary{Games: len(result.Games)}
	s.AgentWins = lo.CountBy(result.Games, func(g metrics.GameRecord) bool {
		return g.WinnerAgent == agentID
	})
	s.FirstMoverWins = lo.CountBy(result.Games, func(g metrics.GameRecord) bool {
		return g.WinnerAgent == g.StartingAgent
	})
	s.Rollouts = lo.SumBy(result.Moves, func(m metrics.MoveRecord) int {
		return m.Rollouts
	})
	s.lengths = lo.Map(result.Games, func(g metrics.GameRecord, _ int) float64 {
		return float64(g.TotalMoves)
	})
	if s.Games > 0 {
		s.MeanMoves = lo.Sum(s.lengths) / float64(s.Games)
	}
	return s
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.AgentWins) / float64(s.Games)
}

// Report prints the summary followed by a histogram of game lengths.
func Report(w io.Writer, s Summary) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "games: %d\nagent wins: %d (%.1f%%)\nfirst mover wins: %d\nmean moves: %.1f\nrollouts: %d\n",
		s.Games, s.AgentWins, 100*s.WinRate(), s.FirstMoverWins, s.MeanMoves, s.Rollouts); err != nil {
		return err
	}
	if len(s.lengths) == 0 {
		return nil
	}
	if lo.Min(s.lengths) == lo.Max(s.lengths) {
		_, err := fmt.Fprintf(w, "every game took %d moves\n", int(s.lengths[0]))
		return err
	}
	if _, err := fmt.Fprintln(w, "game lengths:"); err != nil {
		return err
	}
	h := histogram.Hist(min(histogramBins, len(s.lengths)), s.lengths)
	return histogram.Fprint(w, h, histogram.Linear(histogramWidth))
}
