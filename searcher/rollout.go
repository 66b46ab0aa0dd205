package searcher

import (
	"hex/game"

	"golang.org/x/exp/rand"
)

// Balance splits the cells left after the candidate move between the two
// players so that turns keep alternating through the random completion.
func Balance(movesPlayed, totalCells int) (countA, countB int) {
	remaining := totalCells - movesPlayed - 1
	if remaining <= 0 {
		return 0, 0
	}
	countA = remaining / 2
	if movesPlayed%2 == 1 && remaining%2 == 1 {
		countA++
	}
	return countA, remaining - countA
}

// RolloutGenerator produces shuffled mark sequences for random completions.
// It is not safe for concurrent use; each worker owns one.
type RolloutGenerator struct {
	rng    *rand.Rand
	buffer []game.Mark
}

func NewRolloutGenerator(rng *rand.Rand) *RolloutGenerator {
	return &RolloutGenerator{rng: rng}
}

// Sequence returns a random ordering of the balanced marks. The returned
// slice is only valid until the next call.
func (g *RolloutGenerator) Sequence(movesPlayed, totalCells int) []game.Mark {
	countA, countB := Balance(movesPlayed, totalCells)
	n := countA + countB
	if cap(g.buffer) < n {
		g.buffer = make([]game.Mark, n)
	}
	seq := g.buffer[:n]
	for i := range seq {
		if i < countA {
			seq[i] = game.PlayerA
		} else {
			seq[i] = game.PlayerB
		}
	}

	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq
}
