package searcher

import (
	"errors"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

var ErrEmptyTable = errors.New("frequency table is empty")

// FrequencyTable picks items at random according to integer weights.
type FrequencyTable[T comparable] struct {
	items   []T
	weights []int
}

// Add registers an item, or raises its weight if already present.
// Non-positive weights are ignored.
func (t *FrequencyTable[T]) Add(item T, weight int) {
	if weight <= 0 {
		return
	}
	if _, i, ok := lo.FindIndexOf(t.items, func(x T) bool { return x == item }); ok {
		t.weights[i] += weight
		return
	}
	t.items = append(t.items, item)
	t.weights = append(t.weights, weight)
}

func (t *FrequencyTable[T]) Len() int {
	return len(t.items)
}

func (t *FrequencyTable[T]) Total() int {
	return lo.Sum(t.weights)
}

// Weight returns the accumulated weight of item.
func (t *FrequencyTable[T]) Weight(item T) int {
	_, i, ok := lo.FindIndexOf(t.items, func(x T) bool { return x == item })
	if !ok {
		return 0
	}
	return t.weights[i]
}

// Pick draws uniformly from [1, Total] and returns the first item whose
// cumulative weight covers the draw.
func (t *FrequencyTable[T]) Pick(rng *rand.Rand) (T, error) {
	var zero T
	total := t.Total()
	if total == 0 {
		return zero, ErrEmptyTable
	}
	draw := rng.Intn(total) + 1
	cumulative := 0
	for i, w := range t.weights {
		cumulative += w
		if draw <= cumulative {
			return t.items[i], nil
		}
	}
	return zero, ErrEmptyTable
}
