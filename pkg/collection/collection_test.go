package collection_test

import (
	"testing"

	"github.com/beshgebeya/pos/pkg/collection"
	"github.com/stretchr/testify/assert"
)

type line struct {
	ID  uint
	Qty int
}

func TestSortByIsStableAndCopies(t *testing.T) {
	in := []line{{1, 3}, {2, 5}, {3, 3}, {4, 9}}

	got := collection.SortBy(in, func(a, b line) bool { return a.Qty > b.Qty })

	assert.Equal(t, []uint{4, 2, 1, 3}, collection.Map(got, func(l line) uint { return l.ID }))
	assert.Equal(t, uint(1), in[0].ID, "input must not be reordered")
}

func TestTake(t *testing.T) {
	s := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, collection.Take(s, 2))
	assert.Equal(t, s, collection.Take(s, 10))
	assert.Empty(t, collection.Take(s, -1))
}

func TestFlatMapFilterReduce(t *testing.T) {
	baskets := [][]line{{{1, 2}, {2, 0}}, {{3, 4}}}

	all := collection.FlatMap(baskets, func(b []line) []line { return b })
	nonEmpty := collection.Filter(all, func(l line) bool { return l.Qty > 0 })
	total := collection.Reduce(nonEmpty, 0, func(acc int, l line) int { return acc + l.Qty })

	assert.Len(t, nonEmpty, 2)
	assert.Equal(t, 6, total)
}

func TestKeyByLastWins(t *testing.T) {
	m := collection.KeyBy([]line{{1, 1}, {1, 7}, {2, 2}}, func(l line) uint { return l.ID })
	assert.Equal(t, 7, m[1].Qty)
	assert.Len(t, m, 2)
}
