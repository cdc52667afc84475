package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupByKeepsFirstOccurrence(t *testing.T) {
	type row struct {
		id   int
		name string
	}
	rows := []row{{1, "a"}, {2, "b"}, {1, "c"}, {3, "d"}, {2, "e"}}

	out := dedupBy(rows, func(r row) int { return r.id })
	assert.Equal(t, []row{{1, "a"}, {2, "b"}, {3, "d"}}, out)
}

func TestDedupByEmptyAndNil(t *testing.T) {
	assert.Empty(t, dedupBy([]int{}, func(i int) int { return i }))
	assert.Empty(t, dedupBy(nil, func(i int) int { return i }))
}

func TestDedupByDoesNotMutateInput(t *testing.T) {
	in := []int{1, 1, 2}
	out := dedupBy(in, func(i int) int { return i })
	assert.Equal(t, []int{1, 2}, out)
	assert.Equal(t, []int{1, 1, 2}, in)
}
