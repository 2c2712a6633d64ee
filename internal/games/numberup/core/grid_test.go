package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridStoreSetIsCopyOnWrite(t *testing.T) {
	s := NewGridStore(5)
	before := s.Read()

	s.Set(1, 2, 4)
	after := s.Read()

	assert.Equal(t, Empty, before.At(1, 2), "earlier snapshot must not change")
	assert.Equal(t, 4, after.At(1, 2))
	assert.False(t, before.Equal(after))
}

func TestGridStoreSetOutOfBounds(t *testing.T) {
	s := NewGridStore(5)
	before := s.Read()

	for _, c := range []Coord{At(-1, 0), At(0, -1), At(5, 0), At(0, 5), At(9, 9)} {
		s.Set(c.Col, c.Row, 3)
	}

	assert.True(t, before.Equal(s.Read()), "out-of-bounds writes should be no-ops")
	assert.Equal(t, Empty, s.Read().At(0, 5))
}

func TestGridStoreReset(t *testing.T) {
	s := NewGridStore(4)
	s.Set(0, 0, 1)
	s.Set(3, 3, 2)

	s.Reset()

	assert.True(t, s.Read().IsEmpty())
	assert.Equal(t, 4, s.Read().Size())
}

func TestGridStoreReplaceIgnoresSizeMismatch(t *testing.T) {
	s := NewGridStore(5)
	s.Replace(GridFromColumns(4, []int{1}))
	assert.True(t, s.Read().IsEmpty())

	s.Replace(GridFromColumns(5, []int{1}))
	assert.Equal(t, 1, s.Read().At(0, 0))
}

func TestGridLowestEmptyRow(t *testing.T) {
	g := GridFromColumns(5,
		[]int{1, 2, 3, 4, 5},
		[]int{1, 2},
		nil,
	)

	tests := []struct {
		col  int
		want int
	}{
		{0, -1},
		{1, 2},
		{2, 0},
		{-1, -1},
		{5, -1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, g.LowestEmptyRow(tc.col), "col %d", tc.col)
	}
}

func TestGridHasOpenColumn(t *testing.T) {
	full := make([][]int, 3)
	for i := range full {
		full[i] = []int{1, 2, 3}
	}
	assert.False(t, GridFromColumns(3, full...).HasOpenColumn())

	full[2] = []int{1, 2}
	assert.True(t, GridFromColumns(3, full...).HasOpenColumn())
}

func TestGridFromColumnsAndString(t *testing.T) {
	g := GridFromColumns(3, []int{1, 2}, []int{3}, []int{4, 5, 6, 7})

	require.Equal(t, 3, g.Size())
	assert.Equal(t, 6, g.At(2, 2), "extra values are dropped")
	assert.Equal(t, []int{1, 2, 0}, g.Column(0))
	assert.Equal(t, 6, g.MaxValue())
	assert.Equal(t, 6, g.FilledCount())
	assert.Equal(t, ". . 6\n2 . 5\n1 3 4", g.String())
}

func TestGridColumnIsACopy(t *testing.T) {
	g := GridFromColumns(3, []int{1, 2, 3})
	col := g.Column(0)
	col[0] = 9
	assert.Equal(t, 1, g.At(0, 0))
}
