package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchesVerticalTriple(t *testing.T) {
	g := GridFromColumns(5, []int{1, 1, 1})

	groups := FindMatches(g, nil, MinMatchCount)

	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Value)
	assert.ElementsMatch(t, []Coord{At(0, 0), At(0, 1), At(0, 2)}, groups[0].Cells)
}

func TestFindMatchesIgnoresSmallGroups(t *testing.T) {
	g := GridFromColumns(5, []int{1, 1}, []int{2}, []int{2})

	assert.Empty(t, FindMatches(g, nil, MinMatchCount))
}

func TestFindMatchesNoDiagonals(t *testing.T) {
	// 3s touch only corner to corner
	g := GridFromColumns(5,
		[]int{3, 1},
		[]int{1, 3, 1},
		[]int{2, 1, 3},
	)

	for _, group := range FindMatches(g, nil, MinMatchCount) {
		assert.NotEqual(t, 3, group.Value, "diagonal 3s must not connect")
	}
}

func TestFindMatchesLShape(t *testing.T) {
	g := GridFromColumns(5,
		[]int{2, 2, 2},
		[]int{2},
		[]int{1},
	)

	groups := FindMatches(g, nil, MinMatchCount)

	require.Len(t, groups, 1)
	assert.Equal(t, 4, groups[0].Size())
}

func TestFindMatchesOrderedByDecreasingValue(t *testing.T) {
	g := GridFromColumns(5,
		[]int{1, 1, 1},
		[]int{2, 3},
		[]int{4, 4, 4},
		[]int{2, 3, 3},
		[]int{2, 3},
	)

	groups := FindMatches(g, nil, MinMatchCount)

	values := make([]int, len(groups))
	for i, group := range groups {
		values[i] = group.Value
	}
	assert.Equal(t, []int{4, 3, 1}, values)
}

func TestFindMatchesOverflowParticipates(t *testing.T) {
	// Checkerboard below row 4 so only the 5s can match
	g := GridFromColumns(5,
		[]int{1, 2, 1, 2, 5},
		[]int{2, 1, 2, 1, 5},
	)
	require.Empty(t, FindMatches(g, nil, MinMatchCount))

	groups := FindMatches(g, &Overflow{Col: 0, Value: 5}, MinMatchCount)

	require.Len(t, groups, 1)
	assert.Equal(t, 5, groups[0].Value)
	assert.ElementsMatch(t, []Coord{At(0, 5), At(0, 4), At(1, 4)}, groups[0].Cells)
}

func TestFindMatchesOverflowOnlyExtendsItsColumn(t *testing.T) {
	// Overflow at column 1 cannot reach column 0's row 5 (which does not exist)
	g := GridFromColumns(5,
		[]int{1, 2, 1, 2, 4},
		[]int{2, 1, 2, 1, 3},
		[]int{1, 2, 1, 2, 4},
	)

	assert.Empty(t, FindMatches(g, &Overflow{Col: 1, Value: 4}, MinMatchCount))
}

func TestFindMatchesOverflowOutOfRangeIgnored(t *testing.T) {
	g := GridFromColumns(5, []int{1, 1})
	assert.Empty(t, FindMatches(g, &Overflow{Col: 7, Value: 1}, MinMatchCount))
}

func TestFindMatchesGroupsAreValidAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 200; trial++ {
		cols := make([][]int, 5)
		for c := range cols {
			height := rng.Intn(6)
			for r := 0; r < height; r++ {
				cols[c] = append(cols[c], 1+rng.Intn(3))
			}
		}
		g := GridFromColumns(5, cols...)

		seen := make(map[Coord]bool)
		for _, group := range FindMatches(g, nil, MinMatchCount) {
			require.GreaterOrEqual(t, group.Size(), MinMatchCount)
			for _, c := range group.Cells {
				require.Equal(t, group.Value, g.At(c.Col, c.Row), "trial %d: cell %v", trial, c)
				require.False(t, seen[c], "trial %d: cell %v in two groups", trial, c)
				seen[c] = true
			}
		}
	}
}

func TestMatchGroupTarget(t *testing.T) {
	group := MatchGroup{Value: 1, Cells: []Coord{At(3, 0), At(2, 1), At(1, 0), At(2, 0)}}
	assert.Equal(t, At(1, 0), group.Target())
}
