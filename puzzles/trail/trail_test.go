package trail

import (
	"errors"
	"testing"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `89010123
78121874
87430965
96549874
45678903
32019012
01329801
10456732
`

func TestPart1_Sample(t *testing.T) {
	got, err := Part1(sample)
	require.NoError(t, err)
	assert.Equal(t, 36, got)
}

func TestPart2_Sample(t *testing.T) {
	got, err := Part2(sample)
	require.NoError(t, err)
	assert.Equal(t, 81, got)
}

func TestScoreAndRating_SingleHead(t *testing.T) {
	input := `0123
1234
8765
9876
`
	m, err := Parse(input)
	require.NoError(t, err)

	head := grid.Point{X: 0, Y: 0}
	assert.Equal(t, 1, m.Score(head))
	assert.Equal(t, 16, m.Rating(head))
}

func TestRating_SharedMemoMatchesFresh(t *testing.T) {
	m, err := Parse(sample)
	require.NoError(t, err)

	sum := 0
	for _, h := range m.Trailheads() {
		sum += m.Rating(h)
	}
	total, err := m.TotalRating()
	require.NoError(t, err)
	assert.Equal(t, sum, total)
}

func TestParse_Errors(t *testing.T) {
	_, err := Part1("123\n456")
	assert.True(t, errors.Is(err, search.ErrNoStart))

	_, err = Part1("0.")
	assert.True(t, errors.Is(err, grid.ErrUnrecognizedSymbol))
}
