package garden

import (
	"errors"
	"testing"

	"github.com/SzymonKubica/advent-of-code/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `...........
.....###.#.
.###.##..#.
..#.#...#..
....#.#....
.##..S####.
.##..#...#.
.......##..
.##.#.####.
.##..##.##.
...........
`

func TestPart1_Sample(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{steps: 0, want: 1},
		{steps: 1, want: 2},
		{steps: 2, want: 4},
		{steps: 3, want: 6},
		{steps: 6, want: 16},
	}
	for _, tt := range tests {
		got, err := Part1(sample, tt.steps)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "steps=%d", tt.steps)
	}
}

func TestWithin_IsUnionOfBothParities(t *testing.T) {
	g, err := Parse(sample)
	require.NoError(t, err)

	for steps := 1; steps <= 10; steps++ {
		within, err := Within(g, steps)
		require.NoError(t, err)
		even, err := Exactly(g, steps)
		require.NoError(t, err)
		odd, err := Exactly(g, steps-1)
		require.NoError(t, err)
		assert.Equal(t, even+odd, within, "steps=%d", steps)
	}
}

func TestPart2_OpenField(t *testing.T) {
	got, err := Part2("...\n.S.\n...", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	got, err = Part2("...\n.S.\n...", 2)
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestWalk_RocksBlock(t *testing.T) {
	got, err := Part2("S#.", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestWalk_Errors(t *testing.T) {
	_, err := Part1("", 4)
	assert.True(t, errors.Is(err, search.ErrEmptyGrid))

	_, err = Part1("...\n...", 4)
	assert.True(t, errors.Is(err, search.ErrNoStart))
}
