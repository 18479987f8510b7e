package tilt

import (
	"errors"
	"strings"
	"testing"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `O....#....
O.OO#....#
.....##...
OO.#O....O
.O.....O#.
O.#..O.#.#
..O..#O..O
.......O..
#....###..
#OO..#....
`

const afterOneCycle = `.....#....
....#...O#
...OO##...
.OO#......
.....OOO#.
.O#...O#.#
....O#....
......OOOO
#...O###..
#..OO#....`

func TestPart1_Sample(t *testing.T) {
	got, err := Part1(sample)
	require.NoError(t, err)
	assert.Equal(t, 136, got)
}

func TestPart2_Sample(t *testing.T) {
	got, err := Part2(sample, DefaultCycles)
	require.NoError(t, err)
	assert.Equal(t, 64, got)
}

func TestSpin_OneCycle(t *testing.T) {
	d, err := Parse(sample)
	require.NoError(t, err)
	assert.Equal(t, afterOneCycle, d.Spin().String())
}

func TestTilt_EachHeading(t *testing.T) {
	d, err := Parse("O.#O.")
	require.NoError(t, err)

	tests := []struct {
		heading grid.Heading
		want    string
	}{
		{heading: grid.Left, want: "O.#O."},
		{heading: grid.Right, want: ".O#.O"},
		{heading: grid.Up, want: "O.#O."},
		{heading: grid.Down, want: "O.#O."},
	}
	for _, tt := range tests {
		t.Run(tt.heading.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, d.Tilt(tt.heading).String())
		})
	}
}

func TestTilt_LeavesOriginalUntouched(t *testing.T) {
	d, err := Parse(sample)
	require.NoError(t, err)
	d.Spin()
	assert.Equal(t, strings.TrimSuffix(sample, "\n"), d.String())
}

func TestSpinCycles_MatchesDirectSimulation(t *testing.T) {
	d, err := Parse(sample)
	require.NoError(t, err)

	direct := d
	for n := 1; n <= 40; n++ {
		direct = direct.Spin()
		shortcut, _ := d.SpinCycles(n)
		assert.Equal(t, direct.String(), shortcut.String(), "cycles=%d", n)
	}

	_, cycle := d.SpinCycles(DefaultCycles)
	require.NotNil(t, cycle)
	assert.Positive(t, cycle.Period)

	atStart, _ := d.SpinCycles(cycle.Start)
	again, _ := d.SpinCycles(cycle.Start + cycle.Period)
	assert.Equal(t, atStart.String(), again.String())
}

func TestParse_Errors(t *testing.T) {
	_, err := Part1("")
	assert.True(t, errors.Is(err, search.ErrEmptyGrid))

	_, err = Part1("O.\nO")
	assert.True(t, errors.Is(err, grid.ErrNonRectangular))
}
