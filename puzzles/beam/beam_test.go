package beam

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `.|...\....
|.-.\.....
.....|-...
........|.
..........
.........\
..../.\\..
.-.-/..|..
.|....-|.\
..//.|....
`

func TestPart1_Sample(t *testing.T) {
	got, err := Part1(sample)
	require.NoError(t, err)
	assert.Equal(t, 46, got)
}

func TestPart2_Sample(t *testing.T) {
	got, err := Part2(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, 51, got)
}

func TestTrace_MirrorRedirectsDown(t *testing.T) {
	g, err := Parse(`.\.`)
	require.NoError(t, err)

	visited, err := Trace(g, grid.Move{Pos: grid.Point{X: 0, Y: 0}, Heading: grid.Right})
	require.NoError(t, err)

	states := visited.States()
	require.Len(t, states, 2)
	assert.Equal(t, grid.Move{Pos: grid.Point{X: 1, Y: 0}, Heading: grid.Right}, states[1])
	assert.Equal(t, []grid.Heading{grid.Down}, Deflect(MirrorBack, grid.Right))

	n, err := Energize(g, grid.Move{Pos: grid.Point{X: 0, Y: 0}, Heading: grid.Right})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the beam leaves the grid downwards after the mirror")
}

func TestTrace_LoopTerminates(t *testing.T) {
	// The splitter sends light into a mirror box that feeds it back forever.
	layout := strings.Join([]string{
		`/-\`,
		`|.|`,
		`\-/`,
	}, "\n")
	g, err := Parse(layout)
	require.NoError(t, err)

	n, err := Energize(g, grid.Move{Pos: grid.Point{X: 1, Y: 0}, Heading: grid.Right})
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestDeflect_Splitters(t *testing.T) {
	tests := []struct {
		name string
		e    Element
		in   grid.Heading
		want []grid.Heading
	}{
		{"horizontal pointy end", SplitHorizontal, grid.Left, []grid.Heading{grid.Left}},
		{"horizontal broadside", SplitHorizontal, grid.Down, []grid.Heading{grid.Left, grid.Right}},
		{"vertical pointy end", SplitVertical, grid.Up, []grid.Heading{grid.Up}},
		{"vertical broadside", SplitVertical, grid.Right, []grid.Heading{grid.Up, grid.Down}},
		{"forward mirror", MirrorForward, grid.Right, []grid.Heading{grid.Up}},
		{"empty", Empty, grid.Left, []grid.Heading{grid.Left}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Deflect(test.e, test.in))
		})
	}
}

func TestRender(t *testing.T) {
	g, err := Parse(`.\.` + "\n" + `...`)
	require.NoError(t, err)

	marks, err := Energized(g, grid.Move{Pos: grid.Point{X: 0, Y: 0}, Heading: grid.Right})
	require.NoError(t, err)
	assert.Equal(t, "##.\n.#.", Render(g, marks))
}

func TestParse_Errors(t *testing.T) {
	_, err := Part1(".x.")
	assert.True(t, errors.Is(err, grid.ErrUnrecognizedSymbol))

	_, err = Part1("")
	assert.True(t, errors.Is(err, search.ErrEmptyGrid))

	_, err = Part2(context.Background(), "")
	assert.True(t, errors.Is(err, search.ErrEmptyGrid))
}

func TestDeterminism(t *testing.T) {
	first, err := Part2(context.Background(), sample)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Part2(context.Background(), sample)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
