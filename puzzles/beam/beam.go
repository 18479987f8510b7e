// Package beam traces light through a contraption of mirrors and splitters.
package beam

import (
	"context"
	"runtime"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
	"golang.org/x/sync/errgroup"
)

// Element is the content of one contraption tile
type Element uint8

const (
	Empty           Element = iota
	MirrorBack              // '\'
	MirrorForward           // '/'
	SplitHorizontal         // '-'
	SplitVertical           // '|'
)

// Legend is the character table for contraption layouts
var Legend = grid.Legend[Element]{
	'.':  Empty,
	'\\': MirrorBack,
	'/':  MirrorForward,
	'-':  SplitHorizontal,
	'|':  SplitVertical,
}

// Symbol returns the layout character for e
func (e Element) Symbol() rune {
	switch e {
	case MirrorBack:
		return '\\'
	case MirrorForward:
		return '/'
	case SplitHorizontal:
		return '-'
	case SplitVertical:
		return '|'
	}
	return '.'
}

// Deflect returns the headings a beam leaves e with after arriving with in.
// Mirrors redirect; splitters fork when hit broadside and pass the beam
// through when hit on their pointy end.
func Deflect(e Element, in grid.Heading) []grid.Heading {
	switch e {
	case MirrorBack:
		switch in {
		case grid.Up:
			return []grid.Heading{grid.Left}
		case grid.Down:
			return []grid.Heading{grid.Right}
		case grid.Left:
			return []grid.Heading{grid.Up}
		default:
			return []grid.Heading{grid.Down}
		}
	case MirrorForward:
		switch in {
		case grid.Up:
			return []grid.Heading{grid.Right}
		case grid.Down:
			return []grid.Heading{grid.Left}
		case grid.Left:
			return []grid.Heading{grid.Down}
		default:
			return []grid.Heading{grid.Up}
		}
	case SplitHorizontal:
		if in.Horizontal() {
			return []grid.Heading{in}
		}
		return []grid.Heading{grid.Left, grid.Right}
	case SplitVertical:
		if !in.Horizontal() {
			return []grid.Heading{in}
		}
		return []grid.Heading{grid.Up, grid.Down}
	}
	return []grid.Heading{in}
}

// Parse reads a contraption layout
func Parse(input string) (*grid.Grid[Element], error) {
	return grid.Parse(input, Legend)
}

// Trace floods the beam entering at entry. States are (position, heading)
// pairs, so a beam caught between mirrors stops once it repeats itself.
func Trace(g *grid.Grid[Element], entry grid.Move) (*search.Visited[grid.Move], error) {
	if err := search.CheckGrid(g.Width(), g.Height(), []grid.Point{entry.Pos}); err != nil {
		return nil, err
	}
	next := func(m grid.Move) []grid.Move {
		return g.Neighbors(m.Pos, m.Heading, Deflect)
	}
	return search.Reach(next, entry), nil
}

// Energized marks every tile the beam passes through
func Energized(g *grid.Grid[Element], entry grid.Move) (*grid.Overlay[bool], error) {
	visited, err := Trace(g, entry)
	if err != nil {
		return nil, err
	}
	marks := grid.OverlayFor[bool](g)
	for _, m := range visited.States() {
		marks.Set(m.Pos, true)
	}
	return marks, nil
}

// Energize counts the tiles energized by the beam entering at entry
func Energize(g *grid.Grid[Element], entry grid.Move) (int, error) {
	visited, err := Trace(g, entry)
	if err != nil {
		return 0, err
	}
	return search.Distinct(visited, func(m grid.Move) grid.Point { return m.Pos }), nil
}

// Render draws the layout with energized tiles shown as '#'
func Render(g *grid.Grid[Element], marks *grid.Overlay[bool]) string {
	return g.Format(func(p grid.Point, e Element) rune {
		if lit, _ := marks.Get(p); lit {
			return '#'
		}
		return e.Symbol()
	})
}

// MaxEnergized tries every border entry and returns the best count. Each
// entry is an independent flood, so they run concurrently.
func MaxEnergized(ctx context.Context, g *grid.Grid[Element]) (int, error) {
	if g.Empty() {
		return 0, search.CheckGrid(0, 0, nil)
	}

	entries := g.Edges()
	counts := make([]int, len(entries))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, entry := range entries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := Energize(g, entry)
			counts[i] = n
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	best := 0
	for _, n := range counts {
		best = max(best, n)
	}
	return best, nil
}

// Part1 counts tiles energized by a beam entering the top-left tile heading right
func Part1(input string) (int, error) {
	g, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Energize(g, grid.Move{Pos: grid.Point{X: 0, Y: 0}, Heading: grid.Right})
}

// Part2 finds the entry along the border that energizes the most tiles
func Part2(ctx context.Context, input string) (int, error) {
	g, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return MaxEnergized(ctx, g)
}
