// Package trail scores hiking trails on a topographic map. A trail starts
// at height 0, ends at height 9 and climbs exactly one unit per step.
package trail

import (
	"fmt"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
)

const (
	Trailhead = 0
	Summit    = 9
)

// Map is a parsed topographic map
type Map struct {
	*grid.Grid[int]
}

// Parse reads a map of single-digit heights
func Parse(input string) (*Map, error) {
	g, err := grid.Parse(input, grid.Digits())
	if err != nil {
		return nil, err
	}
	return &Map{Grid: g}, nil
}

// Trailheads returns every height-0 position in row-major order
func (m *Map) Trailheads() []grid.Point {
	return m.Find(func(h int) bool { return h == Trailhead })
}

func (m *Map) uphill(p grid.Point) []grid.Point {
	h := m.At(p)
	var out []grid.Point
	for _, q := range m.Adjacent(p) {
		if m.At(q) == h+1 {
			out = append(out, q)
		}
	}
	return out
}

func (m *Map) check() ([]grid.Point, error) {
	heads := m.Trailheads()
	if err := search.CheckGrid(m.Width(), m.Height(), heads); err != nil {
		return nil, fmt.Errorf("topographic map: %w", err)
	}
	return heads, nil
}

// Score counts the summits reachable from head
func (m *Map) Score(head grid.Point) int {
	visited := search.Reach(m.uphill, head)
	score := 0
	for _, p := range visited.States() {
		if m.At(p) == Summit {
			score++
		}
	}
	return score
}

// Rating counts the distinct trails that start at head. The uphill graph is
// acyclic, so per-position path counts are memoized.
func (m *Map) Rating(head grid.Point) int {
	return m.rating(head, grid.OverlayFor[int](m.Grid))
}

// rating stores count+1 in memo so the zero value means unknown
func (m *Map) rating(p grid.Point, memo *grid.Overlay[int]) int {
	if v, _ := memo.Get(p); v > 0 {
		return v - 1
	}
	n := 0
	if m.At(p) == Summit {
		n = 1
	} else {
		for _, q := range m.uphill(p) {
			n += m.rating(q, memo)
		}
	}
	memo.Set(p, n+1)
	return n
}

// TotalScore sums Score over every trailhead
func (m *Map) TotalScore() (int, error) {
	heads, err := m.check()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, h := range heads {
		total += m.Score(h)
	}
	return total, nil
}

// TotalRating sums Rating over every trailhead with one shared memo
func (m *Map) TotalRating() (int, error) {
	heads, err := m.check()
	if err != nil {
		return 0, err
	}
	memo := grid.OverlayFor[int](m.Grid)
	total := 0
	for _, h := range heads {
		total += m.rating(h, memo)
	}
	return total, nil
}

// Part1 sums trailhead scores
func Part1(input string) (int, error) {
	m, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return m.TotalScore()
}

// Part2 sums trailhead ratings
func Part2(input string) (int, error) {
	m, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return m.TotalRating()
}
