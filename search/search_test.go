package search

import (
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plot bool

var plots = grid.Legend[plot]{'.': true, '#': false}

func spread(g *grid.Grid[plot]) func(grid.Point) []grid.Point {
	return func(p grid.Point) []grid.Point {
		var out []grid.Point
		for _, q := range g.Adjacent(p) {
			if g.At(q) {
				out = append(out, q)
			}
		}
		return out
	}
}

func TestReachWithin_CenterOfOpenGrid(t *testing.T) {
	g, err := grid.Parse("...\n...\n...", plots)
	require.NoError(t, err)
	center := grid.Point{X: 1, Y: 1}

	zero := ReachWithin(0, spread(g), center)
	assert.Equal(t, 1, zero.Len())
	assert.True(t, zero.Contains(center))

	one := ReachWithin(1, spread(g), center)
	assert.Equal(t, 5, one.Len(), "start plus its four neighbors")
	for _, p := range g.Adjacent(center) {
		d, ok := one.Depth(p)
		assert.True(t, ok)
		assert.Equal(t, 1, d)
	}

	all := Reach(spread(g), center)
	assert.Equal(t, 9, all.Len())
	d, _ := all.Depth(grid.Point{X: 0, Y: 0})
	assert.Equal(t, 2, d)
}

func TestFlood_FinalizesEachStateOnce(t *testing.T) {
	g, err := grid.Parse("....\n.##.\n....", plots)
	require.NoError(t, err)

	finalized := map[grid.Point]int{}
	var order []grid.Point
	f := Flood[grid.Point]{
		Next:     spread(g),
		MaxDepth: Unlimited,
		OnFinalize: func(p grid.Point, depth int) {
			finalized[p]++
			order = append(order, p)
		},
	}
	v := f.Run(grid.Point{X: 0, Y: 0}, grid.Point{X: 0, Y: 0})

	assert.Equal(t, 10, v.Len())
	assert.Equal(t, order, v.States())
	prevDepth := 0
	for _, p := range order {
		assert.Equal(t, 1, finalized[p], "state %v finalized more than once", p)
		d, _ := v.Depth(p)
		assert.GreaterOrEqual(t, d, prevDepth, "depth never decreases in FIFO order")
		prevDepth = d
	}
}

func TestReach_CyclicTransitionTerminates(t *testing.T) {
	// Every state points back to the start; dedup must stop the loop.
	next := func(s int) []int { return []int{(s + 1) % 5} }
	v := Reach(next, 0)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, 5, Distinct(v, func(s int) int { return s }))
	assert.Equal(t, 1, Distinct(v, func(int) bool { return true }))
}

func TestDijkstra_UniformGrid(t *testing.T) {
	g, err := grid.Parse("111\n111\n111", grid.Digits())
	require.NoError(t, err)

	goal := grid.Point{X: 2, Y: 2}
	d := Dijkstra[Crucible]{
		Next:    HeatWalk(g, Unconstrained, func(c int) int { return c }),
		Goal:    ArriveAt(goal, Unconstrained),
		Compare: CompareCrucible,
	}
	path, err := d.Run(
		Crucible{Heading: grid.Right},
		Crucible{Heading: grid.Down},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, path.Cost)
	assert.Equal(t, goal, path.Goal.Pos)
	assert.Len(t, path.States, 5)
}

func TestDijkstra_Deterministic(t *testing.T) {
	g, err := grid.Parse("2413\n3215\n3255\n3446", grid.Digits())
	require.NoError(t, err)

	run := func() *Path[Crucible] {
		limits := RunLimits{Min: 0, Max: 3}
		path, err := Dijkstra[Crucible]{
			Next:    HeatWalk(g, limits, func(c int) int { return c }),
			Goal:    ArriveAt(grid.Point{X: 3, Y: 3}, limits),
			Compare: CompareCrucible,
		}.Run(Crucible{Heading: grid.Right}, Crucible{Heading: grid.Down})
		require.NoError(t, err)
		return path
	}

	first := run()
	for i := 0; i < 5; i++ {
		again := run()
		assert.Equal(t, first.Cost, again.Cost)
		assert.Equal(t, first.States, again.States)
	}
}

func TestDijkstra_NoStart(t *testing.T) {
	_, err := Dijkstra[int]{
		Next: func(int) []Edge[int] { return nil },
		Goal: func(int) bool { return true },
	}.Run()
	assert.True(t, errors.Is(err, ErrNoStart))
}

func TestDijkstra_GoalUnreachable(t *testing.T) {
	g, err := grid.Parse("1111\n1111\n1111\n1111", grid.Digits())
	require.NoError(t, err)

	// Four straight steps are needed before any turn, but the grid is only
	// three steps wide.
	limits := RunLimits{Min: 4, Max: 10}
	_, err = Dijkstra[Crucible]{
		Next: HeatWalk(g, limits, func(c int) int { return c }),
		Goal: ArriveAt(grid.Point{X: 3, Y: 3}, limits),
	}.Run(Crucible{Heading: grid.Right}, Crucible{Heading: grid.Down})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGoalUnreachable))
	var cerr *ConfigError
	assert.True(t, errors.As(err, &cerr))
}

// exhaustive finds the cheapest legal walk by label-correcting DFS over
// every walk, without a priority queue
func exhaustive(g *grid.Grid[int], limits RunLimits, goal grid.Point, starts []Crucible) int {
	next := HeatWalk(g, limits, func(c int) int { return c })
	arrive := ArriveAt(goal, limits)
	bestAt := map[Crucible]int{}
	best := math.MaxInt

	var walk func(s Crucible, cost int)
	walk = func(s Crucible, cost int) {
		if known, ok := bestAt[s]; ok && cost >= known {
			return
		}
		bestAt[s] = cost
		if arrive(s) && cost < best {
			best = cost
		}
		for _, e := range next(s) {
			walk(e.To, cost+e.Cost)
		}
	}
	for _, s := range starts {
		walk(s, 0)
	}
	return best
}

func randomGrid(rng *rand.Rand, w, h int) *grid.Grid[int] {
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			rows[y][x] = 1 + rng.Intn(9)
		}
	}
	g, _ := grid.New(rows)
	return g
}

func TestDijkstra_MatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	limitSets := []RunLimits{Unconstrained, {Min: 0, Max: 1}, {Min: 0, Max: 3}, {Min: 1, Max: 2}, {Min: 2, Max: 3}}
	starts := []Crucible{{Heading: grid.Right}, {Heading: grid.Down}}

	for trial := 0; trial < 40; trial++ {
		g := randomGrid(rng, 4, 4)
		goal := grid.Point{X: 3, Y: 3}
		for _, limits := range limitSets {
			want := exhaustive(g, limits, goal, starts)
			path, err := Dijkstra[Crucible]{
				Next:    HeatWalk(g, limits, func(c int) int { return c }),
				Goal:    ArriveAt(goal, limits),
				Compare: CompareCrucible,
			}.Run(starts...)

			if want == math.MaxInt {
				assert.True(t, errors.Is(err, ErrGoalUnreachable))
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, want, path.Cost, "trial %d limits %+v", trial, limits)
		}
	}
}

func TestDijkstra_PathRespectsRunLimits(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, limits := range []RunLimits{{Min: 0, Max: 3}, {Min: 2, Max: 4}} {
		g := randomGrid(rng, 7, 6)
		goal := grid.Point{X: 6, Y: 5}
		path, err := Dijkstra[Crucible]{
			Next:    HeatWalk(g, limits, func(c int) int { return c }),
			Goal:    ArriveAt(goal, limits),
			Compare: CompareCrucible,
		}.Run(Crucible{Heading: grid.Right}, Crucible{Heading: grid.Down})
		require.NoError(t, err)

		cost := 0
		for i := 1; i < len(path.States); i++ {
			prev, cur := path.States[i-1], path.States[i]
			assert.Equal(t, 1, prev.Pos.Manhattan(cur.Pos))
			assert.LessOrEqual(t, cur.Run, limits.Max)
			if cur.Heading != prev.Heading {
				assert.GreaterOrEqual(t, prev.Run, limits.Min, "turned too early at %v", cur.Pos)
				assert.NotEqual(t, prev.Heading.Reverse(), cur.Heading)
				assert.Equal(t, 1, cur.Run)
			} else {
				assert.Equal(t, prev.Run+1, cur.Run)
			}
			cost += g.At(cur.Pos)
		}
		assert.Equal(t, path.Cost, cost)
		assert.GreaterOrEqual(t, path.Goal.Run, limits.Min)
	}
}

func TestCheckGrid(t *testing.T) {
	start := []grid.Point{{X: 0, Y: 0}}

	assert.NoError(t, CheckGrid(3, 3, start, grid.Point{X: 2, Y: 2}))
	assert.True(t, errors.Is(CheckGrid(0, 0, start), ErrEmptyGrid))
	assert.True(t, errors.Is(CheckGrid(3, 3, nil), ErrNoStart))
	assert.True(t, errors.Is(CheckGrid(3, 3, []grid.Point{{X: 3, Y: 0}}), ErrStartOutOfBounds))

	err := CheckGrid(3, 3, start, grid.Point{X: -1, Y: 1})
	assert.True(t, errors.Is(err, ErrGoalOutOfBounds))
	assert.Contains(t, err.Error(), "(-1,1)")
}

func encode(n int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	return Fingerprint(b[:])
}

// periodic walks 0,1,..,6 and then loops 6,7,8,9,10,6,...
func periodic(s int) int {
	if s < 10 {
		return s + 1
	}
	return 6
}

func TestSimulate_MatchesDirectSimulation(t *testing.T) {
	direct := func(target int) int {
		s := 0
		for i := 0; i < target; i++ {
			s = periodic(s)
		}
		return s
	}

	for _, target := range []int{0, 3, 6, 10, 11, 12, 57, 1000, 123457} {
		got, c := Simulate(0, periodic, encode, target)
		assert.Equal(t, direct(target), got, "target %d", target)
		if c != nil {
			assert.Equal(t, 6, c.Start)
			assert.Equal(t, 5, c.Period)
			assert.Equal(t, direct(c.Start+(target-c.Start)%c.Period), got)
		}
	}
}

func TestCycle_Equivalent(t *testing.T) {
	c := Cycle{Start: 3, Period: 4}
	assert.Equal(t, 2, c.Equivalent(2))
	assert.Equal(t, 3, c.Equivalent(3))
	assert.Equal(t, 6, c.Equivalent(6))
	assert.Equal(t, 3, c.Equivalent(7))
	assert.Equal(t, 5, c.Equivalent(1000000001))
}

func TestDetector(t *testing.T) {
	d := NewDetector()
	_, found := d.Observe(0, 11)
	assert.False(t, found)
	_, found = d.Observe(1, 12)
	assert.False(t, found)
	c, found := d.Observe(2, 11)
	assert.True(t, found)
	assert.Equal(t, Cycle{Start: 0, Period: 2}, c)
}
