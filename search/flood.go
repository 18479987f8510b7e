package search

// Unlimited disables the depth bound of a Flood
const Unlimited = -1

// Flood is the unweighted reachability engine. Next returns the successors
// of a state; it must be total over every state it is handed.
type Flood[S comparable] struct {
	Next func(S) []S

	// MaxDepth stops expansion of states at this distance from a start.
	// Unlimited (or any negative value) explores the whole reachable space.
	MaxDepth int

	// OnFinalize, when set, observes every state as it is finalized
	OnFinalize func(state S, depth int)
}

// Visited is the finalized-state set produced by a flood
type Visited[S comparable] struct {
	depth map[S]int
	order []S
}

// Len returns the number of finalized states
func (v *Visited[S]) Len() int {
	return len(v.order)
}

// Contains reports whether s was finalized
func (v *Visited[S]) Contains(s S) bool {
	_, ok := v.depth[s]
	return ok
}

// Depth returns the BFS distance at which s was finalized
func (v *Visited[S]) Depth(s S) (int, bool) {
	d, ok := v.depth[s]
	return d, ok
}

// States returns the finalized states in finalization order
func (v *Visited[S]) States() []S {
	return append([]S(nil), v.order...)
}

// Distinct projects every finalized state through key and returns the
// number of different keys, e.g. positions with the heading projected out
func Distinct[S, K comparable](v *Visited[S], key func(S) K) int {
	seen := make(map[K]struct{}, len(v.order))
	for _, s := range v.order {
		seen[key(s)] = struct{}{}
	}
	return len(seen)
}

// Run floods from the start states. Duplicate starts are finalized once.
func (f Flood[S]) Run(starts ...S) *Visited[S] {
	v := &Visited[S]{depth: make(map[S]int)}

	type entry struct {
		state S
		depth int
	}
	queue := make([]entry, 0, len(starts))

	finalize := func(s S, d int) bool {
		if _, seen := v.depth[s]; seen {
			return false
		}
		v.depth[s] = d
		v.order = append(v.order, s)
		if f.OnFinalize != nil {
			f.OnFinalize(s, d)
		}
		return true
	}

	for _, s := range starts {
		if finalize(s, 0) {
			queue = append(queue, entry{state: s})
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if f.MaxDepth >= 0 && cur.depth >= f.MaxDepth {
			continue
		}
		for _, next := range f.Next(cur.state) {
			if finalize(next, cur.depth+1) {
				queue = append(queue, entry{state: next, depth: cur.depth + 1})
			}
		}
	}

	return v
}

// Reach floods the whole state space reachable from starts
func Reach[S comparable](next func(S) []S, starts ...S) *Visited[S] {
	return Flood[S]{Next: next, MaxDepth: Unlimited}.Run(starts...)
}

// ReachWithin floods at most steps transitions away from starts
func ReachWithin[S comparable](steps int, next func(S) []S, starts ...S) *Visited[S] {
	if steps < 0 {
		steps = 0
	}
	return Flood[S]{Next: next, MaxDepth: steps}.Run(starts...)
}
