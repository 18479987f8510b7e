package search

import "container/heap"

// Edge is a weighted transition to another state. Cost must be non-negative.
type Edge[S comparable] struct {
	To   S
	Cost int
}

// Dijkstra is the weighted shortest-path engine
type Dijkstra[S comparable] struct {
	Next func(S) []Edge[S]
	Goal func(S) bool

	// Compare orders states with equal cost (negative when a pops first).
	// When nil, or when it returns 0, insertion order decides.
	Compare func(a, b S) int
}

// Path is the outcome of a weighted search
type Path[S comparable] struct {
	Cost     int
	Goal     S
	States   []S // start to goal inclusive
	Expanded int // states finalized before the goal was popped
}

type item[S comparable] struct {
	state S
	cost  int
	seq   int
}

type frontier[S comparable] struct {
	items   []item[S]
	compare func(a, b S) int
}

func (f *frontier[S]) Len() int { return len(f.items) }

func (f *frontier[S]) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if f.compare != nil {
		if c := f.compare(a.state, b.state); c != 0 {
			return c < 0
		}
	}
	return a.seq < b.seq
}

func (f *frontier[S]) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier[S]) Push(x any) { f.items = append(f.items, x.(item[S])) }

func (f *frontier[S]) Pop() any {
	old := f.items
	n := len(old)
	it := old[n-1]
	f.items = old[:n-1]
	return it
}

// Run searches from the start states, each at cost zero. The first goal
// state popped is optimal because edge costs are non-negative.
func (d Dijkstra[S]) Run(starts ...S) (*Path[S], error) {
	if len(starts) == 0 {
		return nil, configError(ErrNoStart, nil)
	}

	best := make(map[S]int)
	parent := make(map[S]S)
	finalized := make(map[S]bool)
	pq := &frontier[S]{compare: d.Compare}
	seq := 0

	push := func(s S, cost int) {
		heap.Push(pq, item[S]{state: s, cost: cost, seq: seq})
		seq++
	}

	for _, s := range starts {
		if _, ok := best[s]; ok {
			continue
		}
		best[s] = 0
		push(s, 0)
	}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item[S])
		if finalized[cur.state] {
			continue
		}
		finalized[cur.state] = true

		if d.Goal(cur.state) {
			return &Path[S]{
				Cost:     cur.cost,
				Goal:     cur.state,
				States:   walkBack(parent, cur.state),
				Expanded: len(finalized),
			}, nil
		}

		for _, e := range d.Next(cur.state) {
			if finalized[e.To] {
				continue
			}
			cost := cur.cost + e.Cost
			if known, ok := best[e.To]; ok && cost >= known {
				continue
			}
			best[e.To] = cost
			parent[e.To] = cur.state
			push(e.To, cost)
		}
	}

	return nil, configError(ErrGoalUnreachable, nil)
}

func walkBack[S comparable](parent map[S]S, goal S) []S {
	path := []S{goal}
	cur := goal
	for {
		prev, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
