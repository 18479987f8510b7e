package pulse

import (
	"fmt"

	"github.com/SzymonKubica/advent-of-code/search"
)

const (
	DefaultPresses = 1000
	DefaultTarget  = "rx"

	// DefaultMaxPulses bounds a single press
	DefaultMaxPulses = 1 << 20

	// PressLimit bounds the search for the first low pulse to a target
	PressLimit = 1 << 22
)

// PressMany presses the button n times and returns the pulse totals. Once
// the network returns to a state seen after an earlier press, the rest is
// computed from the per-cycle totals.
func (n *Network) PressMany(presses, maxPulses int) (Counts, error) {
	det := search.NewDetector()
	det.Observe(0, search.Fingerprint(n.State()))
	prefix := []Counts{{}}

	for i := 1; i <= presses; i++ {
		c, err := n.Press(maxPulses, nil)
		if err != nil {
			return Counts{}, fmt.Errorf("press %d: %w", i, err)
		}
		prefix = append(prefix, prefix[i-1].Add(c))

		cycle, ok := det.Observe(i, search.Fingerprint(n.State()))
		if !ok {
			continue
		}
		s, period := cycle.Start, cycle.Period
		full := (presses - s) / period
		rest := (presses - s) % period
		perCycle := prefix[s+period].Sub(prefix[s])
		tail := prefix[s+rest].Sub(prefix[s])
		return prefix[s].Add(perCycle.Scale(full)).Add(tail), nil
	}
	return prefix[presses], nil
}

// reachable reports whether a pulse from the broadcaster can ever arrive
// at target
func (n *Network) reachable(target int) bool {
	next := func(id int) []int { return n.modules[id].Outputs }
	return search.Reach(next, n.button).Contains(target)
}

// FirstHighs presses until every input of the conjunction feeder has sent
// it a high pulse and returns the first press on which each did, keyed by
// input name
func (n *Network) FirstHighs(feeder, maxPulses int) (map[string]int, error) {
	inputs := n.modules[feeder].Inputs
	first := make(map[int]int, len(inputs))
	press := 0
	observe := func(p Pulse) {
		if p.To != feeder || !p.High {
			return
		}
		if _, ok := first[p.From]; !ok {
			first[p.From] = press
		}
	}

	for len(first) < len(inputs) {
		press++
		if press > PressLimit {
			return nil, fmt.Errorf("waiting on %q inputs: %w", n.modules[feeder].Name, ErrPressesExhaust)
		}
		if _, err := n.Press(maxPulses, observe); err != nil {
			return nil, fmt.Errorf("press %d: %w", press, err)
		}
	}

	out := make(map[string]int, len(first))
	for id, p := range first {
		out[n.modules[id].Name] = p
	}
	return out, nil
}

// PressesUntilLow presses until target receives a low pulse. When the only
// feeder of target is a conjunction, each of its inputs is assumed to fire
// high periodically from its first high, and the answer is the least common
// multiple of those first presses. Otherwise the network is pressed until
// it happens.
func (n *Network) PressesUntilLow(target string, maxPulses int) (int, error) {
	id, ok := n.index[target]
	if !ok || !n.reachable(id) {
		return 0, fmt.Errorf("target %q: %w", target, ErrNoTarget)
	}

	feeders := n.modules[id].Inputs
	if len(feeders) == 1 && n.modules[feeders[0]].Kind == Conjunction {
		firsts, err := n.FirstHighs(feeders[0], maxPulses)
		if err != nil {
			return 0, err
		}
		answer := 1
		for _, p := range firsts {
			answer = lcm(answer, p)
		}
		return answer, nil
	}

	hit := false
	observe := func(p Pulse) {
		if p.To == id && !p.High {
			hit = true
		}
	}
	for press := 1; press <= PressLimit; press++ {
		if _, err := n.Press(maxPulses, observe); err != nil {
			return 0, fmt.Errorf("press %d: %w", press, err)
		}
		if hit {
			return press, nil
		}
	}
	return 0, fmt.Errorf("target %q: %w", target, ErrPressesExhaust)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// Part1 multiplies the low and high pulse totals after the given presses
func Part1(input string, presses, maxPulses int) (int, error) {
	n, err := Parse(input)
	if err != nil {
		return 0, err
	}
	c, err := n.PressMany(presses, maxPulses)
	if err != nil {
		return 0, err
	}
	return c.Product(), nil
}

// Part2 counts the presses before target first receives a low pulse
func Part2(input, target string, maxPulses int) (int, error) {
	n, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return n.PressesUntilLow(target, maxPulses)
}
