// Package pulse simulates a network of flip-flop and conjunction modules
// driven by a button wired to the broadcaster.
package pulse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SzymonKubica/advent-of-code/grid"
)

var (
	ErrBadLine        = errors.New("malformed module line")
	ErrDuplicate      = errors.New("module declared twice")
	ErrNoBroadcaster  = errors.New("no broadcaster module")
	ErrUnsettled      = errors.New("pulse propagation did not settle")
	ErrNoTarget       = errors.New("target never receives a pulse")
	ErrPressesExhaust = errors.New("press limit reached")
)

// Broadcaster is the name of the module the button is wired to
const Broadcaster = "broadcaster"

// Kind is the behaviour of a module
type Kind uint8

const (
	// Sink is an output named by some module but never declared
	Sink Kind = iota
	Relay
	FlipFlop
	Conjunction
)

func (k Kind) String() string {
	switch k {
	case Relay:
		return "broadcaster"
	case FlipFlop:
		return "flip-flop"
	case Conjunction:
		return "conjunction"
	}
	return "sink"
}

// Module is the static wiring of one node. Inputs and Outputs hold module
// indices into the network.
type Module struct {
	Name    string
	Kind    Kind
	Inputs  []int
	Outputs []int
}

// Pulse travels from one module to another
type Pulse struct {
	From int
	To   int
	High bool
}

// Network owns the wiring and the mutable module state. There is no shared
// state between networks; Clone gives an independent copy.
type Network struct {
	modules []Module
	index   map[string]int
	button  int

	on     []bool   // flip-flop state by module
	memory [][]bool // conjunction memory by module, one slot per input
	slot   []map[int]int
}

// Parse reads module declarations of the form "%a -> b, c"
func Parse(input string) (*Network, error) {
	n := &Network{index: make(map[string]int)}

	type decl struct {
		id      int
		outputs []string
	}
	var decls []decl

	for i, line := range grid.Lines(input) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lhs, rhs, ok := strings.Cut(line, "->")
		if !ok {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrBadLine)
		}
		lhs = strings.TrimSpace(lhs)

		kind := Relay
		name := lhs
		switch {
		case strings.HasPrefix(lhs, "%"):
			kind, name = FlipFlop, lhs[1:]
		case strings.HasPrefix(lhs, "&"):
			kind, name = Conjunction, lhs[1:]
		case lhs != Broadcaster:
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrBadLine)
		}
		if name == "" {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrBadLine)
		}
		if _, ok := n.index[name]; ok {
			return nil, fmt.Errorf("module %q: %w", name, ErrDuplicate)
		}

		id := n.intern(name)
		n.modules[id].Kind = kind

		var outputs []string
		for _, out := range strings.Split(rhs, ",") {
			out = strings.TrimSpace(out)
			if out == "" {
				return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrBadLine)
			}
			outputs = append(outputs, out)
		}
		decls = append(decls, decl{id: id, outputs: outputs})
	}

	for _, d := range decls {
		seen := make(map[int]bool, len(d.outputs))
		for _, out := range d.outputs {
			to := n.intern(out)
			if seen[to] {
				continue
			}
			seen[to] = true
			n.modules[d.id].Outputs = append(n.modules[d.id].Outputs, to)
			n.modules[to].Inputs = append(n.modules[to].Inputs, d.id)
		}
	}

	b, ok := n.index[Broadcaster]
	if !ok {
		return nil, ErrNoBroadcaster
	}
	n.button = b
	n.Reset()
	return n, nil
}

func (n *Network) intern(name string) int {
	if id, ok := n.index[name]; ok {
		return id
	}
	id := len(n.modules)
	n.modules = append(n.modules, Module{Name: name, Kind: Sink})
	n.index[name] = id
	return id
}

// Reset turns every flip-flop off and sets every conjunction memory to low
func (n *Network) Reset() {
	n.on = make([]bool, len(n.modules))
	n.memory = make([][]bool, len(n.modules))
	n.slot = make([]map[int]int, len(n.modules))
	for id, m := range n.modules {
		if m.Kind != Conjunction {
			continue
		}
		n.memory[id] = make([]bool, len(m.Inputs))
		n.slot[id] = make(map[int]int, len(m.Inputs))
		for i, in := range m.Inputs {
			n.slot[id][in] = i
		}
	}
}

// Clone returns a copy with its own state
func (n *Network) Clone() *Network {
	c := &Network{
		modules: n.modules,
		index:   n.index,
		button:  n.button,
		slot:    n.slot,
		on:      append([]bool(nil), n.on...),
		memory:  make([][]bool, len(n.memory)),
	}
	for i, m := range n.memory {
		if m != nil {
			c.memory[i] = append([]bool(nil), m...)
		}
	}
	return c
}

// Lookup returns the module index for name
func (n *Network) Lookup(name string) (int, bool) {
	id, ok := n.index[name]
	return id, ok
}

// Module returns the wiring of module id
func (n *Network) Module(id int) Module {
	return n.modules[id]
}

// Len returns the number of modules, sinks included
func (n *Network) Len() int {
	return len(n.modules)
}

// State serializes flip-flop and conjunction memory for fingerprinting
func (n *Network) State() []byte {
	b := make([]byte, 0, len(n.on)*2)
	for id := range n.modules {
		if n.on[id] {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
		for _, high := range n.memory[id] {
			if high {
				b = append(b, 1)
			} else {
				b = append(b, 0)
			}
		}
	}
	return b
}

// receive applies p to its receiver and returns the pulses it emits
func (n *Network) receive(p Pulse, emit []Pulse) []Pulse {
	m := &n.modules[p.To]
	var high bool
	switch m.Kind {
	case Sink:
		return emit
	case Relay:
		high = p.High
	case FlipFlop:
		if p.High {
			return emit
		}
		n.on[p.To] = !n.on[p.To]
		high = n.on[p.To]
	case Conjunction:
		mem := n.memory[p.To]
		mem[n.slot[p.To][p.From]] = p.High
		high = false
		for _, v := range mem {
			if !v {
				high = true
				break
			}
		}
	}
	for _, out := range m.Outputs {
		emit = append(emit, Pulse{From: p.To, To: out, High: high})
	}
	return emit
}

// Counts tallies the pulses sent during one or more presses
type Counts struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Add returns c+o
func (c Counts) Add(o Counts) Counts {
	return Counts{Low: c.Low + o.Low, High: c.High + o.High}
}

// Sub returns c-o
func (c Counts) Sub(o Counts) Counts {
	return Counts{Low: c.Low - o.Low, High: c.High - o.High}
}

// Scale returns c*k
func (c Counts) Scale(k int) Counts {
	return Counts{Low: c.Low * k, High: c.High * k}
}

// Product is low times high
func (c Counts) Product() int {
	return c.Low * c.High
}

// Press sends one low pulse from the button to the broadcaster and
// processes pulses in the order they were sent until none are left.
// observe, when set, sees every pulse as it is delivered. A press that
// would deliver more than maxPulses pulses fails with ErrUnsettled; the
// network is left in its partially updated state. maxPulses <= 0 means no
// limit.
func (n *Network) Press(maxPulses int, observe func(Pulse)) (Counts, error) {
	var counts Counts
	queue := []Pulse{{From: -1, To: n.button}}
	for head := 0; head < len(queue); head++ {
		if maxPulses > 0 && head >= maxPulses {
			return counts, fmt.Errorf("after %d pulses: %w", head, ErrUnsettled)
		}
		p := queue[head]
		if p.High {
			counts.High++
		} else {
			counts.Low++
		}
		if observe != nil {
			observe(p)
		}
		queue = n.receive(p, queue)
	}
	return counts, nil
}
