package puzzles

import (
	"context"

	"github.com/SzymonKubica/advent-of-code/puzzles/beam"
	"github.com/SzymonKubica/advent-of-code/puzzles/crucible"
	"github.com/SzymonKubica/advent-of-code/puzzles/garden"
	"github.com/SzymonKubica/advent-of-code/puzzles/guard"
	"github.com/SzymonKubica/advent-of-code/puzzles/pulse"
	"github.com/SzymonKubica/advent-of-code/puzzles/tilt"
	"github.com/SzymonKubica/advent-of-code/puzzles/trail"
)

// plain adapts a part that needs neither context nor params
func plain(f func(string) (int, error)) Part {
	return func(_ context.Context, input string, _ Params) (int, error) {
		return f(input)
	}
}

// concurrent adapts a part that fans out and honours ctx
func concurrent(f func(context.Context, string) (int, error)) Part {
	return func(ctx context.Context, input string, _ Params) (int, error) {
		return f(ctx, input)
	}
}

// withInt adapts a part taking one non-negative integer parameter
func withInt(key string, f func(string, int) (int, error)) Part {
	return func(_ context.Context, input string, params Params) (int, error) {
		n, err := params.NonNegative(key)
		if err != nil {
			return 0, err
		}
		return f(input, n)
	}
}

// Builtin returns a registry holding every puzzle family
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range builtin() {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

func builtin() []*Puzzle {
	return []*Puzzle{
		{
			Name:     "tilt",
			Title:    "Parabolic Reflector Dish",
			Year:     2023,
			Day:      14,
			Defaults: Params{"cycles": tilt.DefaultCycles},
			Parts: []Part{
				plain(tilt.Part1),
				withInt("cycles", tilt.Part2),
			},
		},
		{
			Name:  "beam",
			Title: "The Floor Will Be Lava",
			Year:  2023,
			Day:   16,
			Parts: []Part{
				plain(beam.Part1),
				concurrent(beam.Part2),
			},
		},
		{
			Name:  "crucible",
			Title: "Clumsy Crucible",
			Year:  2023,
			Day:   17,
			Parts: []Part{
				plain(crucible.Part1),
				plain(crucible.Part2),
			},
		},
		{
			Name:  "pulse",
			Title: "Pulse Propagation",
			Year:  2023,
			Day:   20,
			Defaults: Params{
				"presses":    pulse.DefaultPresses,
				"target":     pulse.DefaultTarget,
				"max_pulses": pulse.DefaultMaxPulses,
			},
			Parts: []Part{
				pulsePart1,
				pulsePart2,
			},
		},
		{
			Name:     "garden",
			Title:    "Step Counter",
			Year:     2023,
			Day:      21,
			Defaults: Params{"steps": garden.DefaultSteps},
			Parts: []Part{
				withInt("steps", garden.Part1),
				withInt("steps", garden.Part2),
			},
		},
		{
			Name:  "guard",
			Title: "Guard Gallivant",
			Year:  2024,
			Day:   6,
			Parts: []Part{
				plain(guard.Part1),
				concurrent(guard.Part2),
			},
		},
		{
			Name:  "trail",
			Title: "Hoof It",
			Year:  2024,
			Day:   10,
			Parts: []Part{
				plain(trail.Part1),
				plain(trail.Part2),
			},
		},
	}
}

func pulsePart1(_ context.Context, input string, params Params) (int, error) {
	presses, err := params.NonNegative("presses")
	if err != nil {
		return 0, err
	}
	limit, err := params.NonNegative("max_pulses")
	if err != nil {
		return 0, err
	}
	return pulse.Part1(input, presses, limit)
}

func pulsePart2(_ context.Context, input string, params Params) (int, error) {
	target, err := params.String("target")
	if err != nil {
		return 0, err
	}
	limit, err := params.NonNegative("max_pulses")
	if err != nil {
		return 0, err
	}
	return pulse.Part2(input, target, limit)
}
