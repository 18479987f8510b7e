package puzzles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_EveryPartDispatches(t *testing.T) {
	inputs := map[string]string{
		"tilt":     "O.#\n.O.\n#.O",
		"beam":     `.\.` + "\n...",
		"crucible": "11111\n11111\n11111\n11111\n11111",
		"pulse":    "broadcaster -> a\n%a -> b\n&b -> rx",
		"garden":   "...\n.S.\n...",
		"guard":    "...\n.^.\n...",
		"trail":    "0123\n1234\n8765\n9876",
	}

	r := Builtin()
	require.Len(t, r.List(), len(inputs))

	for _, p := range r.List() {
		input, ok := inputs[p.Name]
		require.True(t, ok, "no input for %s", p.Name)
		require.Equal(t, 2, p.PartCount())
		for part := 1; part <= p.PartCount(); part++ {
			_, err := p.Solve(context.Background(), part, input, nil)
			assert.NoError(t, err, "%s part %d", p.Name, part)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := Builtin()

	p, err := r.Lookup("crucible")
	require.NoError(t, err)
	assert.Equal(t, 17, p.Day)

	_, err = r.Lookup("nope")
	assert.True(t, errors.Is(err, ErrUnknownPuzzle))

	p, err = r.ByDay(2024, 10)
	require.NoError(t, err)
	assert.Equal(t, "trail", p.Name)

	_, err = r.ByDay(2019, 1)
	assert.True(t, errors.Is(err, ErrUnknownPuzzle))
}

func TestRegistry_ListOrder(t *testing.T) {
	var names []string
	for _, p := range Builtin().List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"tilt", "beam", "crucible", "pulse", "garden", "guard", "trail"}, names)
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Puzzle{Name: "x"}))
	assert.True(t, errors.Is(r.Register(&Puzzle{Name: "x"}), ErrDuplicate))
}

func TestPuzzle_Solve(t *testing.T) {
	r := Builtin()
	garden, err := r.Lookup("garden")
	require.NoError(t, err)

	tests := []struct {
		name    string
		part    int
		params  Params
		want    int
		wantErr error
	}{
		{name: "default steps", part: 1, want: 5},
		{name: "override from flag", part: 1, params: Params{"steps": "1"}, want: 4},
		{name: "override from json", part: 2, params: Params{"steps": float64(1)}, want: 5},
		{name: "negative", part: 1, params: Params{"steps": -2}, wantErr: ErrBadParam},
		{name: "not a number", part: 1, params: Params{"steps": "many"}, wantErr: ErrBadParam},
		{name: "part zero", part: 0, wantErr: ErrUnknownPart},
		{name: "part three", part: 3, wantErr: ErrUnknownPart},
	}

	input := "...\n.S.\n..."
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := garden.Solve(context.Background(), tt.part, input, tt.params)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams([]string{"steps=6", " target = rx "})
	require.NoError(t, err)
	assert.Equal(t, Params{"steps": "6", "target": "rx"}, p)

	n, err := p.Int("steps")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = ParseParams([]string{"steps"})
	assert.True(t, errors.Is(err, ErrBadParam))

	_, err = ParseParams([]string{"=3"})
	assert.True(t, errors.Is(err, ErrBadParam))
}

func TestParams_Accessors(t *testing.T) {
	p := Params{"n": 3, "s": "rx", "empty": ""}

	_, err := p.Int("missing")
	assert.True(t, errors.Is(err, ErrBadParam))

	s, err := p.String("s")
	require.NoError(t, err)
	assert.Equal(t, "rx", s)

	_, err = p.String("empty")
	assert.True(t, errors.Is(err, ErrBadParam))
}

func TestParams_WithAndKey(t *testing.T) {
	defaults := Params{"a": 1, "b": 2}
	got := Params{"b": "3"}.With(defaults)

	assert.Equal(t, Params{"a": 1, "b": "3"}, got)
	assert.Equal(t, Params{"a": 1, "b": 2}, defaults)
	assert.Equal(t, "a=1,b=3", got.Key())
	assert.Equal(t, "", Params(nil).Key())
}
