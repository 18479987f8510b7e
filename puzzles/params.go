package puzzles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Params are named puzzle parameters. Values may be strings from the
// command line or decoded JSON, and are converted on access.
type Params map[string]any

// ParseParams reads "key=value" pairs
func ParseParams(pairs []string) (Params, error) {
	p := make(Params, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrBadParam, pair)
		}
		p[k] = strings.TrimSpace(v)
	}
	return p, nil
}

// With returns the defaults overridden by p. Neither map is modified.
func (p Params) With(defaults Params) Params {
	out := make(Params, len(defaults)+len(p))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int returns key as an int
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not set", ErrBadParam, key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadParam, key, err)
	}
	return n, nil
}

// NonNegative returns key as an int that must not be below zero
func (p Params) NonNegative(key string) (int, error) {
	n, err := p.Int(key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrBadParam, key, n)
	}
	return n, nil
}

// String returns key as a non-empty string
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is not set", ErrBadParam, key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrBadParam, key, err)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrBadParam, key)
	}
	return s, nil
}

// Key renders the params in a stable order, e.g. for cache keys
func (p Params) Key() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(cast.ToString(p[k]))
	}
	return sb.String()
}
