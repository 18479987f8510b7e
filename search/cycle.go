package search

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes a serialized configuration for cycle detection
func Fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Cycle describes a periodic process: the configuration seen at step
// Start+Period equals the one seen at Start
type Cycle struct {
	Start  int `json:"start"`
	Period int `json:"period"`
}

// Equivalent maps a target step to the earliest step with the same
// configuration. Steps before Start map to themselves.
func (c Cycle) Equivalent(target int) int {
	if target < c.Start || c.Period <= 0 {
		return target
	}
	return c.Start + (target-c.Start)%c.Period
}

// Detector remembers the first step each configuration fingerprint was seen
type Detector struct {
	seen map[uint64]int
}

// NewDetector creates an empty detector
func NewDetector() *Detector {
	return &Detector{seen: make(map[uint64]int)}
}

// Observe records the fingerprint of the configuration after step. It
// reports the cycle when the fingerprint was already seen.
func (d *Detector) Observe(step int, fingerprint uint64) (Cycle, bool) {
	if first, ok := d.seen[fingerprint]; ok {
		return Cycle{Start: first, Period: step - first}, true
	}
	d.seen[fingerprint] = step
	return Cycle{}, false
}

// Simulate advances initial by target macro-steps. step must return a new
// value and leave its argument untouched, since earlier configurations are
// kept to answer the target once a cycle is found. The returned cycle is
// nil when target was reached without a repeat.
func Simulate[T any](initial T, step func(T) T, fingerprint func(T) uint64, target int) (T, *Cycle) {
	det := NewDetector()
	history := []T{initial}
	det.Observe(0, fingerprint(initial))

	cur := initial
	for i := 1; i <= target; i++ {
		cur = step(cur)
		if c, ok := det.Observe(i, fingerprint(cur)); ok {
			return history[c.Equivalent(target)], &c
		}
		history = append(history, cur)
	}
	return cur, nil
}
