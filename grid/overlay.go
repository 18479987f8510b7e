package grid

// Overlay is a mutable layer with the same shape as a Grid. It holds
// per-run marks (energized cells, rolling rocks) without touching the
// grid's cells.
type Overlay[T any] struct {
	values []T
	width  int
	height int
}

// NewOverlay creates a zero-valued overlay of the given dimensions
func NewOverlay[T any](width, height int) *Overlay[T] {
	return &Overlay[T]{
		values: make([]T, width*height),
		width:  width,
		height: height,
	}
}

// OverlayFor creates a zero-valued overlay shaped like g
func OverlayFor[T, C any](g *Grid[C]) *Overlay[T] {
	return NewOverlay[T](g.Width(), g.Height())
}

// Width returns the number of columns
func (o *Overlay[T]) Width() int {
	return o.width
}

// Height returns the number of rows
func (o *Overlay[T]) Height() int {
	return o.height
}

// InBounds reports whether p lies inside the overlay
func (o *Overlay[T]) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < o.width && p.Y < o.height
}

// Get returns the value at p, or false when p is outside the overlay
func (o *Overlay[T]) Get(p Point) (T, bool) {
	if !o.InBounds(p) {
		var zero T
		return zero, false
	}
	return o.values[p.Y*o.width+p.X], true
}

// Set stores v at p. Out-of-bounds writes are ignored and reported as false.
func (o *Overlay[T]) Set(p Point, v T) bool {
	if !o.InBounds(p) {
		return false
	}
	o.values[p.Y*o.width+p.X] = v
	return true
}

// Count returns the number of values matching pred
func (o *Overlay[T]) Count(pred func(T) bool) int {
	count := 0
	for _, v := range o.values {
		if pred(v) {
			count++
		}
	}
	return count
}

// Clone returns an independent copy of the overlay
func (o *Overlay[T]) Clone() *Overlay[T] {
	return &Overlay[T]{
		values: append([]T(nil), o.values...),
		width:  o.width,
		height: o.height,
	}
}

// Values exposes the row-major backing slice. Callers must not resize it.
func (o *Overlay[T]) Values() []T {
	return o.values
}
