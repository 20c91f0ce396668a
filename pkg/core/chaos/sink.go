package chaos

import "github.com/matzehuels/galaxy/pkg/core/vec"

// Point is one emitted sample. Index is the iteration that produced it.
type Point struct {
	Index    int
	Position vec.Vec3
	Color    vec.Vec3
	Selector int
}

// Sink receives points in iteration order. A non-nil error aborts the run.
type Sink interface {
	Emit(p Point) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(p Point) error

// Emit calls f(p).
func (f SinkFunc) Emit(p Point) error { return f(p) }
