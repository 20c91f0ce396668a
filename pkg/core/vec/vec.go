// Package vec provides the three-component vector used for positions, colors
// and intermediate values during generation.
package vec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vec3 is a triple of float64 scalars. It carries no bounds; color channels
// stored in a Vec3 are not clamped.
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vec3{}

// New returns Vec3{x, y, z}.
func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns s * v.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Length2 returns the squared Euclidean length x² + y² + z².
func (v Vec3) Length2() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Length returns the Euclidean length.
func (v Vec3) Length() float64 { return math.Sqrt(v.Length2()) }

// Min returns the component-wise minimum.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Array returns the components as [x, y, z].
func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// FromArray is the inverse of [Vec3.Array].
func FromArray(a [3]float64) Vec3 { return Vec3{a[0], a[1], a[2]} }

// String formats v as "x,y,z", the same form [Parse] accepts.
func (v Vec3) String() string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Y, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Z, 'g', -1, 64)
}

// Parse reads a vector written as "x,y,z". Surrounding whitespace is ignored.
func Parse(s string) (Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vec3{}, fmt.Errorf("vector %q: want 3 comma-separated components, got %d", s, len(parts))
	}
	var out [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("vector %q: component %d: %w", s, i, err)
		}
		out[i] = f
	}
	return FromArray(out), nil
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
