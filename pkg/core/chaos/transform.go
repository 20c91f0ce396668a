package chaos

import (
	"github.com/matzehuels/galaxy/pkg/core/prng"
	"github.com/matzehuels/galaxy/pkg/core/vec"
)

// Key offsets for coefficient draws.
const (
	affineStride = 13.25
	colorStride  = 4.35
)

// Coefficients is the per-step transform derived from a seed: a row-major 3×4
// affine map with entries in [-1, 1) and an RGB color with channels in [0, 1).
type Coefficients struct {
	Affine [3][4]float64
	Color  vec.Vec3
}

// NewCoefficients derives the 15 coefficients for seed.
//
// Affine entry k (row-major, k in 0..11) is prng.Rand(k*13.25+seed) remapped to
// [-1, 1). Color channel c is prng.Rand(c*4.35+seed), used as is: no gamma or
// tone mapping is applied.
func NewCoefficients(seed float64) Coefficients {
	var c Coefficients
	for k := 0; k < 12; k++ {
		c.Affine[k/4][k%4] = prng.Fit01(prng.Rand(float64(k)*affineStride+seed), -1, 1)
	}
	var col [3]float64
	for ch := range col {
		col[ch] = prng.Rand(float64(ch)*colorStride + seed)
	}
	c.Color = vec.FromArray(col)
	return c
}

// Apply maps p through the affine transform.
func (c Coefficients) Apply(p vec.Vec3) vec.Vec3 {
	m := &c.Affine
	return vec.Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// Translation returns the constant column of the affine map.
func (c Coefficients) Translation() vec.Vec3 {
	return vec.New(c.Affine[0][3], c.Affine[1][3], c.Affine[2][3])
}

// Derive maps position through the transform keyed by seed and returns the new
// position with the color for this step. The result depends on seed alone for
// its randomness: equal (position, seed) pairs always give equal results.
func Derive(position vec.Vec3, seed float64) (vec.Vec3, vec.Vec3) {
	c := NewCoefficients(seed)
	return c.Apply(position), c.Color
}
