package chaos

import (
	"fmt"
	"math"

	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// Variation names one of the fixed nonlinear remappings.
type Variation int

const (
	VariationIdentity Variation = iota
	Variation1
	Variation2
	Variation3
)

var variationNames = [...]string{"identity", "var1", "var2", "var3"}

func (v Variation) String() string {
	if v < VariationIdentity || v > Variation3 {
		return fmt.Sprintf("Variation(%d)", int(v))
	}
	return variationNames[v]
}

// Apply dispatches to the variation function. rsqAdd is only used by var3.
func (v Variation) Apply(p vec.Vec3, rsqAdd float64) (vec.Vec3, error) {
	switch v {
	case VariationIdentity:
		return p, nil
	case Variation1:
		return Var1(p), nil
	case Variation2:
		return Var2(p), nil
	case Variation3:
		return Var3(p, rsqAdd)
	default:
		return vec.Vec3{}, errs.New(errs.ErrCodeInternal, "unknown variation %d", int(v))
	}
}

// Var1 mixes x and y by the sine and cosine of the squared length:
//
//	x' = x sin r² + y cos r²
//	y' = x cos r² + y sin r²
//	z' = z
//
// It is not a rotation and does not preserve length.
func Var1(p vec.Vec3) vec.Vec3 {
	r2 := p.Length2()
	s, c := math.Sin(r2), math.Cos(r2)
	return vec.Vec3{
		X: p.X*s + p.Y*c,
		Y: p.X*c + p.Y*s,
		Z: p.Z,
	}
}

// Var2 is the antisymmetric counterpart of [Var1]:
//
//	x' = x sin r² + y cos r²
//	y' = y cos r² - x sin r²
//	z' = z
func Var2(p vec.Vec3) vec.Vec3 {
	r2 := p.Length2()
	s, c := math.Sin(r2), math.Cos(r2)
	return vec.Vec3{
		X: p.X*s + p.Y*c,
		Y: p.Y*c - p.X*s,
		Z: p.Z,
	}
}

// Var3 divides by the squared length and offsets by rsqAdd:
//
//	(x/r² + a, y/r² - a, z/r² + a)
//
// A zero-length input is rejected with NUMERIC_DEGENERACY instead of producing
// infinities.
func Var3(p vec.Vec3, rsqAdd float64) (vec.Vec3, error) {
	r2 := p.Length2()
	if r2 == 0 {
		return vec.Vec3{}, errs.New(errs.ErrCodeNumericDegeneracy, "var3: zero squared length input")
	}
	return vec.Vec3{
		X: p.X/r2 + rsqAdd,
		Y: p.Y/r2 - rsqAdd,
		Z: p.Z/r2 + rsqAdd,
	}, nil
}
