package prng

import "math"

// murmur3 fmix64 multipliers.
const (
	mixC1 = 0xff51afd7ed558ccd
	mixC2 = 0xc4ceb9fe1a85ec53
)

// unit is 2^-53, the spacing of the values Rand can return.
const unit = 0x1p-53

// Rand maps key to a pseudo-random value in [0, 1).
// It is a pure function: equal keys give equal results.
func Rand(key float64) float64 {
	if key == 0 {
		key = 0 // fold -0 onto +0
	}
	return float64(Mix(math.Float64bits(key))>>11) * unit
}

// Mix is the murmur3 64-bit finalizer.
func Mix(k uint64) uint64 {
	k ^= k >> 33
	k *= mixC1
	k ^= k >> 33
	k *= mixC2
	k ^= k >> 33
	return k
}

// Fit01 linearly remaps x from [0, 1) to [lo, hi).
func Fit01(x, lo, hi float64) float64 {
	return x*(hi-lo) + lo
}
