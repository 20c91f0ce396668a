// Package prng provides the deterministic, seed-keyed pseudo-random primitive
// that drives galaxy generation.
//
// # Overview
//
// Generation never draws from a stateful stream. Every random value is a pure
// function of a single float64 key, so the same key always produces the same
// value on every platform:
//
//	v := prng.Rand(3.25)       // always the same value in [0, 1)
//	w := prng.Fit01(v, -1, 1)  // linear remap into [-1, 1)
//
// # Algorithm
//
// [Rand] canonicalizes negative zero, takes the IEEE-754 bit pattern of the key
// and runs it through the 64-bit murmur3 finalizer (fmix64). The top 53 bits of
// the mixed word are scaled by 2^-53, which yields every representable multiple
// of 2^-53 in [0, 1) and never 1.
//
// The finalizer maps zero to zero, so Rand(0) == 0. Nearby keys (for example
// 1.0 and 1.0000001) still produce unrelated outputs because every input bit
// avalanches into every output bit.
package prng
