// Package chaos implements the chaos-game point generator behind galaxy.
//
// # Overview
//
// A run iterates a randomized dynamical system. Each step takes the running
// position, maps it through a pseudo-randomly derived affine transform,
// distorts it with the fixed variation functions and emits the result tagged
// with a derived color. The emitted position becomes the next step's input, so
// the output is a Markov chain over positions.
//
// The pieces, leaves first:
//
//   - [GenerateSeeds]: the per-run seed sequence derived from a base seed
//   - [NewCoefficients] and [Derive]: a 3×4 affine map and an RGB color keyed by a seed
//   - [Var1], [Var2], [Var3]: the nonlinear variations
//   - [Iterator]: the loop, threading the running position through every step
//
// All randomness comes from [prng.Rand], a pure function of its key. Two runs
// with the same [Config] and start position produce bit-identical output.
//
// # Modes
//
// The selector draw picks one of three seeds per iteration. How the variations
// are applied after that is controlled by [Mode]:
//
//   - [ModeLiteral]: var1, var2 and var3 are composed every iteration and the
//     recorded selector is always 3. This is the default.
//   - [ModeCorrected]: exactly one of identity, var1, var2 is picked by the
//     selector (0, 1, 2) and the selector itself is recorded. var3 is unreachable.
//   - [ModeOneBased]: the selector is shifted by one and picks var1, var2 or
//     var3; the shifted value is recorded.
//
// # Failure
//
// Failures are fatal to the run: an invalid [Config] is rejected by
// [NewIterator]; a selector beyond the seed sequence or a zero-length input to
// var3 stops the iterator and is reported with the iteration index (see
// [errors.IterationOf]). Points emitted before the failure stay valid.
//
// # Usage
//
//	it, err := chaos.NewIterator(chaos.Config{
//	    SeedCount:  3,
//	    BaseSeed:   0.5,
//	    PointCount: 100000,
//	    RsqAddVar3: 0.1,
//	}, vec.Zero)
//	if err != nil {
//	    return err
//	}
//	err = it.Run(ctx, chaos.SinkFunc(func(p chaos.Point) error {
//	    cloud.Add(p)
//	    return nil
//	}))
package chaos
