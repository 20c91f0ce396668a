package chaos

import "github.com/matzehuels/galaxy/pkg/core/prng"

// SeedStride separates the keys of consecutive seeds.
const SeedStride = 7.634

// GenerateSeeds derives count seeds from base:
// seed[i] = prng.Rand(base + i*SeedStride).
//
// A count of zero or less yields an empty (non-nil) slice.
func GenerateSeeds(base float64, count int) []float64 {
	if count <= 0 {
		return []float64{}
	}
	seeds := make([]float64, count)
	for i := range seeds {
		seeds[i] = prng.Rand(base + float64(i)*SeedStride)
	}
	return seeds
}
