// Package pkg provides the core libraries for galaxy point-cloud generation.
//
// # Overview
//
// Galaxy plays the chaos game in three dimensions: every iteration derives a
// random affine map and color from a seeded generator, applies nonlinear
// variations and feeds the result back in. The trail of visited positions
// forms a galaxy-like point cloud. The pkg directory is organized into:
//
//  1. [core] - Domain logic (seeded generator, vector math, chaos iteration)
//  2. [cloud] - The in-memory point cloud and its statistics
//  3. [export] - JSON, PLY and CSV encoders
//  4. [pipeline] - Orchestration (generate → export) with caching
//  5. [cache], [store], [config] - Infrastructure shared by CLI and server
//
// # Architecture
//
// The typical data flow:
//
//	Options (flags, galaxy.toml, HTTP body)
//	         ↓
//	    [core/chaos] package (iterate, emit points)
//	         ↓
//	    [cloud] package (collect points, compute stats)
//	         ↓
//	    [export] package (encode)
//	         ↓
//	    JSON/PLY/CSV output
//
// # Quick Start
//
//	opts := pipeline.DefaultOptions()
//	opts.PointCount = 50000
//	opts.Formats = []string{"ply"}
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    // errors.IterationOf(err) reports where a run aborted
//	}
//	os.WriteFile("galaxy.ply", res.Artifacts["ply"], 0644)
//
// # Main Packages
//
// [core/prng] - Stateless integer hash turning a seed index into a uniform
// float and a variation selector.
//
// [core/vec] - Small value-type 3D vector.
//
// [core/chaos] - Seeds, affine transforms, variations and the iterator that
// drives a run and streams points to a sink.
//
// [cache] - Content-addressed caching of clouds and artifacts with null, file
// and Redis backends.
//
// [store] - Run records with memory, file and MongoDB backends.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                                      # All tests
//	GALAXY_TEST_REDIS_URL=redis://localhost:6379 go test ./pkg/cache
//	GALAXY_TEST_MONGO_URI=mongodb://localhost:27017 go test ./pkg/store
//
// [core]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/core
// [core/prng]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/core/prng
// [core/vec]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/core/vec
// [core/chaos]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/core/chaos
// [cloud]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/cloud
// [export]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/galaxy/pkg/observability
package pkg
