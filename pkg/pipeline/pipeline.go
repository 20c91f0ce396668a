// Package pipeline provides the generate → export pipeline shared by the CLI
// and the HTTP service.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: run the chaos game into a [cloud.Cloud]
//  2. Export: encode the cloud in each requested format (json, ply, csv)
//
// Generation is deterministic, so both stages are cached by a key derived
// from the options. A cache hit on the generate stage skips the iteration
// entirely; a hit on every artifact skips the export stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.PointCount = 50000
//	opts.Formats = []string{"ply"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ply := result.Artifacts["ply"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/galaxy/pkg/cache"
	"github.com/matzehuels/galaxy/pkg/cloud"
	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/export"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeedCount is the number of seeds drawn from the base seed.
	// Three covers every selector value, so no mode can index past the end.
	DefaultSeedCount = 3

	// DefaultPointCount is the number of points generated.
	DefaultPointCount = 10000

	// DefaultBaseSeed is the base seed.
	DefaultBaseSeed = 0.0

	// DefaultRsqAddVar3 is the var3 offset.
	DefaultRsqAddVar3 = 0.0

	// MaxPointCount bounds a single run.
	MaxPointCount = 10_000_000
)

// DefaultMode is the default variation mode.
const DefaultMode = string(chaos.DefaultMode)

// DefaultFormat is the export format used when none is requested.
const DefaultFormat = export.FormatJSON

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	SeedCount  int        `json:"seed_count"`
	BaseSeed   float64    `json:"base_seed"`
	PointCount int        `json:"point_count"`
	RsqAddVar3 float64    `json:"rsq_add_var3"`
	Mode       string     `json:"mode,omitempty"`
	Start      [3]float64 `json:"start"`
	Refresh    bool       `json:"refresh,omitempty"`

	// Export options
	Formats []string `json:"formats,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options populated with every default. Callers that
// decode partial input (JSON bodies, config files) start from these so that
// an explicit zero point count survives.
func DefaultOptions() Options {
	return Options{
		SeedCount:  DefaultSeedCount,
		BaseSeed:   DefaultBaseSeed,
		PointCount: DefaultPointCount,
		RsqAddVar3: DefaultRsqAddVar3,
		Mode:       DefaultMode,
		Formats:    []string{DefaultFormat},
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in the store.
	RunID string

	// Cloud is the generated point cloud.
	Cloud *cloud.Cloud

	// CloudHash is the content hash of the encoded cloud.
	CloudHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount   int           `json:"point_count"`
	Cloud        cloud.Stats   `json:"cloud"`
	GenerateTime time.Duration `json:"generate_time"`
	ExportTime   time.Duration `json:"export_time"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool `json:"generate_hit"` // cloud came from cache
	ExportHit   bool `json:"export_hit"`   // all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults sets default values for generation. Counts are left
// alone: zero points is a valid request and zero seeds is rejected.
func (o *Options) SetGenerateDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
}

// ValidateForGenerate validates and sets defaults for generation.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	if o.PointCount > MaxPointCount {
		return errs.New(errs.ErrCodeConfiguration, "point count %d exceeds limit %d", o.PointCount, MaxPointCount)
	}
	for i, c := range o.Start {
		if err := errs.ValidateFinite(fmt.Sprintf("start[%d]", i), c); err != nil {
			return err
		}
	}
	return o.ChaosConfig().Validate()
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return export.ValidateFormats(o.Formats)
}

// ChaosConfig returns the iterator configuration.
func (o *Options) ChaosConfig() chaos.Config {
	return chaos.Config{
		SeedCount:  o.SeedCount,
		BaseSeed:   o.BaseSeed,
		PointCount: o.PointCount,
		RsqAddVar3: o.RsqAddVar3,
		Mode:       chaos.Mode(o.Mode),
	}
}

// StartVec returns the initial position.
func (o *Options) StartVec() vec.Vec3 {
	return vec.FromArray(o.Start)
}

// CloudKeyOpts returns cache key options for generation.
func (o *Options) CloudKeyOpts() cache.CloudKeyOpts {
	return cache.CloudKeyOpts{
		SeedCount:  o.SeedCount,
		BaseSeed:   o.BaseSeed,
		PointCount: o.PointCount,
		RsqAddVar3: o.RsqAddVar3,
		Mode:       o.Mode,
		Start:      o.Start,
	}
}

// ArtifactKeyOpts returns cache key options for an export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// ExportOptions returns the export options that annotate artifacts with the
// run parameters.
func (o *Options) ExportOptions() []export.Option {
	return []export.Option{
		export.WithConfig(o.ChaosConfig()),
		export.WithStart(o.StartVec()),
	}
}
