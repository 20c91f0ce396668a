package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/galaxy/pkg/cache"
	"github.com/matzehuels/galaxy/pkg/cloud"
	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeCloud    = "cloud"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	genStart := time.Now()
	c, hash, genHit, err := r.generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Cloud = c
	result.CloudHash = hash
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.PointCount = c.Len()
	result.Stats.Cloud = c.Stats()
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated cloud",
		"points", c.Len(),
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported cloud",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// GenerateWithCacheInfo generates a cloud with caching and returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*cloud.Cloud, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	c, _, hit, err := r.generate(ctx, opts)
	return c, hit, err
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*cloud.Cloud, error) {
	c, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return c, err
}

// generate expects validated options. It returns the cloud, the hash of its
// encoding and whether it came from the cache.
func (r *Runner) generate(ctx context.Context, opts Options) (*cloud.Cloud, string, bool, error) {
	cacheKey := r.Keyer.CloudKey(opts.CloudKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if c, err := cloud.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeCloud)
				return c, cache.Hash(data), true, nil
			}
			// If decoding fails, fall through to regenerate
			r.Logger.Debug("discarding undecodable cache entry", "key", cacheKey)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeCloud)

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.SeedCount, opts.PointCount, opts.Mode)
	start := time.Now()
	c, err := Generate(ctx, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, 0, time.Since(start), err)
		return nil, "", false, err
	}
	hooks.OnGenerateComplete(ctx, c.Len(), time.Since(start), nil)

	data, err := cloud.Marshal(c)
	if err != nil {
		return nil, "", false, fmt.Errorf("encode cloud: %w", err)
	}
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLCloud); err != nil {
		r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeCloud, len(data))
	}

	return c, cache.Hash(data), false, nil
}

// ExportWithCacheInfo exports c with caching and returns cache hit info.
// Artifacts are keyed by the options that produced c, so c must come from
// the same options.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	opts.SetGenerateDefaults()

	cloudKey := r.Keyer.CloudKey(opts.CloudKeyOpts())

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(cloudKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()
	exported, err := Export(c, opts)
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range exported {
		cacheKey := r.Keyer.ArtifactKey(cloudKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return exported, false, nil // Cache miss
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

// Stream validates opts and streams points to sink without caching.
func (r *Runner) Stream(ctx context.Context, opts Options, sink chaos.Sink) error {
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.SeedCount, opts.PointCount, opts.Mode)
	start := time.Now()
	counted := &countingSink{next: sink}
	err := Stream(ctx, opts, counted)
	hooks.OnGenerateComplete(ctx, counted.n, time.Since(start), err)
	return err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

type countingSink struct {
	next chaos.Sink
	n    int
}

func (s *countingSink) Emit(p chaos.Point) error {
	if err := s.next.Emit(p); err != nil {
		return err
	}
	s.n++
	return nil
}
