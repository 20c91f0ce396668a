// Package store keeps records of completed generation runs.
//
// A [Run] captures what was asked for and a summary of what came out, not
// the points themselves: generation is deterministic, so the cloud can always
// be regenerated (or fetched from the cache) from the record's parameters.
//
// Implementations:
//   - [MemoryStore]: in-process, for the HTTP service in development and tests
//   - [FileStore]: JSON files under ~/.config/galaxy/runs, for the CLI
//   - [MongoStore]: a MongoDB collection, for multi-instance deployments
package store

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/pipeline"
)

// DefaultListLimit is used when List is called with a non-positive limit.
const DefaultListLimit = 20

// Store persists run records.
type Store interface {
	// Save inserts r. Saving an ID twice replaces the earlier record.
	Save(ctx context.Context, r *Run) error

	// Get returns the run with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases resources held by the store.
	Close() error
}

// Run is the record of one pipeline execution.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Config    chaos.Config  `json:"config" bson:"config"`
	Start     [3]float64    `json:"start" bson:"start"`
	Formats   []string      `json:"formats" bson:"formats"`
	CloudHash string        `json:"cloud_hash" bson:"cloud_hash"`
	Summary   Summary       `json:"summary" bson:"summary"`
	Duration  time.Duration `json:"duration" bson:"duration"`
	Cached    bool          `json:"cached" bson:"cached"`
}

// Summary is a storable digest of cloud.Stats.
type Summary struct {
	PointCount int            `json:"point_count" bson:"point_count"`
	Min        [3]float64     `json:"min" bson:"min"`
	Max        [3]float64     `json:"max" bson:"max"`
	Centroid   [3]float64     `json:"centroid" bson:"centroid"`
	Selectors  map[string]int `json:"selectors" bson:"selectors"`
}

// NewRun builds the record for a finished pipeline run.
func NewRun(res *pipeline.Result, opts pipeline.Options) *Run {
	st := res.Stats.Cloud
	sel := make(map[string]int, len(st.Selectors))
	for k, v := range st.Selectors {
		sel[strconv.Itoa(k)] = v
	}
	return &Run{
		ID:        res.RunID,
		CreatedAt: time.Now().UTC(),
		Config:    opts.ChaosConfig(),
		Start:     opts.Start,
		Formats:   append([]string(nil), opts.Formats...),
		CloudHash: res.CloudHash,
		Summary: Summary{
			PointCount: st.Count,
			Min:        st.Min.Array(),
			Max:        st.Max.Array(),
			Centroid:   st.Centroid.Array(),
			Selectors:  sel,
		},
		Duration: res.Stats.GenerateTime + res.Stats.ExportTime,
		Cached:   res.CacheInfo.GenerateHit,
	}
}

// Options returns pipeline options that regenerate the run's cloud.
func (r *Run) Options() pipeline.Options {
	return pipeline.Options{
		SeedCount:  r.Config.SeedCount,
		BaseSeed:   r.Config.BaseSeed,
		PointCount: r.Config.PointCount,
		RsqAddVar3: r.Config.RsqAddVar3,
		Mode:       string(r.Config.Mode),
		Start:      r.Start,
		Formats:    append([]string(nil), r.Formats...),
	}
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "run %s not found", id)
}

func validate(r *Run) error {
	if r == nil {
		return errs.New(errs.ErrCodeInvalidInput, "run is nil")
	}
	return errs.ValidateRunID(r.ID)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
