// Package cache provides the caching layer for generated clouds and exported
// artifacts.
//
// Generation is deterministic, so a cloud is fully identified by its options:
// the pipeline hashes them into a key, stores the encoded cloud under it and
// derives per-format artifact keys from the cloud key.
//
// # Backends
//
//   - [FileCache]: files under ~/.cache/galaxy, for the CLI
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes the key options; [ScopedKeyer]
// prefixes another keyer's keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs per entry type.
const (
	TTLCloud    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// CloudKeyOpts identifies a generated cloud.
type CloudKeyOpts struct {
	SeedCount  int        `json:"seed_count"`
	BaseSeed   float64    `json:"base_seed"`
	PointCount int        `json:"point_count"`
	RsqAddVar3 float64    `json:"rsq_add_var3"`
	Mode       string     `json:"mode"`
	Start      [3]float64 `json:"start"`
}

// ArtifactKeyOpts identifies an export of a cloud.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// CloudKey returns the key for the cloud generated from opts.
	CloudKey(opts CloudKeyOpts) string

	// ArtifactKey returns the key for an export of the cloud stored at cloudKey.
	ArtifactKey(cloudKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CloudKey returns "cloud:<sha256>".
func (DefaultKeyer) CloudKey(opts CloudKeyOpts) string {
	return hashKey("cloud", opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(cloudKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", cloudKey, opts)
}
