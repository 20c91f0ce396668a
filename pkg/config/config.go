// Package config loads the galaxy.toml configuration file.
//
// Every section is optional. Values missing from the file keep their
// defaults, and unknown keys are rejected so that typos surface instead of
// silently falling back to a default:
//
//	[galaxy]
//	seed_count = 3
//	base_seed = 0.0
//	point_count = 10000
//	rsq_add_var3 = 0.0
//	mode = "literal"
//	start = [0.0, 0.0, 0.0]
//
//	[output]
//	formats = ["json", "ply"]
//
//	[cache]
//	backend = "file"      # file | redis | none
//	dir = "~/.cache/galaxy"
//	redis_url = "redis://localhost:6379/0"
//	prefix = "galaxy:"
//
//	[store]
//	backend = "file"      # memory | file | mongo
//	dir = "~/.config/galaxy/runs"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "galaxy"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/pipeline"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "galaxy.toml"

// Backend names.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// DefaultAddr is the HTTP listen address.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Galaxy Galaxy `toml:"galaxy"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Galaxy holds generation parameters.
type Galaxy struct {
	SeedCount  int        `toml:"seed_count"`
	BaseSeed   float64    `toml:"base_seed"`
	PointCount int        `toml:"point_count"`
	RsqAddVar3 float64    `toml:"rsq_add_var3"`
	Mode       string     `toml:"mode"`
	Start      [3]float64 `toml:"start"`
}

// Output holds export settings.
type Output struct {
	Formats []string `toml:"formats"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Store selects and configures the run store.
type Store struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	opts := pipeline.DefaultOptions()
	return &Config{
		Galaxy: Galaxy{
			SeedCount:  opts.SeedCount,
			BaseSeed:   opts.BaseSeed,
			PointCount: opts.PointCount,
			RsqAddVar3: opts.RsqAddVar3,
			Mode:       opts.Mode,
		},
		Output: Output{Formats: opts.Formats},
		Cache:  Cache{Backend: BackendFile},
		Store:  Store{Backend: BackendFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads the configuration at path. An empty path tries DefaultFile in
// the working directory and falls back to Default when it does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); os.IsNotExist(err) {
			return Default(), nil
		}
		path = DefaultFile
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "read %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errs.New(errs.ErrCodeConfiguration, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	return cfg, nil
}

// Validate checks backend names and the generation options.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeConfiguration, "cache: redis backend requires redis_url")
		}
	default:
		return errs.New(errs.ErrCodeConfiguration, "cache: unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case BackendFile, BackendMemory:
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return errs.New(errs.ErrCodeConfiguration, "store: mongo backend requires mongo_uri")
		}
	default:
		return errs.New(errs.ErrCodeConfiguration, "store: unknown backend %q (must be one of: memory, file, mongo)", c.Store.Backend)
	}

	opts := c.PipelineOptions()
	return opts.ValidateAndSetDefaults()
}

// PipelineOptions returns the generation and export options from the file.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		SeedCount:  c.Galaxy.SeedCount,
		BaseSeed:   c.Galaxy.BaseSeed,
		PointCount: c.Galaxy.PointCount,
		RsqAddVar3: c.Galaxy.RsqAddVar3,
		Mode:       c.Galaxy.Mode,
		Start:      c.Galaxy.Start,
		Formats:    append([]string(nil), c.Output.Formats...),
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
