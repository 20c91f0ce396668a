package chaos

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/matzehuels/galaxy/pkg/core/prng"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// selectorRange is the number of values the selector draw can take.
const selectorRange = 3

// Config holds the options a run recognizes.
type Config struct {
	SeedCount  int     `json:"seed_count"`
	BaseSeed   float64 `json:"base_seed"`
	PointCount int     `json:"point_count"`
	RsqAddVar3 float64 `json:"rsq_add_var3"`
	Mode       Mode    `json:"mode,omitempty"`
}

// Validate checks c and returns an INVALID_CONFIGURATION error on failure.
func (c Config) Validate() error {
	if c.SeedCount <= 0 {
		return errs.New(errs.ErrCodeConfiguration, "seed count must be positive, got %d", c.SeedCount)
	}
	if c.PointCount < 0 {
		return errs.New(errs.ErrCodeConfiguration, "point count must not be negative, got %d", c.PointCount)
	}
	if err := errs.ValidateFinite("base seed", c.BaseSeed); err != nil {
		return err
	}
	if err := errs.ValidateFinite("rsq_add_var3", c.RsqAddVar3); err != nil {
		return err
	}
	return c.Mode.Validate()
}

// State is the lifecycle stage of an [Iterator].
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Iterator drives one run. It owns the running position exclusively and is
// not safe for concurrent use; independent runs need independent iterators.
type Iterator struct {
	cfg   Config
	seeds []float64
	pos   vec.Vec3
	next  int
	state State
	err   error
}

// NewIterator validates cfg, derives the seed sequence and positions the chain
// at start.
func NewIterator(cfg Config, start vec.Vec3) (*Iterator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !start.IsFinite() {
		return nil, errs.New(errs.ErrCodeConfiguration, "start position must be finite, got %v", start)
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	return &Iterator{
		cfg:   cfg,
		seeds: GenerateSeeds(cfg.BaseSeed, cfg.SeedCount),
		pos:   start,
	}, nil
}

// Config returns the configuration with defaults applied.
func (it *Iterator) Config() Config { return it.cfg }

// Seeds returns a copy of the run's seed sequence.
func (it *Iterator) Seeds() []float64 { return append([]float64(nil), it.seeds...) }

// State returns the current lifecycle stage.
func (it *Iterator) State() State { return it.state }

// Position returns the running position: the last emitted point's position,
// or the start position before the first step.
func (it *Iterator) Position() vec.Vec3 { return it.pos }

// Emitted returns the number of points produced so far.
func (it *Iterator) Emitted() int { return it.next }

// Err returns the error that stopped the run, if any.
func (it *Iterator) Err() error { return it.err }

// Next performs one iteration and returns its point. After the last point it
// returns io.EOF. Once a step fails, every later call returns the same error.
func (it *Iterator) Next() (Point, error) {
	if it.state == StateDone {
		if it.err != nil {
			return Point{}, it.err
		}
		return Point{}, io.EOF
	}
	if it.next >= it.cfg.PointCount {
		it.state = StateDone
		return Point{}, io.EOF
	}
	it.state = StateRunning

	p, err := it.step(it.next)
	if err != nil {
		it.err = errs.AtIteration(it.next, err)
		it.state = StateDone
		return Point{}, it.err
	}
	it.pos = p.Position
	it.next++
	if it.next == it.cfg.PointCount {
		it.state = StateDone
	}
	return p, nil
}

// step computes iteration i from the running position.
func (it *Iterator) step(i int) (Point, error) {
	needle := Selector(i)
	if needle >= len(it.seeds) {
		return Point{}, errs.New(errs.ErrCodeIndex, "selector %d exceeds seed sequence of length %d", needle, len(it.seeds))
	}

	pos, color := Derive(it.pos, it.seeds[needle])

	chain, selector := it.cfg.Mode.plan(needle)
	for _, v := range chain {
		var err error
		if pos, err = v.Apply(pos, it.cfg.RsqAddVar3); err != nil {
			return Point{}, err
		}
	}

	return Point{
		Index:    i,
		Position: pos,
		Color:    color,
		Selector: selector,
	}, nil
}

// Run drives the remaining iterations into sink. It stops at the first error
// from a step or from sink and returns it with the iteration index attached.
// Cancelling ctx stops the run before the next iteration and returns ctx.Err().
func (it *Iterator) Run(ctx context.Context, sink Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sink.Emit(p); err != nil {
			it.err = errs.AtIteration(p.Index, fmt.Errorf("sink: %w", err))
			it.state = StateDone
			return it.err
		}
	}
}

// Selector returns the selector drawn for iteration i, in [0, 3).
func Selector(i int) int {
	return int(math.Floor(prng.Rand(float64(i)) * selectorRange))
}

// Generate runs cfg from start and collects every point.
func Generate(ctx context.Context, cfg Config, start vec.Vec3) ([]Point, error) {
	it, err := NewIterator(cfg, start)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, cfg.PointCount)
	err = it.Run(ctx, SinkFunc(func(p Point) error {
		points = append(points, p)
		return nil
	}))
	return points, err
}
