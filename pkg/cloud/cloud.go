// Package cloud holds generated point clouds.
//
// A [Cloud] is the host-side container for a run: it implements
// [chaos.Sink], keeps points in iteration order and tracks bounds and
// selector counts as points arrive.
//
//	c := cloud.New(cfg.PointCount)
//	if err := it.Run(ctx, c); err != nil {
//	    return err
//	}
//	fmt.Println(c.Len(), c.Stats().Max)
//
// Clouds round-trip through [Marshal] and [Unmarshal], which the pipeline uses
// for caching.
package cloud

import (
	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// Cloud is an ordered, append-only point container. It is not safe for
// concurrent writers.
type Cloud struct {
	points    []chaos.Point
	min, max  vec.Vec3
	sum       vec.Vec3
	selectors map[int]int
}

// New returns an empty cloud with room for capacity points.
func New(capacity int) *Cloud {
	if capacity < 0 {
		capacity = 0
	}
	return &Cloud{
		points:    make([]chaos.Point, 0, capacity),
		selectors: make(map[int]int),
	}
}

// Emit appends p. Points must arrive in iteration order: p.Index must equal
// the current length.
func (c *Cloud) Emit(p chaos.Point) error {
	if p.Index != len(c.points) {
		return errs.New(errs.ErrCodeInvalidInput, "point %d out of order, expected %d", p.Index, len(c.points))
	}
	if len(c.points) == 0 {
		c.min, c.max = p.Position, p.Position
	} else {
		c.min = c.min.Min(p.Position)
		c.max = c.max.Max(p.Position)
	}
	c.sum = c.sum.Add(p.Position)
	c.selectors[p.Selector]++
	c.points = append(c.points, p)
	return nil
}

// Len returns the number of points.
func (c *Cloud) Len() int { return len(c.points) }

// Points returns the points in iteration order. Callers must not modify the
// returned slice.
func (c *Cloud) Points() []chaos.Point { return c.points }

// At returns the i-th point.
func (c *Cloud) At(i int) chaos.Point { return c.points[i] }

// Stats summarizes a cloud.
type Stats struct {
	Count     int         `json:"count"`
	Min       vec.Vec3    `json:"min"`
	Max       vec.Vec3    `json:"max"`
	Centroid  vec.Vec3    `json:"centroid"`
	Selectors map[int]int `json:"selectors"`
}

// Stats returns the bounds, centroid and selector histogram. For an empty
// cloud all vectors are zero.
func (c *Cloud) Stats() Stats {
	s := Stats{
		Count:     len(c.points),
		Min:       c.min,
		Max:       c.max,
		Selectors: make(map[int]int, len(c.selectors)),
	}
	if len(c.points) > 0 {
		n := float64(len(c.points))
		s.Centroid = vec.New(c.sum.X/n, c.sum.Y/n, c.sum.Z/n)
	}
	for k, v := range c.selectors {
		s.Selectors[k] = v
	}
	return s
}

var _ chaos.Sink = (*Cloud)(nil)
