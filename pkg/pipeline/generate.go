package pipeline

import (
	"context"

	"github.com/matzehuels/galaxy/pkg/cloud"
	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/export"
)

// Generate runs the chaos game for opts into a new cloud. On failure the
// error carries the failing iteration (see errors.IterationOf).
func Generate(ctx context.Context, opts Options) (*cloud.Cloud, error) {
	c := cloud.New(opts.PointCount)
	if err := Stream(ctx, opts, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Stream runs the chaos game for opts and hands every point to sink in
// iteration order. Points already delivered stay delivered when the run fails.
func Stream(ctx context.Context, opts Options, sink chaos.Sink) error {
	it, err := chaos.NewIterator(opts.ChaosConfig(), opts.StartVec())
	if err != nil {
		return err
	}
	return it.Run(ctx, sink)
}

// Export encodes c in every format of opts.Formats.
func Export(c *cloud.Cloud, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := export.Render(c, format, opts.ExportOptions()...)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
