package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/pipeline"
	"github.com/matzehuels/galaxy/pkg/store"
)

// defaultOutput is the base path for generated files.
const defaultOutput = appName

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	seedCount  int
	baseSeed   float64
	points     int
	rsqAdd     float64
	mode       string
	start      string
	formats    string
	output     string
	noCache    bool
	refresh    bool
	skipRecord bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var f generateFlags
	defaults := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a galaxy point cloud",
		Long: `Generate a galaxy point cloud.

Each iteration draws a seed, builds an affine map and color from it, applies
the variations selected by --mode and feeds the point back in. The same
options always produce the same points, so results are cached locally.

Modes:
  literal     apply var1, var2 and var3 every iteration (selector 3)
  corrected   apply identity, var1 or var2 by the drawn selector
  one-based   apply var1, var2 or var3 by the drawn selector plus one

Flags override values from the config file.`,
		Example: `  galaxy generate --points 50000 -f ply
  galaxy generate --mode corrected --seed 0.5 --start 0.1,0,0 -f json,csv -o out/spiral`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.generateOptions(cmd, f)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, f)
		},
	}

	cmd.Flags().IntVar(&f.seedCount, "seed-count", defaults.SeedCount, "number of seeds derived from the base seed")
	cmd.Flags().Float64Var(&f.baseSeed, "seed", defaults.BaseSeed, "base seed")
	cmd.Flags().IntVarP(&f.points, "points", "n", defaults.PointCount, "number of points to generate")
	cmd.Flags().Float64Var(&f.rsqAdd, "rsq-add", defaults.RsqAddVar3, "offset added by var3")
	cmd.Flags().StringVar(&f.mode, "mode", defaults.Mode, "variation mode: literal, corrected, one-based")
	cmd.Flags().StringVar(&f.start, "start", vec.Zero.String(), "initial position as x,y,z")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), ply, csv (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", defaultOutput, "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().BoolVar(&f.skipRecord, "no-record", false, "do not save a run record")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(chaos.Modes))
		for i, m := range chaos.Modes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// generateOptions starts from the config file and applies explicitly set flags.
func (c *CLI) generateOptions(cmd *cobra.Command, f generateFlags) (pipeline.Options, error) {
	opts := c.cfg.PipelineOptions()
	flags := cmd.Flags()

	if flags.Changed("seed-count") {
		opts.SeedCount = f.seedCount
	}
	if flags.Changed("seed") {
		opts.BaseSeed = f.baseSeed
	}
	if flags.Changed("points") {
		opts.PointCount = f.points
	}
	if flags.Changed("rsq-add") {
		opts.RsqAddVar3 = f.rsqAdd
	}
	if flags.Changed("mode") {
		mode, err := chaos.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = string(mode)
	}
	if flags.Changed("start") {
		start, err := vec.Parse(f.start)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "--start: %v", err)
		}
		opts.Start = start.Array()
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	opts.Refresh = f.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runGenerate executes the pipeline, writes one file per format and records the run.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, f generateFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sw := startStopwatch(c.Logger)
	spin := newSpinner(ctx, fmt.Sprintf("Generating %d points...", opts.PointCount))
	spin.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if i, ok := errs.IterationOf(err); ok {
			spin.StopWithError(fmt.Sprintf("Generation failed at iteration %d (%s)", i, errs.GetCode(err)))
		} else {
			spin.StopWithError("Generation failed")
		}
		return err
	}
	spin.Stop()
	sw.done("pipeline finished", "points", res.Cloud.Len(), "cached", res.CacheInfo.GenerateHit)

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, f.output)
	if err != nil {
		return err
	}

	printSuccess("Generated %s", StyleNumber.Render(fmt.Sprintf("%d points", res.Cloud.Len())))
	printStats(res.Stats.Cloud.Count, string(opts.Mode), res.CacheInfo.GenerateHit)
	for _, p := range paths {
		printFile(p)
	}

	if !f.skipRecord {
		c.recordRun(ctx, res, opts)
	}
	return nil
}

// recordRun saves the run record. Failures are logged, not fatal.
func (c *CLI) recordRun(ctx context.Context, res *pipeline.Result, opts pipeline.Options) {
	st, err := c.newStore(ctx)
	if err != nil {
		c.Logger.Warn("run not recorded", "error", err)
		return
	}
	defer st.Close()
	if err := st.Save(ctx, store.NewRun(res, opts)); err != nil {
		c.Logger.Warn("run not recorded", "error", err)
		return
	}
	printDetail("Run %s", res.RunID)
}

// writeArtifacts writes each artifact and returns the paths written, in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(output, format, len(formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for format. A single format written to a path
// that already has an extension is used as-is; otherwise the format is
// appended as the extension.
func outputPath(output, format string, count int) string {
	if output == "" {
		output = defaultOutput
	}
	ext := filepath.Ext(output)
	if count == 1 && ext != "" {
		return output
	}
	if strings.EqualFold(ext, "."+format) {
		return output
	}
	return output + "." + format
}
