package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxy/pkg/store"
)

// runsCommand creates the runs command for inspecting recorded runs.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded generation runs",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No runs recorded")
				return nil
			}
			for _, r := range runs {
				printRunLine(r)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "maximum number of runs to show")
	return cmd
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a recorded run",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeRunIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			r, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRun(r)
			return nil
		},
	}
}

// completeRunIDs offers the IDs of recent runs.
func (c *CLI) completeRunIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	st, err := c.newStore(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer st.Close()

	runs, err := st.List(cmd.Context(), store.DefaultListLimit)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID + "\t" + r.CreatedAt.Local().Format(time.DateTime)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func printRunLine(r *store.Run) {
	fmt.Printf("%s  %s  %s  %s\n",
		StyleHighlight.Render(r.ID),
		StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)),
		StyleNumber.Render(strconv.Itoa(r.Summary.PointCount)+" points"),
		StyleDim.Render(string(r.Config.Mode)))
}

func printRun(r *store.Run) {
	fmt.Println(StyleTitle.Render("Run " + r.ID))
	printKeyValue("created", r.CreatedAt.Local().Format(time.RFC3339))
	printKeyValue("seeds", fmt.Sprintf("%d from base %g", r.Config.SeedCount, r.Config.BaseSeed))
	printKeyValue("points", strconv.Itoa(r.Summary.PointCount))
	printKeyValue("mode", string(r.Config.Mode))
	printKeyValue("rsq_add", fmt.Sprintf("%g", r.Config.RsqAddVar3))
	printKeyValue("start", fmt.Sprintf("%g,%g,%g", r.Start[0], r.Start[1], r.Start[2]))
	printKeyValue("bounds", fmt.Sprintf("%v .. %v", r.Summary.Min, r.Summary.Max))
	printKeyValue("centroid", fmt.Sprintf("%v", r.Summary.Centroid))
	printKeyValue("selectors", fmt.Sprintf("%v", r.Summary.Selectors))
	printKeyValue("duration", r.Duration.Round(time.Millisecond).String())
	printKeyValue("cloud hash", r.CloudHash)
}
