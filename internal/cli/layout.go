package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/pipeline"
)

// layoutCommand creates the layout command for re-placing the rooms of a spec.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   planFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [spec.json]",
		Short: "Re-run room placement on a spec",
		Long: `Re-run room placement on an existing spec.

The rooms are placed by the strategy registered for the spec's building type;
unknown building types are packed in rows. Areas and the envelope are
recomputed and the result is validated.

Results are cached, keyed by the spec contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.addLayout(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	spec, err := readSpec(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	laid, cacheHit, err := runner.LayoutWithCacheInfo(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output == "" {
		output = withSuffix(input, ".layout.json")
	}
	if err := blueprint.WriteFile(output, laid.Spec); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(laid.Spec, len(laid.Warnings), cacheHit)
	printWarnings(laid.Warnings)
	printNewline()
	printNextStep("Render", "planforge render "+output)

	return nil
}
