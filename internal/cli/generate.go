package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags     planFlags
		output    string
		delay     time.Duration
		showRooms bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and lay out a floor plan",
		Long: `Generate a floor plan for a building type and country.

The rooms come from the building type's defaults, scaled up to the country's
minimum room sizes, then placed by the building type's layout strategy and
validated. The spec is written as JSON (default: <type>-<country>.json).`,
		Example: `  planforge generate -t house -c US
  planforge generate -t office -c DE -o office.json --delay 0s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			if cmd.Flags().Changed("delay") {
				c.Config.Generation.Delay = delay
			}
			return c.runGenerate(cmd.Context(), opts, output, showRooms)
		},
	}

	flags.addGenerate(cmd.Flags())
	flags.addLayout(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <type>-<country>.json)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "simulated generation latency (default from config, 1s)")
	cmd.Flags().BoolVar(&showRooms, "rooms", false, "print the room table")
	registerCompletions(cmd)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, showRooms bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s for %s...", opts.BuildingType, opts.Country))
	spinner.Start()

	spec, warnings, err := runner.Generate(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done("generated spec", "id", spec.ID, "rooms", len(spec.Rooms))

	if output == "" {
		output = specFileName(opts.BuildingType, opts.Country)
	}
	if err := blueprint.WriteFile(output, spec); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Generated %s plan for %s", opts.BuildingType, opts.Country)
	printFile(output)
	printStats(spec, len(warnings), false)
	if showRooms {
		fmt.Println(roomsTable(spec))
	}
	printWarnings(warnings)
	printNewline()
	printNextStep("Render", "planforge render "+output+" -f png,pdf")

	return nil
}
