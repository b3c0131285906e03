package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/blueprint"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/pipeline"
)

// resizeCommand creates the resize command, the non-interactive form of
// customize.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		flags  planFlags
		roomID string
		dw, dd float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "resize [spec.json]",
		Short: "Grow or shrink one room and lay the plan out again",
		Long: fmt.Sprintf(`Grow or shrink one room by the given width and depth deltas, then re-run
the layout and validation. Sides never shrink below %g units.

The spec is written back to the input file unless -o is given.`, blueprint.MinSide),
		Example: `  planforge resize house-us.json --room room-0 --width +2
  planforge resize house-us.json --room room-3 --width -1 --depth -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			if output == "" {
				output = args[0]
			}
			return c.runResize(cmd.Context(), args[0], opts, roomID, dw, dd, output)
		},
	}

	flags.addLayout(cmd.Flags())
	cmd.Flags().StringVar(&roomID, "room", "", "room id, e.g. room-0")
	cmd.Flags().Float64Var(&dw, "width", 0, "width change in plan units")
	cmd.Flags().Float64Var(&dd, "depth", 0, "depth change in plan units")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	_ = cmd.MarkFlagRequired("room")

	return cmd
}

func (c *CLI) runResize(ctx context.Context, input string, opts pipeline.Options, roomID string, dw, dd float64, output string) error {
	spec, err := readSpec(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	resized, before, err := resizeRoom(spec, roomID, dw, dd)
	if err != nil {
		return err
	}

	opts.Logger = c.Logger
	out, warnings, err := runner.Layout(ctx, resized, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	after := out.Room(roomID)

	if err := blueprint.WriteFile(output, out); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Resized %s (%s)", after.Name, roomID)
	printDetail("%s → %s", sizeLabel(before, out.Unit), sizeLabel(*after, out.Unit))
	printFile(output)
	printStats(out, len(warnings), false)
	printWarnings(warnings)
	return nil
}

// resizeRoom returns a copy of spec whose room id is grown by dw and dd,
// together with the room as it was.
func resizeRoom(spec *blueprint.Spec, id string, dw, dd float64) (*blueprint.Spec, blueprint.Room, error) {
	out := spec.Clone()
	r := out.Room(id)
	if r == nil {
		return nil, blueprint.Room{}, perrors.New(perrors.ErrCodeNotFound, "no room %q in spec", id)
	}
	before := *r
	*r = r.Adjust(dw, dd)
	return out, before, nil
}
