package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/layout"
	"github.com/matzehuels/planforge/pkg/pipeline"
)

// validateCommand creates the validate command. Findings are advisory, so
// it only fails when the spec cannot be read.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		flags     planFlags
		showRooms bool
	)

	cmd := &cobra.Command{
		Use:   "validate [spec.json]",
		Short: "Check a spec against minimum sizes and for overlaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)

			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			laid := pipeline.Check(layout.New(), spec, opts)
			c.Logger.Debug("validated spec", "rooms", len(laid.Spec.Rooms), "minimums", opts.Minimums)

			printKeyValue("Building", string(laid.Spec.BuildingType))
			printKeyValue("Country", laid.Spec.Country)
			printKeyValue("Minimums", opts.Minimums)
			printStats(laid.Spec, len(laid.Warnings), false)
			if showRooms {
				fmt.Println(roomsTable(laid.Spec))
			}
			printWarnings(laid.Warnings)
			return nil
		},
	}

	flags.addLayout(cmd.Flags())
	cmd.Flags().BoolVar(&showRooms, "rooms", false, "print the room table")

	return cmd
}
