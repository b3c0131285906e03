package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/layout"
)

// customizeCommand creates the interactive room resizer.
func (c *CLI) customizeCommand() *cobra.Command {
	var (
		flags  planFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "customize [spec.json]",
		Short: "Resize rooms interactively",
		Long: `Open an interactive editor for the rooms of a spec.

Arrow keys select a room, + and - change its width, ] and [ its depth.
Every change re-runs the layout and shows the validation warnings. Press s
to save and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			opts.Logger = c.Logger
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}

			model := NewCustomizeModel(spec, output, layout.New(), opts)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("customize: %w", err)
			}

			if m, ok := final.(CustomizeModel); ok && m.Dirty {
				printWarning("Unsaved changes discarded")
				printNextStep("Apply a change without the editor", "planforge resize "+args[0]+" --room <id> --width +1")
			}
			return nil
		},
	}

	flags.addLayout(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save to (default: overwrite input)")

	return cmd
}
