package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/export"
)

// exportCommand groups the text exports.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a spec as text",
	}

	cmd.AddCommand(c.exportTextCommand())

	return cmd
}

// exportTextCommand creates the "export text" subcommand.
func (c *CLI) exportTextCommand() *cobra.Command {
	var (
		output string
		asYAML bool
		clip   bool
	)

	cmd := &cobra.Command{
		Use:   "text [spec.json]",
		Short: "Print the spec as JSON or YAML",
		Long: `Print the spec as indented JSON, or YAML with --yaml.

With --clipboard the text is copied to the system clipboard instead. When no
clipboard utility is available the text is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}

			data, err := export.Text(spec)
			if asYAML {
				data, err = export.YAML(spec)
			}
			if err != nil {
				return err
			}

			switch {
			case output != "":
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Exported %s", args[0])
				printFile(output)
				return nil
			case clip:
				err := export.Clipboard(cmd.Context(), string(data))
				if err == nil {
					printSuccess("Copied %d bytes to the clipboard", len(data))
					return nil
				}
				if !errors.Is(err, export.ErrClipboardUnavailable) {
					return err
				}
				c.Logger.Warn("clipboard unavailable, printing instead")
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "export YAML instead of JSON")
	cmd.Flags().BoolVar(&clip, "clipboard", false, "copy to the system clipboard")

	return cmd
}
