package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/pipeline"
)

// renderCommand creates the render command for writing drawings and
// exports of a spec.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    planFlags
		output   string
		noCache  bool
		relayout bool
	)

	cmd := &cobra.Command{
		Use:   "render [spec.json]",
		Short: "Render a spec to drawings and exports",
		Long: `Render a spec to one or more output formats:

  png        the technical drawing as an image
  pdf        the drawing on an A4 landscape page
  svg        a compact overview with one rectangle per room
  drawing    the full technical drawing as SVG
  json, yaml the spec as text
  adjacency  a diagram of which rooms share a wall

Files are named <base><ext>, where base is -o or the input without its
extension. Rendered outputs are cached per format and view.`,
		Example: `  planforge render house-us.json -f png,pdf
  planforge render house-us.json -f drawing --scale 1.2 -o plans/house`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			opts.Relayout = relayout
			if output == "" {
				output = c.Config.Output
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.addRender(cmd.Flags())
	flags.addLayout(cmd.Flags())
	registerFormatCompletion(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&relayout, "relayout", false, "re-run room placement before rendering")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	spec, err := readSpec(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Spec = spec
	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d format(s)...", len(opts.Formats)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("rendered", "formats", len(opts.Formats), "cached", result.CacheInfo.RenderHit)

	paths, err := writeArtifacts(basePath(output, input), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s at %s (%s)", input, opts.View().Percent(), opts.View().Ratio())
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Spec, len(result.Warnings), result.CacheInfo.RenderHit)
	if len(result.Warnings) > 0 {
		printWarning("%d validation warning(s); see planforge validate %s", len(result.Warnings), input)
	}
	return nil
}

// writeArtifacts writes one file per format, in format order, and returns
// the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s output", format)
		}
		path := base + pipeline.Extensions[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
