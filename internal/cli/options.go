package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/planforge/pkg/blueprint"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/pipeline"
	"github.com/matzehuels/planforge/pkg/standards"
)

// planFlags holds pipeline flags. Config values seed the options; a flag
// only wins when it was set on the command line.
type planFlags struct {
	buildingType string
	country      string
	minimums     string
	formats      string
	scale        float64
	offsetX      float64
	offsetY      float64
}

func (f *planFlags) addGenerate(fs *pflag.FlagSet) {
	fs.StringVarP(&f.buildingType, "type", "t", string(pipeline.DefaultBuildingType), "building type: house, shop, office, restaurant")
	fs.StringVarP(&f.country, "country", "c", pipeline.DefaultCountry, "two-letter country code")
}

func (f *planFlags) addLayout(fs *pflag.FlagSet) {
	fs.StringVar(&f.minimums, "minimums", pipeline.MinimumsFlat, "minimum room sizes to validate against: flat, country")
}

func (f *planFlags) addRender(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", pipeline.FormatPNG, "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	fs.Float64Var(&f.scale, "scale", 0, "drawing zoom, 0.3 to 2.5 (default from config, 0.8)")
	fs.Float64Var(&f.offsetX, "offset-x", 0, "horizontal pan in pixels")
	fs.Float64Var(&f.offsetY, "offset-y", 0, "vertical pan in pixels")
}

// apply overrides opts with every flag that was set explicitly.
func (f *planFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("type") {
		opts.BuildingType = f.buildingType
	}
	if fs.Changed("country") {
		opts.Country = f.country
	}
	if fs.Changed("minimums") {
		opts.Minimums = f.minimums
	}
	if fs.Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("offset-x") {
		opts.OffsetX = f.offsetX
	}
	if fs.Changed("offset-y") {
		opts.OffsetY = f.offsetY
	}
}

// registerCompletions completes building types and countries for the
// generate flags.
func registerCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, b := range standards.Buildings() {
			out = append(out, string(b.Type)+"\t"+b.Description)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("country", completeCountries)
}

// registerFormatCompletion completes the comma-separated -f list.
func registerFormatCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		done := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			done = toComplete[:i+1]
		}
		out := make([]string, len(pipeline.Formats))
		for i, f := range pipeline.Formats {
			out[i] = done + f
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	})
}

func completeCountries(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(standards.Countries))
	for i, c := range standards.Countries {
		out[i] = c.Code + "\t" + c.Name
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// =============================================================================
// Spec Files
// =============================================================================

// readSpec loads and checks a spec file.
func readSpec(path string) (*blueprint.Spec, error) {
	spec, err := blueprint.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSpec, err, "read %s", path)
	}
	if err := perrors.ValidateSpec(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// specFileName is the default output of generate, e.g. "house-us.json".
func specFileName(buildingType, country string) string {
	return buildingType + "-" + strings.ToLower(country) + ".json"
}

// withSuffix returns input with its extension replaced by suffix, e.g.
// "plan.json" and ".layout.json" give "plan.layout.json".
func withSuffix(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// basePath derives the base output path for rendered artifacts. An empty
// output strips the extension from input; a known artifact extension on
// output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	longest := ""
	for _, ext := range pipeline.Extensions {
		if strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}
