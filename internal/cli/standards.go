package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planforge/pkg/blueprint"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/standards"
)

// standardsCommand prints the country list or one country's minimum room
// sizes.
func (c *CLI) standardsCommand() *cobra.Command {
	var buildings bool

	cmd := &cobra.Command{
		Use:   "standards [country]",
		Short: "Show minimum room sizes per country",
		Long: `Without arguments, list the countries and whether each has a national
standard. With a country code, print its minimum room sizes; countries
without a standard use the DEFAULT table.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCountries,
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildings {
				fmt.Println(buildingsTable())
				return nil
			}
			if len(args) == 0 {
				fmt.Println(countriesTable())
				return nil
			}

			code := strings.ToUpper(args[0])
			if err := perrors.ValidateCountry(code); err != nil {
				return err
			}
			std := standards.Lookup(code)
			name := code
			if country, ok := standards.FindCountry(code); ok {
				name = country.Name
			}

			printKeyValue("Country", name)
			printKeyValue("Unit", string(blueprint.UnitForCountry(code)))
			if standards.HasStandard(code) {
				printKeyValue("Standard", std.Code)
			} else {
				printKeyValue("Standard", standards.DefaultCode+" (no national table)")
			}
			if std.Notes != "" {
				printKeyValue("Notes", std.Notes)
			}
			fmt.Println(standardTable(code))
			return nil
		},
	}

	cmd.Flags().BoolVar(&buildings, "buildings", false, "list building types instead")

	return cmd
}

// buildingsTable lists the building type catalogue.
func buildingsTable() string {
	t := newTable("Type", "Name", "Description", "Area (SF)", "Rooms", "Layout")
	for _, b := range standards.Buildings() {
		t.Row(string(b.Type), b.Name, b.Description, num(b.DefaultArea), fmt.Sprint(len(b.Rooms)), string(b.Layout))
	}
	return t.Render()
}
