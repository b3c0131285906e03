package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine summarizes a spec on one line: room count, total area, unit
// and whether the result came from the cache.
func statsLine(spec *blueprint.Spec, warnings int, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d rooms", len(spec.Rooms)),
		fmt.Sprintf("%s %s", num(spec.TotalArea), spec.Unit.AreaAbbrev()),
		fmt.Sprintf("%d warnings", warnings),
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

func printStats(spec *blueprint.Spec, warnings int, cached bool) {
	fmt.Println(statsLine(spec, warnings, cached))
}

// printWarnings prints validation warnings, or a success line when there
// are none.
func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		printSuccess("No validation warnings")
		return
	}
	printWarning("%d validation warning(s)", len(warnings))
	fmt.Println(warningsTable(warnings))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
}

func warningsTable(warnings []string) string {
	t := newTable("#", "Warning")
	for i, w := range warnings {
		t.Row(fmt.Sprint(i+1), w)
	}
	return t.Render()
}

// roomsTable lists the rooms of spec with their placement and size.
func roomsTable(spec *blueprint.Spec) string {
	t := newTable("ID", "Room", "Position", "Size", "Area ("+spec.Unit.AreaAbbrev()+")")
	for _, r := range spec.Rooms {
		t.Row(
			r.ID,
			r.Name,
			fmt.Sprintf("%s, %s", num(r.Position.X), num(r.Position.Y)),
			sizeLabel(r, spec.Unit),
			num(r.Area),
		)
	}
	return t.Render()
}

// standardTable lists the minimum room sizes of the standard for code.
func standardTable(code string) string {
	std := standards.Lookup(code)
	types := make([]blueprint.RoomType, 0, len(std.MinRoomSizes))
	for rt := range std.MinRoomSizes {
		types = append(types, rt)
	}
	slices.Sort(types)

	t := newTable("Room", "Minimum ("+blueprint.UnitForCountry(code).AreaAbbrev()+")")
	for _, rt := range types {
		t.Row(rt.Title(), num(std.MinRoomSizes[rt]))
	}
	return t.Render()
}

// countriesTable lists the selectable countries and whether each has its
// own standard.
func countriesTable() string {
	t := newTable("Code", "Country", "Unit", "Standard")
	for _, c := range standards.Countries {
		std := "default"
		if standards.HasStandard(c.Code) {
			std = "national"
		}
		t.Row(c.Code, c.Name, string(c.Unit), std)
	}
	return t.Render()
}

// sizeLabel formats a footprint, e.g. "16' × 20'" or "4.5m × 3m".
func sizeLabel(r blueprint.Room, u blueprint.Unit) string {
	return num(r.Width) + u.Abbrev() + " × " + num(r.Depth) + u.Abbrev()
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
