package standards

import (
	"maps"
	"strings"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// DefaultCode is the key of the fallback entry used for unlisted countries.
const DefaultCode = "DEFAULT"

// Standard is the minimum-area policy of one country. Areas are in the
// square of the country's unit.
type Standard struct {
	Code         string                         `json:"code"`
	MinRoomSizes map[blueprint.RoomType]float64 `json:"minRoomSizes"`
	Notes        string                         `json:"notes"`
}

// Min returns the minimum area for t, or 0 when the table has no entry.
func (s Standard) Min(t blueprint.RoomType) float64 {
	return s.MinRoomSizes[t]
}

// Country is an entry of the selectable country list.
type Country struct {
	Code string         `json:"code"`
	Name string         `json:"name"`
	Unit blueprint.Unit `json:"unit"`
}

// Countries lists the countries offered for generation.
var Countries = []Country{
	{Code: "US", Name: "United States", Unit: blueprint.Feet},
	{Code: "CA", Name: "Canada", Unit: blueprint.Feet},
	{Code: "GB", Name: "United Kingdom", Unit: blueprint.Meters},
	{Code: "AU", Name: "Australia", Unit: blueprint.Meters},
	{Code: "DE", Name: "Germany", Unit: blueprint.Meters},
	{Code: "JP", Name: "Japan", Unit: blueprint.Meters},
	{Code: "IN", Name: "India", Unit: blueprint.Meters},
	{Code: "MX", Name: "Mexico", Unit: blueprint.Meters},
}

// FindCountry returns the country list entry for code.
func FindCountry(code string) (Country, bool) {
	code = strings.ToUpper(code)
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// minimums lists areas in the order bedroom, living, kitchen, bathroom,
// office, storage, dining, hallway, storefront, reception, workspace,
// meeting, break.
func minimums(v ...float64) map[blueprint.RoomType]float64 {
	order := []blueprint.RoomType{
		blueprint.Bedroom, blueprint.Living, blueprint.Kitchen, blueprint.Bathroom,
		blueprint.Office, blueprint.Storage, blueprint.Dining, blueprint.Hallway,
		blueprint.Storefront, blueprint.Reception, blueprint.Workspace,
		blueprint.Meeting, blueprint.Break,
	}
	m := make(map[blueprint.RoomType]float64, len(order))
	for i, t := range order {
		m[t] = v[i]
	}
	return m
}

var standards = map[string]Standard{
	"US": {
		Code:         "US",
		MinRoomSizes: minimums(120, 200, 100, 50, 100, 80, 150, 40, 300, 120, 80, 150, 80),
		Notes:        "Based on IRC 2021 minimums",
	},
	"CA": {
		Code:         "CA",
		MinRoomSizes: minimums(110, 180, 90, 45, 90, 70, 140, 35, 280, 110, 75, 140, 75),
		Notes:        "Based on NBC 2020",
	},
	"GB": {
		Code:         "GB",
		MinRoomSizes: minimums(11, 18, 9, 4, 9, 7, 14, 3, 28, 11, 7, 14, 7),
		Notes:        "Based on UK Building Regulations",
	},
	"AU": {
		Code:         "AU",
		MinRoomSizes: minimums(12, 20, 10, 4, 10, 8, 15, 4, 30, 12, 8, 15, 8),
		Notes:        "Based on NCC 2022",
	},
	DefaultCode: {
		Code:         DefaultCode,
		MinRoomSizes: minimums(100, 180, 80, 40, 80, 60, 120, 30, 250, 100, 60, 120, 60),
		Notes:        "International standards",
	},
}

// Lookup returns the standard for a country code, falling back to the
// DEFAULT entry for unlisted codes. The returned value owns its map.
func Lookup(code string) Standard {
	s, ok := standards[strings.ToUpper(code)]
	if !ok {
		s = standards[DefaultCode]
	}
	s.MinRoomSizes = maps.Clone(s.MinRoomSizes)
	return s
}

// HasStandard reports whether code has its own entry rather than the fallback.
func HasStandard(code string) bool {
	_, ok := standards[strings.ToUpper(code)]
	return ok
}
