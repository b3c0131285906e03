package errors

import (
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// countryCodeRegex matches ISO 3166-1 alpha-2 style codes, or the DEFAULT
// standards table.
var countryCodeRegex = regexp.MustCompile(`^([A-Za-z]{2}|DEFAULT)$`)

// ValidateCountry checks that code looks like a two-letter country code.
// Unknown but well-formed codes are accepted; they use the default
// standards table.
func ValidateCountry(code string) error {
	if code == "" {
		return New(ErrCodeInvalidCountry, "country code cannot be empty")
	}
	if !countryCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidCountry, "invalid country code: %q (want two letters, e.g. US)", code)
	}
	return nil
}

// ValidateBuildingType checks that bt is one of the catalogue types.
func ValidateBuildingType(bt string) error {
	if bt == "" {
		return New(ErrCodeInvalidBuildingType, "building type cannot be empty")
	}
	if !blueprint.BuildingType(bt).Known() {
		names := make([]string, len(blueprint.BuildingTypes))
		for i, t := range blueprint.BuildingTypes {
			names[i] = string(t)
		}
		return New(ErrCodeInvalidBuildingType, "unknown building type: %q (valid: %s)", bt, strings.Join(names, ", "))
	}
	return nil
}

// ValidateFormat checks that format is one of valid.
func ValidateFormat(format string, valid []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(valid, format) {
		return New(ErrCodeInvalidFormat, "unknown format: %q (valid: %s)", format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateScale checks that scale is a finite number in [lo, hi].
func ValidateScale(scale, lo, hi float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < lo || scale > hi {
		return New(ErrCodeInvalidScale, "scale %v out of range [%v, %v]", scale, lo, hi)
	}
	return nil
}

// ValidateRoom checks the identity and geometry of a single room.
func ValidateRoom(r blueprint.Room) error {
	if strings.TrimSpace(r.ID) == "" {
		return New(ErrCodeInvalidRoom, "room id cannot be empty")
	}
	for _, v := range []float64{r.Width, r.Depth} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidRoom, "room %s: width and depth must be positive", r.ID)
		}
	}
	if !finite(r.Position.X) || !finite(r.Position.Y) {
		return New(ErrCodeInvalidRoom, "room %s: invalid position", r.ID)
	}
	for _, o := range slices.Concat(r.Doors, r.Windows) {
		if !o.Wall.Valid() {
			return New(ErrCodeInvalidRoom, "room %s: unknown wall %q", r.ID, o.Wall)
		}
		if o.Position < 0 || o.Position > 1 || o.Width < 0 {
			return New(ErrCodeInvalidRoom, "room %s: opening on %s wall out of range", r.ID, o.Wall)
		}
	}
	return nil
}

// ValidateSpec checks a spec read from a file or request body before it
// is laid out or drawn. A spec without rooms is valid.
func ValidateSpec(s *blueprint.Spec) error {
	if s == nil {
		return New(ErrCodeInvalidSpec, "spec cannot be empty")
	}
	if err := ValidateCountry(s.Country); err != nil {
		return Wrap(ErrCodeInvalidSpec, err, "invalid spec")
	}
	if s.Unit != blueprint.Feet && s.Unit != blueprint.Meters {
		return New(ErrCodeInvalidSpec, "unknown unit: %q", s.Unit)
	}
	if err := s.CheckUnit(); err != nil {
		return Wrap(ErrCodeInvalidSpec, err, "inconsistent unit")
	}
	seen := make(map[string]bool, len(s.Rooms))
	for _, r := range s.Rooms {
		if err := ValidateRoom(r); err != nil {
			return Wrap(ErrCodeInvalidSpec, err, "invalid room")
		}
		if seen[r.ID] {
			return New(ErrCodeInvalidSpec, "duplicate room id: %s", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
