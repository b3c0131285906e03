package blueprint

import (
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// Unit is the logical length unit of a spec.
type Unit string

const (
	Feet   Unit = "feet"
	Meters Unit = "meters"
)

// FeetToMeters converts one linear foot to meters.
const FeetToMeters = 0.3048

// UnitForCountry returns feet for US and CA and meters for every other code.
func UnitForCountry(country string) Unit {
	switch strings.ToUpper(country) {
	case "US", "CA":
		return Feet
	}
	return Meters
}

// Abbrev returns the short length suffix used in labels.
func (u Unit) Abbrev() string {
	if u == Meters {
		return "m"
	}
	return "'"
}

// AreaAbbrev returns the short area suffix used in labels.
func (u Unit) AreaAbbrev() string {
	if u == Meters {
		return "m²"
	}
	return "SF"
}

// SquareName returns the unit name used in validation messages ("sq feet").
func (u Unit) SquareName() string {
	return "sq " + string(u)
}

// Round rounds x to one decimal place, half away from zero.
func Round(x float64) float64 {
	return scalar.Round(x, 1)
}
