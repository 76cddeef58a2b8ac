package model

import "fmt"

// Units is the drawing's native length unit, as stored in the DXF header
// variable $INSUNITS.
type Units int

const (
	UnitsUnitless    Units = 0
	UnitsInches      Units = 1
	UnitsFeet        Units = 2
	UnitsMiles       Units = 3
	UnitsMillimeters Units = 4
	UnitsCentimeters Units = 5
	UnitsMeters      Units = 6
	UnitsKilometers  Units = 7
	UnitsYards       Units = 10
	UnitsUnknown     Units = -1
)

// DefinedUnits lists every unit code the layout engine understands.
var DefinedUnits = []Units{
	UnitsUnitless, UnitsInches, UnitsFeet, UnitsMiles, UnitsMillimeters,
	UnitsCentimeters, UnitsMeters, UnitsKilometers, UnitsYards,
}

// metersPerUnit holds the length of one native unit in meters.
// Unitless drawings are treated as meters.
var metersPerUnit = map[Units]float64{
	UnitsUnitless:    1,
	UnitsInches:      0.0254,
	UnitsFeet:        0.3048,
	UnitsMiles:       1609.344,
	UnitsMillimeters: 0.001,
	UnitsCentimeters: 0.01,
	UnitsMeters:      1,
	UnitsKilometers:  1000,
	UnitsYards:       0.9144,
}

const metersPerFoot = 0.3048

// UnitsFromCode maps a raw header code to Units. Codes outside the
// supported set map to UnitsUnknown.
func UnitsFromCode(code int) Units {
	u := Units(code)
	if _, ok := metersPerUnit[u]; ok {
		return u
	}
	return UnitsUnknown
}

// IsKnown reports whether u is one of DefinedUnits.
func (u Units) IsKnown() bool {
	_, ok := metersPerUnit[u]
	return ok
}

func (u Units) String() string {
	switch u {
	case UnitsUnitless:
		return "unitless"
	case UnitsInches:
		return "inches"
	case UnitsFeet:
		return "feet"
	case UnitsMiles:
		return "miles"
	case UnitsMillimeters:
		return "millimeters"
	case UnitsCentimeters:
		return "centimeters"
	case UnitsMeters:
		return "meters"
	case UnitsKilometers:
		return "kilometers"
	case UnitsYards:
		return "yards"
	default:
		return fmt.Sprintf("unknown(%d)", int(u))
	}
}

// MetersPerUnit returns the size of one native unit in meters. Unknown
// codes fall back to meters.
func (u Units) MetersPerUnit() float64 {
	if m, ok := metersPerUnit[u]; ok {
		return m
	}
	return 1
}

// FeetToNativeUnits converts a distance in feet to the drawing's units.
func FeetToNativeUnits(feet float64, u Units) float64 {
	switch u {
	case UnitsFeet:
		return feet
	case UnitsInches:
		return feet * 12
	}
	return feet * metersPerFoot / u.MetersPerUnit()
}

// NativeUnitsToFeet converts a distance in the drawing's units to feet.
func NativeUnitsToFeet(v float64, u Units) float64 {
	switch u {
	case UnitsFeet:
		return v
	case UnitsInches:
		return v / 12
	}
	return v * u.MetersPerUnit() / metersPerFoot
}
