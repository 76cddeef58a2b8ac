package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitsFromCode(t *testing.T) {
	assert.Equal(t, UnitsMillimeters, UnitsFromCode(4))
	assert.Equal(t, UnitsYards, UnitsFromCode(10))
	assert.Equal(t, UnitsUnknown, UnitsFromCode(8))
	assert.Equal(t, UnitsUnknown, UnitsFromCode(99))
	assert.False(t, UnitsFromCode(99).IsKnown())
	assert.Equal(t, "unknown(-1)", UnitsUnknown.String())
}

func TestFeetToNativeUnits(t *testing.T) {
	assert.InDelta(t, 12.0, FeetToNativeUnits(1, UnitsInches), 1e-9)
	assert.InDelta(t, 304.8, FeetToNativeUnits(1, UnitsMillimeters), 1e-9)
	assert.InDelta(t, 30.48, FeetToNativeUnits(1, UnitsCentimeters), 1e-9)
	assert.InDelta(t, 0.3048, FeetToNativeUnits(1, UnitsMeters), 1e-12)
	assert.InDelta(t, 1.0, FeetToNativeUnits(3, UnitsYards), 1e-9)
	assert.InDelta(t, 1.0, FeetToNativeUnits(5280, UnitsMiles), 1e-9)
	// unknown codes are treated as meters
	assert.InDelta(t, 0.3048, FeetToNativeUnits(1, UnitsUnknown), 1e-12)
}

func TestUnitConversionRoundTrip(t *testing.T) {
	values := []float64{0, 1, 6, 12.5, 1234.5678}
	for _, u := range append(DefinedUnits, UnitsUnknown) {
		for _, x := range values {
			got := FeetToNativeUnits(NativeUnitsToFeet(x, u), u)
			assert.InDelta(t, x, got, 1e-6, "units %s value %v", u, x)
		}
	}
}
