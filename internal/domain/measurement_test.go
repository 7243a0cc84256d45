package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMeasurementRejectsUnknownUnit(t *testing.T) {
	_, err := NewMeasurement(10, "furlong")
	require.ErrorIs(t, err, ErrInvalidUnit)
}

func TestNewMeasurementAcceptsAllowedUnits(t *testing.T) {
	for _, unit := range []string{"kg", "lb", "min", "s", "h"} {
		m, err := NewMeasurement(5, unit)
		require.NoError(t, err)
		require.Equal(t, unit, m.Unit)
	}
}

func TestToKilogramsConvertsPounds(t *testing.T) {
	m, err := NewMeasurement(100, "lb")
	require.NoError(t, err)

	require.NoError(t, m.ToKilograms())
	require.Equal(t, "kg", m.Unit)
	require.InDelta(t, 45.3592, m.Amount, 1e-9)
}

func TestToKilogramsNoOpForKilograms(t *testing.T) {
	m, err := NewMeasurement(12, "kg")
	require.NoError(t, err)

	require.NoError(t, m.ToKilograms())
	require.Equal(t, 12.0, m.Amount)
}

func TestToKilogramsRejectsNonWeightUnits(t *testing.T) {
	m, err := NewMeasurement(30, "min")
	require.NoError(t, err)
	require.Error(t, m.ToKilograms())
}

func TestMeasurementString(t *testing.T) {
	m, err := NewMeasurement(12, "kg")
	require.NoError(t, err)
	require.Equal(t, "12kg", m.String())

	m, err = NewMeasurement(2.5, "min")
	require.NoError(t, err)
	require.Equal(t, "2.5min", m.String())
}
