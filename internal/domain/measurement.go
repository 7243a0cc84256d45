package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidUnit is returned when a measurement carries a unit outside the allow-list.
var ErrInvalidUnit = errors.New("unit is not an allowed unit")

// allowedUnits is the closed set of units accepted from the NLU front end.
var allowedUnits = map[string]struct{}{
	"mg": {}, "oz": {}, "g": {}, "CD": {}, "kg": {}, "lb": {}, "t": {},
	"s": {}, "second": {}, "min": {}, "h": {}, "day": {}, "wk": {},
	"mo": {}, "yr": {}, "decade": {}, "century": {},
}

const poundsPerKilogram = 0.453592

// Measurement is a validated amount/unit pair used for set weights and durations.
type Measurement struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// NewMeasurement validates the unit against the allow-list.
func NewMeasurement(amount float64, unit string) (Measurement, error) {
	if _, ok := allowedUnits[unit]; !ok {
		return Measurement{}, fmt.Errorf("unit %q: %w", unit, ErrInvalidUnit)
	}
	return Measurement{Amount: amount, Unit: unit}, nil
}

// ToKilograms converts the measurement in place. Only lb and kg are convertible.
func (m *Measurement) ToKilograms() error {
	switch m.Unit {
	case "kg":
		return nil
	case "lb":
		m.Amount *= poundsPerKilogram
		m.Unit = "kg"
		return nil
	default:
		return fmt.Errorf("cannot convert %s to kilograms", m.Unit)
	}
}

func (m Measurement) String() string {
	return strconv.FormatFloat(m.Amount, 'f', -1, 64) + m.Unit
}
