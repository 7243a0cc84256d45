package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidPainLevel is returned for levels outside the allowed range.
var ErrInvalidPainLevel = errors.New("invalid pain level, allowed levels are 0-3")

const (
	// MinPainLevel is "no pain".
	MinPainLevel = 0
	// MaxPainLevel is the top of the reporting scale.
	MaxPainLevel = 3
)

// Pain is a named record of discomfort in one body part on a bounded scale.
type Pain struct {
	Name  string
	Level int
}

// NewPain validates the level against the closed range.
func NewPain(name string, level int) (*Pain, error) {
	if level < MinPainLevel || level > MaxPainLevel {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidPainLevel)
	}
	return &Pain{Name: name, Level: level}, nil
}

// String renders e.g. "left hip: 3".
func (p *Pain) String() string {
	return fmt.Sprintf("%s: %d", p.Name, p.Level)
}

// RecordName implements Record.
func (p *Pain) RecordName() string { return p.Name }

// RecordFields implements Record.
func (p *Pain) RecordFields() []Field {
	return []Field{{Key: "level", Value: strconv.Itoa(p.Level)}}
}
