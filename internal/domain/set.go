package domain

import (
	"strconv"
	"strings"
)

// Set is one unit of work within an activity. Any field may be empty; an
// activity with no set information at all defaults to a single 1-rep set.
type Set struct {
	Reps     int          `json:"reps,omitempty"`
	Duration *Measurement `json:"duration,omitempty"`
	Weight   *Measurement `json:"weight,omitempty"`
}

// Equal compares populated fields only.
func (s Set) Equal(other Set) bool {
	if s.Reps != other.Reps {
		return false
	}
	if (s.Duration == nil) != (other.Duration == nil) {
		return false
	}
	if s.Duration != nil && *s.Duration != *other.Duration {
		return false
	}
	if (s.Weight == nil) != (other.Weight == nil) {
		return false
	}
	if s.Weight != nil && *s.Weight != *other.Weight {
		return false
	}
	return true
}

// String renders populated fields, e.g. "10x 10min 5kg".
func (s Set) String() string {
	parts := make([]string, 0, 3)
	if s.Reps != 0 {
		parts = append(parts, strconv.Itoa(s.Reps)+"x")
	}
	if s.Duration != nil {
		parts = append(parts, s.Duration.String())
	}
	if s.Weight != nil {
		parts = append(parts, s.Weight.String())
	}
	return strings.Join(parts, " ")
}
