package domain

import (
	"fmt"
	"strings"
)

// Activity is a named record holding an ordered sequence of sets.
type Activity struct {
	Name string
	Sets []Set
}

// NewActivity constructs an activity. With no set information the activity
// defaults to a single 1-rep set, so "I did yoga" still counts as one set.
func NewActivity(name string, sets []Set) *Activity {
	if len(sets) == 0 {
		sets = []Set{{Reps: 1}}
	}
	return &Activity{Name: name, Sets: sets}
}

// AddSet appends one set to the activity.
func (a *Activity) AddSet(s Set) {
	a.Sets = append(a.Sets, s)
}

// Equal reports whether both activities carry the same name and set sequence.
func (a *Activity) Equal(other *Activity) bool {
	if a.Name != other.Name || len(a.Sets) != len(other.Sets) {
		return false
	}
	for i := range a.Sets {
		if !a.Sets[i].Equal(other.Sets[i]) {
			return false
		}
	}
	return true
}

// String renders e.g. "shoulder press 2 sets: 10x 12kg, 8x 10kg".
func (a *Activity) String() string {
	rendered := make([]string, len(a.Sets))
	for i, s := range a.Sets {
		rendered[i] = s.String()
	}
	return fmt.Sprintf("%s %d sets: %s", a.Name, len(a.Sets), strings.Join(rendered, ", "))
}

// RecordName implements Record.
func (a *Activity) RecordName() string { return a.Name }

// RecordFields implements Record.
func (a *Activity) RecordFields() []Field {
	rendered := make([]string, len(a.Sets))
	for i, s := range a.Sets {
		rendered[i] = s.String()
	}
	return []Field{{Key: "sets", Value: "[" + strings.Join(rendered, ", ") + "]"}}
}
