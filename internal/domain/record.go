// Package domain defines the daily-log aggregate and the records it holds.
package domain

import "strings"

// Field is one named attribute of a record, already rendered for display.
type Field struct {
	Key   string
	Value string
}

// Record is the shape shared by activities and pain entries: a name that acts
// as the lookup key inside the parent DailyLog, plus displayable attributes.
type Record interface {
	RecordName() string
	RecordFields() []Field
}

// Describe renders a record as "name: key value, key value".
func Describe(r Record) string {
	parts := make([]string, 0, len(r.RecordFields()))
	for _, f := range r.RecordFields() {
		if f.Value == "" {
			continue
		}
		parts = append(parts, f.Key+" "+f.Value)
	}
	return r.RecordName() + ": " + strings.Join(parts, ", ")
}
