// Package intent translates webhook payloads from the NLU front end into
// typed, validated instructions for the executor.
package intent

import "strings"

// Type identifies one supported intent.
type Type string

const (
	TypeLogActivity        Type = "LogActivity"
	TypeLogPain            Type = "LogPain"
	TypeGetDailyLog        Type = "GetDailyLog"
	TypeGetNumLogs         Type = "GetNumLogs"
	TypeGetActivitySummary Type = "GetActivitySummary"
	TypeListActivities     Type = "ListActivities"
	TypeDeleteDailyLog     Type = "DeleteDailyLog"
	TypeGetCommandList     Type = "GetCommandList"
)

// Definition describes one catalog entry: the intent name as configured in
// the NLU console, a user-facing description, and example utterances.
type Definition struct {
	Type        Type
	Description string
	Examples    string
}

// Catalog is the fixed table of supported intents. The command-list response
// is a fold over this table.
var Catalog = []Definition{
	{TypeLogActivity, "Log an activity", "I did yoga today, I did 10 pullups, I held plank for 30 seconds"},
	{TypeLogPain, "Log a pain (on a scale of 0 to 3)", "Left hip 1, Right knee high, Left leg none today"},
	{TypeGetDailyLog, "Get a daily log", "What did I do yesterday? Show me today"},
	{TypeGetNumLogs, "See how many days you've logged", "How many days have I logged"},
	{TypeGetActivitySummary, "Get an activity's summary", "Show me my pushup stats, What's my cycling history?"},
	{TypeListActivities, "List every activity you've ever logged", "What activities have I done? List my exercises"},
	{TypeDeleteDailyLog, "Delete a daily log", "Reset today's log, Delete last Saturday's log"},
	{TypeGetCommandList, "Get a list of supported commands", "What can you do? What can I say? What features are there?"},
}

// Supported reports whether name is a member of the catalog.
func Supported(name string) bool {
	for _, def := range Catalog {
		if string(def.Type) == name {
			return true
		}
	}
	return false
}

// SummarizeCatalog renders the command-list response.
func SummarizeCatalog() string {
	lines := []string{"The following are supported commands:", ""}
	for _, def := range Catalog {
		lines = append(lines, "- *"+def.Description+"*: "+def.Examples)
	}
	return strings.Join(lines, "\n")
}

// dateScoped lists the intents that operate on one specific day and
// therefore require a date parameter.
var dateScoped = map[Type]struct{}{
	TypeLogActivity:    {},
	TypeLogPain:        {},
	TypeGetDailyLog:    {},
	TypeDeleteDailyLog: {},
}

// DateScoped reports whether the intent type requires a date.
func DateScoped(t Type) bool {
	_, ok := dateScoped[t]
	return ok
}
