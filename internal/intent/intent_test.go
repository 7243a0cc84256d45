package intent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/hiplog/internal/domain"
)

var testClock = func() time.Time {
	return time.Date(2023, time.September, 24, 15, 4, 5, 0, time.UTC)
}

func request(displayName string, params map[string]any) WebhookRequest {
	return WebhookRequest{
		QueryResult: QueryResult{
			Intent:     IntentInfo{DisplayName: displayName},
			Parameters: params,
		},
	}
}

func TestParseAcceptsEverySupportedIntent(t *testing.T) {
	cases := map[Type]map[string]any{
		TypeLogActivity:        {"date": "2023-09-24T12:00:00+01:00", "activity": "Pullups"},
		TypeLogPain:            {"date": "2023-09-24T12:00:00+01:00", "body_part": "Left Hip", "pain_level": "2"},
		TypeGetDailyLog:        {"date": "2023-09-24T12:00:00+01:00"},
		TypeGetNumLogs:         {},
		TypeGetActivitySummary: {"activity": "Pullups"},
		TypeListActivities:     {},
		TypeDeleteDailyLog:     {"date": "2023-09-24T12:00:00+01:00"},
		TypeGetCommandList:     {},
	}
	require.Len(t, cases, len(Catalog))

	for intentType, p := range cases {
		in, err := Parse(request(string(intentType), p), WithClock(testClock))
		require.NoError(t, err, "intent %s", intentType)
		require.Equal(t, intentType, in.Type)
		require.Equal(t, TestUser, in.User)
	}
}

func TestParseRejectsUnsupportedIntent(t *testing.T) {
	_, err := Parse(request("OrderPizza", nil))

	var unsupported *UnsupportedIntentError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "OrderPizza", unsupported.Name)
}

func TestExtractDate(t *testing.T) {
	now := testClock()

	require.Equal(t, "2023-07-24", ExtractDate("2023-07-24T12:00:00+01:00", now))
	require.Equal(t, "2023-07-24", ExtractDate("2023-07-24", now))
	require.Equal(t, "2023-09-24", ExtractDate("today", now))
}

func TestParseRequiresDateForDayScopedIntents(t *testing.T) {
	for _, intentType := range []Type{TypeLogActivity, TypeLogPain, TypeGetDailyLog, TypeDeleteDailyLog} {
		_, err := Parse(request(string(intentType), map[string]any{}))
		require.ErrorIs(t, err, ErrMissingDate, "intent %s", intentType)
	}
}

func TestParseResolvesUserFromEnvelope(t *testing.T) {
	req := request("GetNumLogs", nil)

	// No envelope at all: a direct NLU test call.
	in, err := Parse(req)
	require.NoError(t, err)
	require.Equal(t, TestUser, in.User)

	// Console test call.
	req.OriginalDetectIntentRequest = &CallerEnvelope{Source: "DIALOGFLOW_CONSOLE"}
	in, err = Parse(req)
	require.NoError(t, err)
	require.Equal(t, TestUser, in.User)

	// Production messenger call.
	envelope := &CallerEnvelope{Source: "facebook"}
	envelope.Payload.Data.Sender.ID = "fb-sender-42"
	req.OriginalDetectIntentRequest = envelope
	in, err = Parse(req)
	require.NoError(t, err)
	require.Equal(t, "fb-sender-42", in.User)

	// Production call with no resolvable identity must fail, never default.
	req.OriginalDetectIntentRequest = &CallerEnvelope{Source: "facebook"}
	_, err = Parse(req)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestParseLogActivityNormalizesName(t *testing.T) {
	in, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "Pullups",
	}), WithClock(testClock))
	require.NoError(t, err)
	require.Equal(t, "pullups", in.Activity.Name)
	require.Equal(t, "2023-09-24", in.Date)
}

func TestParseLogActivityPairsParallelArrays(t *testing.T) {
	in, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "pullups",
		"reps":     []any{1.0, 2.0, 3.0},
		"weight":   []any{},
		"duration": []any{},
	}), WithClock(testClock))
	require.NoError(t, err)

	require.Len(t, in.Activity.Sets, 3)
	for i, reps := range []int{1, 2, 3} {
		require.Equal(t, reps, in.Activity.Sets[i].Reps)
		require.Nil(t, in.Activity.Sets[i].Weight)
		require.Nil(t, in.Activity.Sets[i].Duration)
	}
}

func TestParseLogActivityReadsMeasurements(t *testing.T) {
	in, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "shoulder press",
		"reps":     []any{10.0, 8.0},
		"weight": []any{
			map[string]any{"amount": 12.0, "unit": "kg"},
			map[string]any{"amount": 10.0, "unit": "kg"},
		},
	}), WithClock(testClock))
	require.NoError(t, err)

	require.Equal(t, "shoulder press 2 sets: 10x 12kg, 8x 10kg", in.Activity.String())
}

func TestParseLogActivityRejectsMismatchedArrays(t *testing.T) {
	_, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "pullups",
		"reps":     []any{1.0},
		"weight": []any{
			map[string]any{"amount": 12.0, "unit": "kg"},
			map[string]any{"amount": 10.0, "unit": "kg"},
		},
	}), WithClock(testClock))

	var mismatched *MismatchedSetsError
	require.ErrorAs(t, err, &mismatched)
	require.Equal(t, []string{"reps", "weight"}, mismatched.Fields)
}

func TestParseLogActivityDefaultsToOneRep(t *testing.T) {
	in, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "yoga",
	}), WithClock(testClock))
	require.NoError(t, err)

	require.Len(t, in.Activity.Sets, 1)
	require.Equal(t, 1, in.Activity.Sets[0].Reps)
}

func TestParseLogActivityRejectsNonIntegerReps(t *testing.T) {
	for _, reps := range []any{2.5, "lots", true} {
		_, err := Parse(request("LogActivity", map[string]any{
			"date":     "2023-09-24T12:00:00+01:00",
			"activity": "pullups",
			"reps":     []any{reps},
		}), WithClock(testClock))
		require.Error(t, err, "reps %v", reps)
	}
}

func TestParseLogActivityAcceptsNumericStringReps(t *testing.T) {
	in, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "pullups",
		"reps":     []any{"10"},
	}), WithClock(testClock))
	require.NoError(t, err)
	require.Equal(t, 10, in.Activity.Sets[0].Reps)
}

func TestParseLogActivityRejectsBadUnit(t *testing.T) {
	_, err := Parse(request("LogActivity", map[string]any{
		"date":     "2023-09-24T12:00:00+01:00",
		"activity": "pullups",
		"weight":   []any{map[string]any{"amount": 12.0, "unit": "stone"}},
	}), WithClock(testClock))
	require.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestParseLogPain(t *testing.T) {
	in, err := Parse(request("LogPain", map[string]any{
		"date":       "2023-09-24T12:00:00+01:00",
		"body_part":  "Left Hip",
		"pain_level": 2.0,
	}), WithClock(testClock))
	require.NoError(t, err)

	require.Equal(t, "left hip", in.Pain.Name)
	require.Equal(t, 2, in.Pain.Level)
}

func TestParseLogPainRejectsLevelOutOfRange(t *testing.T) {
	_, err := Parse(request("LogPain", map[string]any{
		"date":       "2023-09-24T12:00:00+01:00",
		"body_part":  "left hip",
		"pain_level": 5.0,
	}), WithClock(testClock))
	require.ErrorIs(t, err, domain.ErrInvalidPainLevel)
}

func TestParseGetActivitySummarySubject(t *testing.T) {
	in, err := Parse(request("GetActivitySummary", map[string]any{
		"activity": "Pullups",
	}))
	require.NoError(t, err)
	require.Equal(t, "pullups", in.Subject)
	require.Empty(t, in.Date)
	require.Nil(t, in.Activity)
}

func TestParseInformationalIntentsCarryNoLogInput(t *testing.T) {
	for _, intentType := range []Type{TypeGetNumLogs, TypeListActivities, TypeGetCommandList} {
		in, err := Parse(request(string(intentType), map[string]any{}))
		require.NoError(t, err)
		require.Nil(t, in.Activity)
		require.Nil(t, in.Pain)
		require.Empty(t, in.Subject)
	}
}

func TestParseLogActivityRequiresName(t *testing.T) {
	_, err := Parse(request("LogActivity", map[string]any{
		"date": "2023-09-24T12:00:00+01:00",
	}), WithClock(testClock))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrMissingDate))
}
