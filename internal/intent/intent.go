package intent

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"example.com/hiplog/internal/domain"
)

// TestUser is assigned when the request carries no caller envelope, i.e. the
// payload came from the NLU console or a local test rather than a real
// messaging channel.
const TestUser = "MarkTheTester"

// consoleSource marks test invocations triggered from the NLU console.
const consoleSource = "DIALOGFLOW_CONSOLE"

var (
	// ErrMissingDate is returned when a date-scoped intent carries no date.
	ErrMissingDate = errors.New("intent parameters are missing a date")
	// ErrUserNotFound is returned when the caller envelope is present but
	// carries no resolvable sender identity. Never defaulted: a production
	// call without identity must fail loudly.
	ErrUserNotFound = errors.New("user info not found in caller envelope")
)

// UnsupportedIntentError reports a displayName outside the catalog.
type UnsupportedIntentError struct {
	Name string
}

func (e *UnsupportedIntentError) Error() string {
	return fmt.Sprintf("unsupported intent %q", e.Name)
}

// MismatchedSetsError reports parallel set arrays of unequal length.
type MismatchedSetsError struct {
	Fields []string
}

func (e *MismatchedSetsError) Error() string {
	return "mismatched number of " + strings.Join(e.Fields, "/")
}

// WebhookRequest is the inbound payload shape from the NLU front end.
type WebhookRequest struct {
	QueryResult                 QueryResult     `json:"queryResult"`
	OriginalDetectIntentRequest *CallerEnvelope `json:"originalDetectIntentRequest,omitempty"`
}

// QueryResult carries the classified intent and its extracted parameters.
type QueryResult struct {
	Intent     IntentInfo     `json:"intent"`
	Parameters map[string]any `json:"parameters"`
}

// IntentInfo names the matched intent.
type IntentInfo struct {
	DisplayName string `json:"displayName"`
}

// CallerEnvelope identifies the channel that triggered the NLU request.
type CallerEnvelope struct {
	Source  string        `json:"source"`
	Payload CallerPayload `json:"payload"`
}

// CallerPayload is the channel-specific payload; only the sender id is read.
type CallerPayload struct {
	Data struct {
		Sender struct {
			ID string `json:"id"`
		} `json:"sender"`
	} `json:"data"`
}

// Intent is a validated instruction: the intent type plus the normalized
// inputs the domain constructors expect.
type Intent struct {
	Type    Type
	User    string
	Date    string
	Subject string

	Activity *domain.Activity
	Pain     *domain.Pain
}

// Option configures parsing.
type Option func(*parser)

// WithClock overrides the clock used to resolve the "today" date sentinel.
func WithClock(now func() time.Time) Option {
	return func(p *parser) {
		p.now = now
	}
}

type parser struct {
	now func() time.Time
}

// Parse validates the request envelope and normalizes it into an Intent.
// It performs no I/O.
func Parse(req WebhookRequest, opts ...Option) (*Intent, error) {
	p := &parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	name := req.QueryResult.Intent.DisplayName
	if !Supported(name) {
		return nil, &UnsupportedIntentError{Name: name}
	}

	user, err := resolveUser(req.OriginalDetectIntentRequest)
	if err != nil {
		return nil, err
	}

	in := &Intent{Type: Type(name), User: user}
	params := req.QueryResult.Parameters

	if DateScoped(in.Type) {
		raw := stringParam(params, "date")
		if raw == "" {
			return nil, ErrMissingDate
		}
		in.Date = ExtractDate(raw, p.now())
	}

	switch in.Type {
	case TypeLogActivity:
		activityName, err := nameParam(params, "activity")
		if err != nil {
			return nil, err
		}
		sets, err := parseSets(params)
		if err != nil {
			return nil, err
		}
		in.Activity = domain.NewActivity(activityName, sets)

	case TypeLogPain:
		painName, err := nameParam(params, "body_part")
		if err != nil {
			return nil, err
		}
		level, err := intFromValue(params["pain_level"])
		if err != nil {
			return nil, fmt.Errorf("pain_level: %w", err)
		}
		pain, err := domain.NewPain(painName, level)
		if err != nil {
			return nil, err
		}
		in.Pain = pain

	case TypeGetActivitySummary:
		subject, err := nameParam(params, "activity")
		if err != nil {
			return nil, err
		}
		in.Subject = subject
	}

	return in, nil
}

// ExtractDate resolves an NLU date parameter to a YYYY-MM-DD string. The
// literal sentinel "today" becomes the current calendar date; anything else
// is truncated to the leading component of its ISO-8601 timestamp. The
// timezone offset is discarded, not converted: the date is literal to
// whatever the upstream caller supplied.
func ExtractDate(raw string, now time.Time) string {
	if raw == "today" {
		return now.Format(domain.DateLayout)
	}
	date, _, _ := strings.Cut(raw, "T")
	return date
}

func resolveUser(envelope *CallerEnvelope) (string, error) {
	if envelope == nil || envelope.Source == consoleSource {
		return TestUser, nil
	}
	id := envelope.Payload.Data.Sender.ID
	if id == "" {
		return "", ErrUserNotFound
	}
	return id, nil
}

// parseSets pairs the parallel reps/weight/duration arrays into per-set
// records. All supplied arrays must have equal length; arrays that are empty
// or absent contribute nothing. With no set information at all the activity
// defaults to a single 1-rep set.
func parseSets(params map[string]any) ([]domain.Set, error) {
	reps := listParam(params, "reps")
	weight := listParam(params, "weight")
	duration := listParam(params, "duration")

	supplied := make([]string, 0, 3)
	length := -1
	mismatched := false
	for _, arr := range []struct {
		name   string
		values []any
	}{{"reps", reps}, {"weight", weight}, {"duration", duration}} {
		if len(arr.values) == 0 {
			continue
		}
		supplied = append(supplied, arr.name)
		if length >= 0 && len(arr.values) != length {
			mismatched = true
		}
		if length < 0 {
			length = len(arr.values)
		}
	}
	if mismatched {
		return nil, &MismatchedSetsError{Fields: supplied}
	}
	if length < 0 {
		return []domain.Set{{Reps: 1}}, nil
	}

	sets := make([]domain.Set, 0, length)
	for i := 0; i < length; i++ {
		var s domain.Set
		if len(reps) > 0 {
			r, err := intFromValue(reps[i])
			if err != nil {
				return nil, fmt.Errorf("reps: %w", err)
			}
			s.Reps = r
		}
		if len(weight) > 0 {
			m, err := measurementFromValue(weight[i])
			if err != nil {
				return nil, fmt.Errorf("weight: %w", err)
			}
			s.Weight = m
		}
		if len(duration) > 0 {
			m, err := measurementFromValue(duration[i])
			if err != nil {
				return nil, fmt.Errorf("duration: %w", err)
			}
			s.Duration = m
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// nameParam extracts a required free-text name and lower-cases it. Names are
// normalized here, once, so map lookups downstream stay consistent.
func nameParam(params map[string]any, key string) (string, error) {
	raw := strings.TrimSpace(stringParam(params, key))
	if raw == "" {
		return "", fmt.Errorf("intent parameters are missing %q", key)
	}
	return strings.ToLower(raw), nil
}

func stringParam(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

func listParam(params map[string]any, key string) []any {
	if l, ok := params[key].([]any); ok {
		return l
	}
	return nil
}

// intFromValue casts an NLU numeric value to an integer. JSON numbers arrive
// as float64 and must be integral; numeric strings are accepted.
func intFromValue(v any) (int, error) {
	switch value := v.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("%v is not an integer", value)
		}
		return int(value), nil
	case int:
		return value, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%v is not an integer", v)
	}
}

// measurementFromValue reads an NLU unit-amount composite ({"amount", "unit"}).
func measurementFromValue(v any) (*domain.Measurement, error) {
	composite, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%v is not an amount/unit pair", v)
	}
	amount, ok := composite["amount"].(float64)
	if !ok {
		return nil, fmt.Errorf("%v is missing a numeric amount", v)
	}
	unit, _ := composite["unit"].(string)
	m, err := domain.NewMeasurement(amount, unit)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
