// Package executor dispatches parsed intents to the log store and renders
// the user-facing response string. One Executor handles one request at a
// time end-to-end; it holds no per-request state.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"example.com/hiplog/internal/domain"
	"example.com/hiplog/internal/events"
	"example.com/hiplog/internal/intent"
	"example.com/hiplog/internal/logstore"
	"example.com/hiplog/internal/observability"
)

// Response strings with a fixed wire shape.
const (
	// GenericFailureMessage is returned for any error without a tailored
	// message. Internal error text is never exposed to the end user.
	GenericFailureMessage = "Something went wrong. Reach out to the developer"

	mismatchedSetsMessage = "It looks like you provided unmatched entries for reps/weights/durations (eg specified 2 sets of reps but only 1 weight). Check your log and try again"

	emptyActivityListMessage = "You haven't logged any activities yet"
)

// Executor orchestrates one webhook request against the store and publisher.
type Executor struct {
	store     logstore.Store
	publisher events.Publisher
	logger    *log.Logger
	now       func() time.Time
}

// Option configures optional behaviour for the Executor.
type Option func(*Executor)

// WithLogger overrides the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithClock overrides the clock, used for the "today" date sentinel and
// event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// New constructs an Executor.
func New(store logstore.Store, publisher events.Publisher, opts ...Option) *Executor {
	e := &Executor{
		store:     store,
		publisher: publisher,
		logger:    log.New(log.Writer(), "[executor] ", log.LstdFlags),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes one raw webhook payload to completion and always returns a
// user-facing string; errors never propagate to the transport layer, which
// must send a response body regardless of outcome.
func (e *Executor) Run(ctx context.Context, payload []byte) string {
	var req intent.WebhookRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		observability.RecordFailure(observability.FailureDecode)
		e.logger.Printf("failed decoding request payload: %v\npayload:\n%s", err, payload)
		return GenericFailureMessage
	}

	in, err := intent.Parse(req, intent.WithClock(e.now))
	if err != nil {
		return e.failureMessage(err, payload)
	}
	observability.RecordIntent(string(in.Type))
	e.logger.Printf("parsed %s intent for user %q", in.Type, in.User)

	res, err := e.decisionFlow(ctx, in)
	if err != nil {
		return e.failureMessage(err, payload)
	}
	return res
}

// failureMessage converts an error to the user-facing response. Two
// validation failures get tailored messages; everything else is logged with
// the original payload for offline diagnosis and degraded to the generic
// message.
func (e *Executor) failureMessage(err error, payload []byte) string {
	var unsupported *intent.UnsupportedIntentError
	if errors.As(err, &unsupported) {
		observability.RecordFailure(observability.FailureValidation)
		e.logger.Printf("rejected request: %v", err)
		return fmt.Sprintf("We don't support this yet (intent = %s)", unsupported.Name)
	}

	var mismatched *intent.MismatchedSetsError
	if errors.As(err, &mismatched) {
		observability.RecordFailure(observability.FailureValidation)
		e.logger.Printf("rejected request: %v", err)
		return mismatchedSetsMessage
	}

	observability.RecordFailure(observability.FailureUnknown)
	e.logger.Printf("request failed: %v\npayload:\n%s", err, payload)
	return GenericFailureMessage
}

func (e *Executor) decisionFlow(ctx context.Context, in *intent.Intent) (string, error) {
	switch in.Type {
	case intent.TypeGetNumLogs:
		count, err := e.store.CountByUser(ctx, in.User)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("There are %d logs", count), nil

	case intent.TypeGetDailyLog:
		log, err := e.fetchOrInit(ctx, in.User, in.Date)
		if err != nil {
			return "", err
		}
		return log.String(), nil

	case intent.TypeLogActivity:
		return e.logActivity(ctx, in)

	case intent.TypeLogPain:
		return e.logPain(ctx, in)

	case intent.TypeDeleteDailyLog:
		if err := e.store.Delete(ctx, in.User, in.Date); err != nil {
			return "", err
		}
		e.publishDeleted(ctx, in)
		return fmt.Sprintf("Your entry '%s' was deleted", in.Date), nil

	case intent.TypeGetActivitySummary:
		count, err := e.store.CountWithActivity(ctx, in.User, in.Subject)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("**Summary Stats for '%s'**\n\ntotal_count: %d", in.Subject, count), nil

	case intent.TypeListActivities:
		names, err := e.store.ActivityNames(ctx, in.User)
		if err != nil {
			return "", err
		}
		if len(names) == 0 {
			return emptyActivityListMessage, nil
		}
		return strings.Join(names, ",\n"), nil

	case intent.TypeGetCommandList:
		return intent.SummarizeCatalog(), nil

	default:
		return "", fmt.Errorf("no handler for intent type %s", in.Type)
	}
}

func (e *Executor) logActivity(ctx context.Context, in *intent.Intent) (string, error) {
	log, err := e.fetchOrInit(ctx, in.User, in.Date)
	if err != nil {
		return "", err
	}

	if created := log.AddActivity(in.Activity, false); created {
		e.logger.Printf("added activity %q to %s", in.Activity.Name, in.Date)
	} else {
		e.logger.Printf("activity %q already exists on %s, appending sets", in.Activity.Name, in.Date)
	}

	if err := e.persist(ctx, in, log); err != nil {
		return "", err
	}
	return log.String(), nil
}

func (e *Executor) logPain(ctx context.Context, in *intent.Intent) (string, error) {
	log, err := e.fetchOrInit(ctx, in.User, in.Date)
	if err != nil {
		return "", err
	}

	if created := log.AddPain(in.Pain); !created {
		e.logger.Printf("pain record %q already exists on %s, overwriting", in.Pain.Name, in.Date)
	}

	if err := e.persist(ctx, in, log); err != nil {
		return "", err
	}
	return log.String(), nil
}

// fetchOrInit returns the stored log for the date or a fresh empty one.
func (e *Executor) fetchOrInit(ctx context.Context, user, date string) (*domain.DailyLog, error) {
	res, err := e.store.Fetch(ctx, user, date)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return domain.NewDailyLog(date), nil
	}
	return res.Log, nil
}

// persist writes the mutated log back unconditionally (no dirty-checking)
// and emits the update event.
func (e *Executor) persist(ctx context.Context, in *intent.Intent, log *domain.DailyLog) error {
	if err := e.store.Save(ctx, in.User, log); err != nil {
		return err
	}
	observability.RecordLogWritten(e.now())

	event := events.LogUpdated{
		User:       in.User,
		Date:       log.Date(),
		Intent:     string(in.Type),
		Activities: len(log.Activities()),
		Pains:      len(log.Pains()),
		OccurredAt: e.now().UTC(),
	}
	if err := e.publisher.PublishLogUpdated(ctx, event); err != nil {
		e.logger.Printf("failed publishing %s event for %s/%s: %v", events.EventTypeLogUpdated, in.User, log.Date(), err)
	}
	return nil
}

func (e *Executor) publishDeleted(ctx context.Context, in *intent.Intent) {
	event := events.LogDeleted{
		User:       in.User,
		Date:       in.Date,
		OccurredAt: e.now().UTC(),
	}
	if err := e.publisher.PublishLogDeleted(ctx, event); err != nil {
		e.logger.Printf("failed publishing %s event for %s/%s: %v", events.EventTypeLogDeleted, in.User, in.Date, err)
	}
}
