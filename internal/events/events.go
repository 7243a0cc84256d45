// Package events publishes daily-log lifecycle events to Kafka so downstream
// consumers (dashboards, summaries) can react to log changes.
package events

import (
	"context"
	"time"
)

// LogUpdated is emitted after a daily log is written back to the store.
type LogUpdated struct {
	User       string    `json:"user"`
	Date       string    `json:"date"`
	Intent     string    `json:"intent"`
	Activities int       `json:"activities"`
	Pains      int       `json:"pains"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LogDeleted is emitted after a daily log is removed.
type LogDeleted struct {
	User       string    `json:"user"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits log lifecycle events. Publishing is best-effort: callers
// log failures and carry on, the user response never depends on it.
type Publisher interface {
	PublishLogUpdated(ctx context.Context, event LogUpdated) error
	PublishLogDeleted(ctx context.Context, event LogDeleted) error
}

// Nop discards all events. Used in tests and broker-less local runs.
type Nop struct{}

// PublishLogUpdated implements Publisher.
func (Nop) PublishLogUpdated(ctx context.Context, event LogUpdated) error { return nil }

// PublishLogDeleted implements Publisher.
func (Nop) PublishLogDeleted(ctx context.Context, event LogDeleted) error { return nil }
