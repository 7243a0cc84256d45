// Package logstore defines the per-user daily-log document store.
package logstore

import (
	"context"
	"errors"

	"example.com/hiplog/internal/domain"
)

// ErrInvalidDate is returned for document keys that are not YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid date provided, must be a YYYY-MM-DD string")

// FetchResult distinguishes a found document from an absent one, so the
// empty-log-initialization path is an explicit branch instead of a nil check.
type FetchResult struct {
	Log   *domain.DailyLog
	Found bool
}

// Store is the document interface the executor consumes. Documents are keyed
// by user and date; the wire shape is exactly domain.Document. The store is
// the system of record and is trusted to serialize concurrent writes to the
// same key; read-modify-write callers get no optimistic concurrency control.
type Store interface {
	Fetch(ctx context.Context, user, date string) (FetchResult, error)
	Save(ctx context.Context, user string, log *domain.DailyLog) error
	Delete(ctx context.Context, user, date string) error
	CountByUser(ctx context.Context, user string) (int, error)
	CountWithActivity(ctx context.Context, user, activity string) (int, error)
	ActivityNames(ctx context.Context, user string) ([]string, error)
}

// ValidateDate guards document keys before they reach the backend.
func ValidateDate(date string) error {
	if !domain.IsValidDate(date) {
		return ErrInvalidDate
	}
	return nil
}
