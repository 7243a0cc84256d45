package logstore

import (
	"context"
	"sort"
	"sync"

	"example.com/hiplog/internal/domain"
)

// Memory stores daily-log documents in memory for local development and
// tests. It holds the converted document shape rather than live aggregates,
// so the serialization round-trip is exercised on every fetch and save.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]domain.Document // user -> date -> document
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]domain.Document)}
}

// Fetch implements Store.
func (m *Memory) Fetch(ctx context.Context, user, date string) (FetchResult, error) {
	if err := ValidateDate(date); err != nil {
		return FetchResult{}, err
	}

	m.mu.RLock()
	doc, ok := m.docs[user][date]
	m.mu.RUnlock()
	if !ok {
		return FetchResult{}, nil
	}

	log, err := domain.FromDocument(date, doc)
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{Log: log, Found: true}, nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, user string, log *domain.DailyLog) error {
	if err := ValidateDate(log.Date()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[user] == nil {
		m.docs[user] = make(map[string]domain.Document)
	}
	m.docs[user][log.Date()] = log.Document()
	return nil
}

// Delete implements Store. Deleting an absent document is a no-op.
func (m *Memory) Delete(ctx context.Context, user, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[user], date)
	return nil
}

// CountByUser implements Store.
func (m *Memory) CountByUser(ctx context.Context, user string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs[user]), nil
}

// CountWithActivity implements Store.
func (m *Memory) CountWithActivity(ctx context.Context, user, activity string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, doc := range m.docs[user] {
		if _, ok := doc.Activities[activity]; ok {
			count++
		}
	}
	return count, nil
}

// ActivityNames implements Store. Names are distinct and sorted.
func (m *Memory) ActivityNames(ctx context.Context, user string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, doc := range m.docs[user] {
		for name := range doc.Activities {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
