// Package memory implements an in-memory attendance record store. It backs
// development setups without Redis (REDIS_DISABLED=true); records are lost
// on process exit, so the configuration layer forbids it in production.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// RecordStore keeps attendance records in a map keyed by date.
type RecordStore struct {
	mu      sync.RWMutex
	records map[shared.DayDate]*attendance.Record
	now     func() time.Time
}

// NewRecordStore creates an empty RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[shared.DayDate]*attendance.Record),
		now:     time.Now,
	}
}

// WithClock replaces the clock, for tests.
func (s *RecordStore) WithClock(now func() time.Time) *RecordStore {
	s.now = now
	return s
}

// Get returns the record for the given date, or shared.ErrRecordNotFound.
func (s *RecordStore) Get(ctx context.Context, date shared.DayDate) (*attendance.Record, error) {
	if date.IsZero() {
		return nil, shared.ErrInvalidDate
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[date]
	if !ok {
		return nil, shared.ErrRecordNotFound
	}
	return copyRecord(rec), nil
}

// Create validates and stores the day's record. Existence check and write
// happen under one lock, so the write-once invariant holds even with
// concurrent callers.
func (s *RecordStore) Create(ctx context.Context, date shared.DayDate, entries []attendance.Entry) (*attendance.Record, error) {
	rec, err := attendance.NewRecord(date, entries, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[date]; exists {
		return nil, shared.ErrRecordExists
	}
	s.records[date] = copyRecord(rec)

	return rec, nil
}

// CountRecords returns the number of stored attendance days.
func (s *RecordStore) CountRecords(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// copyRecord clones a record so callers cannot mutate stored state.
func copyRecord(rec *attendance.Record) *attendance.Record {
	detail := make([]attendance.Entry, len(rec.Detail))
	copy(detail, rec.Detail)
	return &attendance.Record{
		Date:      rec.Date,
		Detail:    detail,
		CreatedAt: rec.CreatedAt,
	}
}
