package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD STORE
// attendance.Repository implementation. One Redis key per calendar day,
// value is the record's JSON document. Records are never expired, updated,
// or deleted: attendance-taking is a one-shot daily action.
// ══════════════════════════════════════════════════════════════════════════════

// RecordStore persists attendance records in Redis.
type RecordStore struct {
	client *Client
	now    func() time.Time
}

// NewRecordStore creates a RecordStore.
func NewRecordStore(client *Client) *RecordStore {
	return &RecordStore{
		client: client,
		now:    time.Now,
	}
}

// storedRecord is the wire layout of a persisted record. The date is kept
// as a string so the document stays readable with any Redis tooling.
type storedRecord struct {
	Date      string             `json:"date"`
	Detail    []attendance.Entry `json:"detail"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Get returns the record for the given date.
// A missing key maps to shared.ErrRecordNotFound; a key whose value cannot
// be decoded maps to shared.ErrRecordCorrupt for that date alone.
func (s *RecordStore) Get(ctx context.Context, date shared.DayDate) (*attendance.Record, error) {
	if date.IsZero() {
		return nil, shared.ErrInvalidDate
	}

	data, err := s.client.rdb.Get(ctx, RecordKey(date.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrRecordNotFound
		}
		return nil, shared.WrapError("attendance", "Get", shared.ErrSourceUnavailable,
			"redis read failed", err)
	}

	var stored storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, shared.WrapError("attendance", "Get", shared.ErrCorruptData,
			"stored record cannot be parsed", err)
	}

	parsed, err := shared.ParseDayDate(stored.Date)
	if err != nil || parsed != date {
		return nil, shared.WrapError("attendance", "Get", shared.ErrCorruptData,
			"stored record date does not match its key", err)
	}

	return &attendance.Record{
		Date:      parsed,
		Detail:    stored.Detail,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// Create validates and persists the day's record, returning it.
// The write uses SETNX, so existence check and write are a single atomic
// operation: if a record for the date already exists (even one written by a
// concurrent process), the call fails with shared.ErrRecordExists and
// nothing is overwritten. Validation failures persist nothing.
func (s *RecordStore) Create(ctx context.Context, date shared.DayDate, entries []attendance.Entry) (*attendance.Record, error) {
	rec, err := attendance.NewRecord(date, entries, s.now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(storedRecord{
		Date:      rec.Date.String(),
		Detail:    rec.Detail,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		return nil, shared.WrapError("attendance", "Create", shared.ErrInvalidEntity,
			"record cannot be serialized", err)
	}

	// TTL 0: records persist indefinitely.
	ok, err := s.client.rdb.SetNX(ctx, RecordKey(rec.Date.String()), data, 0).Result()
	if err != nil {
		return nil, shared.WrapError("attendance", "Create", shared.ErrSourceUnavailable,
			"redis write failed", err)
	}
	if !ok {
		return nil, shared.ErrRecordExists
	}

	return rec, nil
}

// CountRecords returns the number of stored attendance days.
func (s *RecordStore) CountRecords(ctx context.Context) (int, error) {
	var count int
	iter := s.client.rdb.Scan(ctx, 0, RecordKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, shared.WrapError("attendance", "CountRecords", shared.ErrSourceUnavailable,
			"redis scan failed", err)
	}
	return count, nil
}
