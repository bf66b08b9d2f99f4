// Package query contains read operations (CQRS - Queries).
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/messaging"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DAILY RECORD QUERY
// Fetches one day's record and derives the summary the read-only daily
// report shows: presents, absents, absences carrying an observation.
// ══════════════════════════════════════════════════════════════════════════════

// GetDailyRecordQuery identifies the requested day.
type GetDailyRecordQuery struct {
	// Date is the calendar date in YYYY-MM-DD.
	Date string
}

// DailySummary aggregates one record for display.
type DailySummary struct {
	// Total is the number of entries in the record.
	Total int `json:"total"`

	// Present is the number of students marked present.
	Present int `json:"present"`

	// Absent is the number of students marked absent.
	Absent int `json:"absent"`

	// WithObservation is the number of absences carrying an observation.
	WithObservation int `json:"withObservation"`
}

// GetDailyRecordResult is the query response. Found is false when no record
// exists for the date; the UI then renders editable inputs instead of the
// locked read-only view.
type GetDailyRecordResult struct {
	Found   bool               `json:"found"`
	Record  *attendance.Record `json:"record,omitempty"`
	Summary *DailySummary      `json:"summary,omitempty"`
}

// GetDailyRecordHandler handles daily record queries.
type GetDailyRecordHandler struct {
	repo attendance.Repository
	bus  *messaging.EventBus
	log  *logger.Logger
}

// NewGetDailyRecordHandler creates a GetDailyRecordHandler. The bus may be nil.
func NewGetDailyRecordHandler(repo attendance.Repository, bus *messaging.EventBus, log *logger.Logger) *GetDailyRecordHandler {
	return &GetDailyRecordHandler{
		repo: repo,
		bus:  bus,
		log:  log.With(logger.Component("query.get_daily_record")),
	}
}

// Handle returns the record for the date, if any. A corrupt stored record
// is logged and reported as absent for that date; it never aborts the
// caller's flow.
func (h *GetDailyRecordHandler) Handle(ctx context.Context, q GetDailyRecordQuery) (*GetDailyRecordResult, error) {
	date, err := shared.ParseDayDate(q.Date)
	if err != nil {
		return nil, shared.WrapError("query", "GetDailyRecord", shared.ErrInvalidFormat,
			"date must be YYYY-MM-DD", err)
	}

	rec, err := h.repo.Get(ctx, date)
	if err != nil {
		if shared.IsNotFound(err) {
			return &GetDailyRecordResult{Found: false}, nil
		}
		if shared.IsCorrupt(err) {
			h.log.Error("stored record corrupt, treating as absent",
				logger.RecordDate(date.String()),
				logger.Err(err),
			)
			h.bus.Publish(ctx, shared.NewRecordCorruptEvent(date.String()))
			return &GetDailyRecordResult{Found: false}, nil
		}
		return nil, err
	}

	return &GetDailyRecordResult{
		Found:  true,
		Record: rec,
		Summary: &DailySummary{
			Total:           len(rec.Detail),
			Present:         rec.PresentCount(),
			Absent:          rec.AbsentCount(),
			WithObservation: rec.ObservedAbsences(),
		},
	}, nil
}
