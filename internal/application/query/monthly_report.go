package query

import (
	"context"
	"math"
	"time"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/messaging"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
	"github.com/aula-hub/libro-de-clases/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY REPORT QUERY
// Scans every calendar day of a year-month, folds the stored records into
// per-student presence counts, and ranks the roster by attendance
// percentage. Derived on every request; never persisted.
// ══════════════════════════════════════════════════════════════════════════════

// MonthlyReportQuery identifies the requested period.
type MonthlyReportQuery struct {
	// Year is the calendar year.
	Year int

	// Month is the calendar month (1-12).
	Month int
}

// MonthlyReportResult is the query response.
type MonthlyReportResult struct {
	// Period is the YYYY-MM label of the report.
	Period string `json:"period"`

	// PeriodName is the Spanish display name, e.g. "marzo de 2024".
	PeriodName string `json:"periodName"`

	// Rows is the roster ranked by percentage descending; ties keep roster
	// order. The ordering is a display convenience, not a semantic
	// guarantee.
	Rows []attendance.MonthlyRow `json:"rows"`

	// DaysWithRecords counts the scanned days that had a stored record.
	// Zero distinguishes "no data this month" from "all absent".
	DaysWithRecords int `json:"daysWithRecords"`

	// AveragePercentage is the mean of row percentages across the roster.
	AveragePercentage int `json:"averagePercentage"`

	// PerfectAttendance counts students at 100%.
	PerfectAttendance int `json:"perfectAttendance"`

	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// MonthlyReportHandler handles monthly report queries.
type MonthlyReportHandler struct {
	repo   attendance.Repository
	roster *roster.Store
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewMonthlyReportHandler creates a MonthlyReportHandler. The bus may be nil.
func NewMonthlyReportHandler(
	repo attendance.Repository,
	rosterStore *roster.Store,
	bus *messaging.EventBus,
	log *logger.Logger,
) *MonthlyReportHandler {
	return &MonthlyReportHandler{
		repo:   repo,
		roster: rosterStore,
		bus:    bus,
		log:    log.With(logger.Component("query.monthly_report")),
	}
}

// Handle aggregates the month. Failures local to one day are isolated: a
// day whose record is corrupt is logged and skipped, and the rest of the
// month still reports. Only a malformed period aborts the query.
func (h *MonthlyReportHandler) Handle(ctx context.Context, q MonthlyReportQuery) (*MonthlyReportResult, error) {
	period, err := shared.NewPeriod(q.Year, q.Month)
	if err != nil {
		return nil, err
	}

	tally := attendance.NewTally()
	daysWithRecords := 0

	for day := 1; day <= period.Days(); day++ {
		rec, err := h.repo.Get(ctx, period.DayAt(day))
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			if shared.IsCorrupt(err) {
				h.log.Error("skipping corrupt day in monthly scan",
					logger.RecordDate(period.DayAt(day).String()),
					logger.Err(err),
				)
				h.bus.Publish(ctx, shared.NewRecordCorruptEvent(period.DayAt(day).String()))
				continue
			}
			return nil, err
		}

		// A record with an empty detail still counts as a recorded day.
		daysWithRecords++
		tally.Accumulate(rec)
	}

	rows := tally.Rows(h.roster.List())

	result := &MonthlyReportResult{
		Period:            period.String(),
		PeriodName:        timeutil.PeriodNameEs(period.Year, period.Month),
		Rows:              rows,
		DaysWithRecords:   daysWithRecords,
		AveragePercentage: averagePercentage(rows),
		PerfectAttendance: perfectCount(rows),
		GeneratedAt:       time.Now(),
	}

	h.bus.Publish(ctx, shared.NewMonthlyReportBuiltEvent(result.Period, daysWithRecords))
	h.log.Debug("monthly report built",
		logger.PeriodField(result.Period),
		logger.DaysWithRecords(daysWithRecords),
		logger.RosterSize(len(rows)),
	)

	return result, nil
}

func averagePercentage(rows []attendance.MonthlyRow) int {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rows {
		sum += r.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(rows))))
}

func perfectCount(rows []attendance.MonthlyRow) int {
	n := 0
	for _, r := range rows {
		if r.Percentage == 100 {
			n++
		}
	}
	return n
}
