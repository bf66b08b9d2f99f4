package query

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/persistence/memory"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func testRoster(t *testing.T) *roster.Store {
	t.Helper()
	st, err := roster.NewStore([]roster.Student{
		{ID: "A001", Nombre: "Matías", ApellidoPaterno: "Pérez"},
		{ID: "A002", Nombre: "Sofía", ApellidoPaterno: "Ramírez"},
	})
	require.NoError(t, err)
	return st
}

func saveDay(t *testing.T, repo attendance.Repository, date string, presentA001, presentA002 bool) {
	t.Helper()
	d, err := shared.ParseDayDate(date)
	require.NoError(t, err)

	entries := []attendance.Entry{
		{StudentID: "A001", Name: "Matías Pérez", Present: presentA001, Observation: obsFor(presentA001)},
		{StudentID: "A002", Name: "Sofía Ramírez", Present: presentA002, Observation: obsFor(presentA002)},
	}
	_, err = repo.Create(context.Background(), d, entries)
	require.NoError(t, err)
}

func obsFor(present bool) string {
	if present {
		return ""
	}
	return "sin aviso"
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid period rejected", func(t *testing.T) {
		h := NewMonthlyReportHandler(memory.NewRecordStore(), testRoster(t), nil, quietLogger())

		_, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 13})
		assert.ErrorIs(t, err, shared.ErrInvalidPeriod)

		_, err = h.Handle(ctx, MonthlyReportQuery{Year: 0, Month: 3})
		assert.ErrorIs(t, err, shared.ErrInvalidPeriod)
	})

	t.Run("empty month reports zero days and zeroed rows", func(t *testing.T) {
		h := NewMonthlyReportHandler(memory.NewRecordStore(), testRoster(t), nil, quietLogger())

		result, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, "2024-03", result.Period)
		assert.Zero(t, result.DaysWithRecords)
		require.Len(t, result.Rows, 2)
		for _, row := range result.Rows {
			assert.Zero(t, row.Percentage)
			assert.Zero(t, row.TotalRecordedDays)
		}
	})

	t.Run("single day gives 100 and 0", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-04", true, false)

		h := NewMonthlyReportHandler(repo, testRoster(t), nil, quietLogger())
		result, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, 1, result.DaysWithRecords)
		// A001 at 100% ranks before A002 at 0%.
		assert.Equal(t, roster.StudentID("A001"), result.Rows[0].StudentID)
		assert.Equal(t, 100, result.Rows[0].Percentage)
		assert.Equal(t, roster.StudentID("A002"), result.Rows[1].StudentID)
		assert.Equal(t, 0, result.Rows[1].Percentage)
		assert.Equal(t, 50, result.AveragePercentage)
		assert.Equal(t, 1, result.PerfectAttendance)
	})

	t.Run("records outside the period are ignored", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-04", true, true)
		saveDay(t, repo, "2024-04-01", false, false)
		saveDay(t, repo, "2023-03-04", false, false)

		h := NewMonthlyReportHandler(repo, testRoster(t), nil, quietLogger())
		result, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, 1, result.DaysWithRecords)
		assert.Equal(t, 100, result.Rows[0].Percentage)
		assert.Equal(t, 100, result.Rows[1].Percentage)
		assert.Equal(t, 2, result.PerfectAttendance)
	})

	t.Run("multiple days rank by percentage", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-04", true, true)
		saveDay(t, repo, "2024-03-05", true, false)
		saveDay(t, repo, "2024-03-06", false, true)
		saveDay(t, repo, "2024-03-07", true, true)

		h := NewMonthlyReportHandler(repo, testRoster(t), nil, quietLogger())
		result, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, 4, result.DaysWithRecords)
		// Both at 3/4 = 75%; the tie keeps roster order.
		assert.Equal(t, roster.StudentID("A001"), result.Rows[0].StudentID)
		assert.Equal(t, 75, result.Rows[0].Percentage)
		assert.Equal(t, attendance.LevelCritical, result.Rows[0].Level)
	})

	t.Run("aggregation is idempotent", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-04", true, false)

		h := NewMonthlyReportHandler(repo, testRoster(t), nil, quietLogger())

		first, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)
		second, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, first.Rows, second.Rows)
		assert.Equal(t, first.DaysWithRecords, second.DaysWithRecords)
	})

	t.Run("a corrupt day is skipped, the rest still reports", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-04", true, true)

		corrupt, err := shared.ParseDayDate("2024-03-05")
		require.NoError(t, err)

		h := NewMonthlyReportHandler(&corruptDayRepo{inner: repo, corrupt: corrupt}, testRoster(t), nil, quietLogger())
		result, err := h.Handle(ctx, MonthlyReportQuery{Year: 2024, Month: 3})
		require.NoError(t, err)

		// The corrupt day is not a day with records.
		assert.Equal(t, 1, result.DaysWithRecords)
		assert.Equal(t, 100, result.Rows[0].Percentage)
	})
}

// corruptDayRepo fails Get for one date the way a storage layer does when a
// stored value cannot be parsed.
type corruptDayRepo struct {
	inner   attendance.Repository
	corrupt shared.DayDate
}

func (r *corruptDayRepo) Get(ctx context.Context, date shared.DayDate) (*attendance.Record, error) {
	if date == r.corrupt {
		return nil, shared.ErrRecordCorrupt
	}
	return r.inner.Get(ctx, date)
}

func (r *corruptDayRepo) Create(ctx context.Context, date shared.DayDate, entries []attendance.Entry) (*attendance.Record, error) {
	return r.inner.Create(ctx, date, entries)
}

func (r *corruptDayRepo) CountRecords(ctx context.Context) (int, error) {
	return r.inner.CountRecords(ctx)
}
