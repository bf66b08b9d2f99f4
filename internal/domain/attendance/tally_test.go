package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

func testStudents() []roster.Student {
	return []roster.Student{
		{ID: "A001", Nombre: "Matías", ApellidoPaterno: "Pérez"},
		{ID: "A002", Nombre: "Sofía", ApellidoPaterno: "Ramírez"},
		{ID: "A003", Nombre: "Diego", ApellidoPaterno: "Morales"},
	}
}

func mustRecord(t *testing.T, date string, entries []Entry) *Record {
	t.Helper()
	d, err := shared.ParseDayDate(date)
	require.NoError(t, err)
	rec, err := NewRecord(d, entries, time.Now())
	require.NoError(t, err)
	return rec
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelGood, LevelFor(100))
	assert.Equal(t, LevelGood, LevelFor(95))
	assert.Equal(t, LevelWarning, LevelFor(94))
	assert.Equal(t, LevelWarning, LevelFor(80))
	assert.Equal(t, LevelCritical, LevelFor(79))
	assert.Equal(t, LevelCritical, LevelFor(0))
}

func TestTallyRows(t *testing.T) {
	t.Run("no records yields all zeros in roster order", func(t *testing.T) {
		rows := NewTally().Rows(testStudents())
		require.Len(t, rows, 3)
		for i, id := range []roster.StudentID{"A001", "A002", "A003"} {
			assert.Equal(t, id, rows[i].StudentID)
			assert.Equal(t, 0, rows[i].PresentDays)
			assert.Equal(t, 0, rows[i].TotalRecordedDays)
			assert.Equal(t, 0, rows[i].Percentage)
			assert.Equal(t, LevelCritical, rows[i].Level)
		}
	})

	t.Run("single record gives 100 or 0", func(t *testing.T) {
		tally := NewTally()
		tally.Accumulate(mustRecord(t, "2024-03-04", []Entry{
			{StudentID: "A001", Present: true},
			{StudentID: "A002", Present: false, Observation: "enfermo"},
			{StudentID: "A003", Present: true},
		}))

		rows := tally.Rows(testStudents())
		byID := rowsByID(rows)

		assert.Equal(t, 100, byID["A001"].Percentage)
		assert.Equal(t, 0, byID["A002"].Percentage)
		assert.Equal(t, LevelGood, byID["A001"].Level)
		assert.Equal(t, LevelCritical, byID["A002"].Level)
	})

	t.Run("percentage is rounded", func(t *testing.T) {
		tally := NewTally()
		// A001: present 2 of 3 days -> 66.67 -> 67
		for i, present := range []bool{true, true, false} {
			entries := []Entry{{StudentID: "A001", Present: present, Observation: "sin aviso"}}
			tally.Accumulate(mustRecord(t, date(t, i+1), entries))
		}

		rows := tally.Rows(testStudents()[:1])
		assert.Equal(t, 67, rows[0].Percentage)
		assert.Equal(t, 2, rows[0].PresentDays)
		assert.Equal(t, 3, rows[0].TotalRecordedDays)
	})

	t.Run("sorted by percentage descending, ties keep roster order", func(t *testing.T) {
		tally := NewTally()
		tally.Accumulate(mustRecord(t, "2024-03-04", []Entry{
			{StudentID: "A001", Present: false, Observation: "enfermo"},
			{StudentID: "A002", Present: true},
			{StudentID: "A003", Present: true},
		}))

		rows := tally.Rows(testStudents())
		require.Len(t, rows, 3)
		// A002 and A003 tie at 100; A002 comes first in the roster.
		assert.Equal(t, roster.StudentID("A002"), rows[0].StudentID)
		assert.Equal(t, roster.StudentID("A003"), rows[1].StudentID)
		assert.Equal(t, roster.StudentID("A001"), rows[2].StudentID)
	})

	t.Run("student missing from a day's record is not penalized", func(t *testing.T) {
		tally := NewTally()
		tally.Accumulate(mustRecord(t, "2024-03-04", []Entry{
			{StudentID: "A001", Present: true},
		}))
		tally.Accumulate(mustRecord(t, "2024-03-05", []Entry{
			{StudentID: "A001", Present: true},
			{StudentID: "A002", Present: true},
		}))

		byID := rowsByID(tally.Rows(testStudents()))
		assert.Equal(t, 2, byID["A001"].TotalRecordedDays)
		assert.Equal(t, 1, byID["A002"].TotalRecordedDays)
		assert.Equal(t, 100, byID["A002"].Percentage)
	})
}

func rowsByID(rows []MonthlyRow) map[roster.StudentID]MonthlyRow {
	out := make(map[roster.StudentID]MonthlyRow, len(rows))
	for _, r := range rows {
		out[r.StudentID] = r
	}
	return out
}

func date(t *testing.T, day int) string {
	t.Helper()
	d, err := shared.NewDayDate(2024, time.March, day)
	require.NoError(t, err)
	return d.String()
}
