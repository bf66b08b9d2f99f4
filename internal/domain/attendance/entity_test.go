package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

func testDate(t *testing.T) shared.DayDate {
	t.Helper()
	d, err := shared.ParseDayDate("2024-03-15")
	require.NoError(t, err)
	return d
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("valid record", func(t *testing.T) {
		rec, err := NewRecord(testDate(t), []Entry{
			{StudentID: "A001", Name: "Matías Pérez", Present: true},
			{StudentID: "A002", Name: "Sofía Ramírez", Present: false, Observation: "  control médico  "},
		}, now)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-15", rec.Date.String())
		assert.Equal(t, now, rec.CreatedAt)
		assert.Equal(t, 1, rec.PresentCount())
		assert.Equal(t, 1, rec.AbsentCount())
		assert.Equal(t, 1, rec.ObservedAbsences())

		// Observations are stored trimmed.
		e, ok := rec.EntryFor("A002")
		require.True(t, ok)
		assert.Equal(t, "control médico", e.Observation)
	})

	t.Run("zero date rejected", func(t *testing.T) {
		_, err := NewRecord(shared.DayDate{}, nil, now)
		assert.ErrorIs(t, err, shared.ErrInvalidDate)
	})

	t.Run("absence without observation rejected", func(t *testing.T) {
		_, err := NewRecord(testDate(t), []Entry{
			{StudentID: "A001", Present: false},
		}, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("present entry drops its observation", func(t *testing.T) {
		rec, err := NewRecord(testDate(t), []Entry{
			{StudentID: "A001", Present: true, Observation: "llegó tarde"},
		}, now)
		require.NoError(t, err)

		e, ok := rec.EntryFor("A001")
		require.True(t, ok)
		assert.Empty(t, e.Observation)
	})
}

func TestEntryFor(t *testing.T) {
	rec, err := NewRecord(testDate(t), []Entry{
		{StudentID: "A001", Present: true},
	}, time.Now())
	require.NoError(t, err)

	_, ok := rec.EntryFor("A999")
	assert.False(t, ok)
}
