package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/persistence/memory"
)

func TestGetDailyRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("missing date answers found=false", func(t *testing.T) {
		h := NewGetDailyRecordHandler(memory.NewRecordStore(), nil, quietLogger())

		result, err := h.Handle(ctx, GetDailyRecordQuery{Date: "2024-03-15"})
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Nil(t, result.Record)
	})

	t.Run("existing record comes back with its summary", func(t *testing.T) {
		repo := memory.NewRecordStore()
		saveDay(t, repo, "2024-03-15", true, false)

		h := NewGetDailyRecordHandler(repo, nil, quietLogger())
		result, err := h.Handle(ctx, GetDailyRecordQuery{Date: "2024-03-15"})
		require.NoError(t, err)

		require.True(t, result.Found)
		require.NotNil(t, result.Summary)
		assert.Equal(t, 2, result.Summary.Total)
		assert.Equal(t, 1, result.Summary.Present)
		assert.Equal(t, 1, result.Summary.Absent)
		assert.Equal(t, 1, result.Summary.WithObservation)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		h := NewGetDailyRecordHandler(memory.NewRecordStore(), nil, quietLogger())
		_, err := h.Handle(ctx, GetDailyRecordQuery{Date: "not-a-date"})
		assert.ErrorIs(t, err, shared.ErrInvalidFormat)
	})

	t.Run("corrupt record is reported as absent", func(t *testing.T) {
		corrupt, err := shared.ParseDayDate("2024-03-15")
		require.NoError(t, err)
		repo := &corruptDayRepo{inner: memory.NewRecordStore(), corrupt: corrupt}

		h := NewGetDailyRecordHandler(repo, nil, quietLogger())
		result, err := h.Handle(ctx, GetDailyRecordQuery{Date: "2024-03-15"})
		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}
