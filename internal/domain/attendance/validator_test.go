package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

func TestValidateEntries(t *testing.T) {
	t.Run("all present needs no observations", func(t *testing.T) {
		err := ValidateEntries([]Entry{
			{StudentID: "A001", Present: true},
			{StudentID: "A002", Present: true},
		})
		assert.NoError(t, err)
	})

	t.Run("absent with observation passes", func(t *testing.T) {
		err := ValidateEntries([]Entry{
			{StudentID: "A001", Present: false, Observation: "enfermo"},
		})
		assert.NoError(t, err)
	})

	t.Run("whitespace observation counts as missing", func(t *testing.T) {
		err := ValidateEntries([]Entry{
			{StudentID: "A001", Present: false, Observation: "   \t "},
		})
		require.Error(t, err)

		f, ok := AsValidationFailure(err)
		require.True(t, ok)
		assert.Equal(t, []roster.StudentID{"A001"}, f.StudentIDs)
	})

	t.Run("every offender is listed, in detail order", func(t *testing.T) {
		err := ValidateEntries([]Entry{
			{StudentID: "A001", Present: false},
			{StudentID: "A002", Present: true},
			{StudentID: "A003", Present: false, Observation: ""},
			{StudentID: "A004", Present: false, Observation: "viaje familiar"},
			{StudentID: "A005", Present: false},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)

		f, ok := AsValidationFailure(err)
		require.True(t, ok)
		assert.Equal(t, []roster.StudentID{"A001", "A003", "A005"}, f.StudentIDs)
	})

	t.Run("empty detail is valid", func(t *testing.T) {
		assert.NoError(t, ValidateEntries(nil))
	})
}
