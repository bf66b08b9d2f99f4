package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

func validStudents() []Student {
	return []Student{
		{ID: "A001", Nombre: "Matías", ApellidoPaterno: "Pérez"},
		{ID: "A002", Nombre: "Sofía", ApellidoPaterno: "Ramírez"},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("valid roster", func(t *testing.T) {
		st, err := NewStore(validStudents())
		require.NoError(t, err)
		assert.Equal(t, 2, st.Count())
		assert.True(t, st.Contains("A001"))
		assert.False(t, st.Contains("A999"))
	})

	t.Run("empty roster rejected", func(t *testing.T) {
		_, err := NewStore(nil)
		assert.ErrorIs(t, err, shared.ErrRosterEmpty)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		students := validStudents()
		students[1].ID = "A001"
		_, err := NewStore(students)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid student rejected", func(t *testing.T) {
		_, err := NewStore([]Student{{ID: "A001", Nombre: "  "}})
		assert.ErrorIs(t, err, shared.ErrEmptyValue)
	})
}

func TestStoreByID(t *testing.T) {
	st, err := NewStore(validStudents())
	require.NoError(t, err)

	s, err := st.ByID("A002")
	require.NoError(t, err)
	assert.Equal(t, "Sofía Ramírez", s.FullName())

	_, err = st.ByID("A999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreListIsACopy(t *testing.T) {
	st, err := NewStore(validStudents())
	require.NoError(t, err)

	list := st.List()
	list[0].Nombre = "Mutado"

	again := st.List()
	assert.Equal(t, "Matías", again[0].Nombre)
}

type staticSource struct {
	students []Student
	err      error
}

func (s staticSource) Load(ctx context.Context) ([]Student, error) {
	return s.students, s.err
}

func TestLoad(t *testing.T) {
	t.Run("loads from source", func(t *testing.T) {
		st, err := Load(context.Background(), staticSource{students: validStudents()})
		require.NoError(t, err)
		assert.Equal(t, 2, st.Count())
	})

	t.Run("source failure propagates", func(t *testing.T) {
		_, err := Load(context.Background(), staticSource{err: shared.ErrRosterSourceDown})
		assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	})
}

func TestFallback(t *testing.T) {
	students := Fallback()
	require.NotEmpty(t, students)

	st, err := NewStore(students)
	require.NoError(t, err)
	assert.Equal(t, len(students), st.Count())
}

func TestFullName(t *testing.T) {
	s := Student{Nombre: "Diego", ApellidoPaterno: "Morales", ApellidoMaterno: "Vega"}
	assert.Equal(t, "Diego Morales Vega", s.FullName())

	s.ApellidoMaterno = ""
	assert.Equal(t, "Diego Morales", s.FullName())
}
