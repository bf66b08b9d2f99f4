package rosterfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alumnos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSourceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("valid document preserves order", func(t *testing.T) {
		path := writeDoc(t, `[
			{"id": "A002", "nombre": "Sofía", "apellido_paterno": "Ramírez",
			 "apellido_materno": "Soto", "fecha_nacimiento": "2019-07-22",
			 "curso": "Kinder A", "apoderado": "Ana Soto", "contacto": "+56 9 1111 1111"},
			{"id": "A001", "nombre": "Matías", "apellido_paterno": "Pérez",
			 "apellido_materno": "González", "fecha_nacimiento": "2019-03-14",
			 "curso": "Kinder A", "apoderado": "Carla González", "contacto": "+56 9 2222 2222"}
		]`)

		students, err := NewSource(path).Load(ctx)
		require.NoError(t, err)
		require.Len(t, students, 2)

		// Document order is roster order, no implicit sorting by id.
		assert.Equal(t, roster.StudentID("A002"), students[0].ID)
		assert.Equal(t, "Sofía Ramírez Soto", students[0].FullName())
		assert.Equal(t, "2019-07-22", students[0].FechaNacimiento.String())
		assert.Equal(t, roster.StudentID("A001"), students[1].ID)
	})

	t.Run("missing file maps to source unavailable", func(t *testing.T) {
		_, err := NewSource(filepath.Join(t.TempDir(), "nope.json")).Load(ctx)
		assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	})

	t.Run("malformed json maps to source unavailable", func(t *testing.T) {
		path := writeDoc(t, `{"not": "an array"`)
		_, err := NewSource(path).Load(ctx)
		assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	})

	t.Run("bad birth date maps to source unavailable", func(t *testing.T) {
		path := writeDoc(t, `[{"id": "A001", "nombre": "Matías", "fecha_nacimiento": "14/03/2019"}]`)
		_, err := NewSource(path).Load(ctx)
		assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewSource(writeDoc(t, `[]`)).Load(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
