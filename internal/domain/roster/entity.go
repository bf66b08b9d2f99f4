// Package roster contiene el modelo de dominio de la nómina de alumnos.
// La nómina se carga una sola vez al inicio y es inmutable durante la sesión.
package roster

import (
	"strings"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// StudentID es el identificador único y estable de un alumno (ej. "A001").
type StudentID string

// IsValid verifica que el ID no esté vacío ni contenga espacios.
func (id StudentID) IsValid() bool {
	s := string(id)
	return s != "" && !strings.ContainsAny(s, " \t\n\r")
}

// String devuelve la representación textual del ID.
func (id StudentID) String() string {
	return string(id)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTIDAD
// ══════════════════════════════════════════════════════════════════════════════

// Student representa a un alumno de la nómina del curso.
// La entidad es inmutable durante la vida de la sesión: se construye al
// cargar la nómina y no expone operaciones de modificación.
type Student struct {
	// ID es el identificador único del alumno.
	ID StudentID

	// Nombre es el nombre de pila.
	Nombre string

	// ApellidoPaterno es el apellido paterno.
	ApellidoPaterno string

	// ApellidoMaterno es el apellido materno.
	ApellidoMaterno string

	// FechaNacimiento es la fecha de nacimiento.
	FechaNacimiento shared.DayDate

	// Curso es la etiqueta del curso o sección (ej. "Kinder A").
	Curso string

	// Apoderado es el nombre del apoderado.
	Apoderado string

	// Contacto es el teléfono u otro medio de contacto del apoderado.
	Contacto string

	// Foto es la ruta opcional a la fotografía del alumno.
	Foto string
}

// FullName devuelve "Nombre ApellidoPaterno ApellidoMaterno".
func (s Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Nombre, s.ApellidoPaterno, s.ApellidoMaterno} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Validate verifica los campos mínimos de la entidad.
func (s Student) Validate() error {
	if !s.ID.IsValid() {
		return shared.NewDomainError("roster", "Validate", shared.ErrInvalidID, "student id is empty or malformed")
	}
	if strings.TrimSpace(s.Nombre) == "" {
		return shared.NewDomainError("roster", "Validate", shared.ErrEmptyValue, "nombre is required")
	}
	return nil
}
