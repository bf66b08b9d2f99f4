package attendance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATOR
// Verificación pura del detalle de un día antes de persistirlo. No muta
// estado; el repositorio la invoca como compuerta de Create.
// ══════════════════════════════════════════════════════════════════════════════

// ValidationFailure enumera todos los alumnos cuya entrada violó la regla
// de observación obligatoria, para que el llamador pueda marcar todas las
// violaciones de una vez.
type ValidationFailure struct {
	// StudentIDs son los alumnos infractores, en el orden del detalle.
	StudentIDs []roster.StudentID
}

// Error implementa la interfaz error.
func (f *ValidationFailure) Error() string {
	ids := make([]string, len(f.StudentIDs))
	for i, id := range f.StudentIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("attendance.Validate: absent without observation: %s",
		strings.Join(ids, ", "))
}

// Is permite errors.Is(err, shared.ErrValidation).
func (f *ValidationFailure) Is(target error) bool {
	return target == shared.ErrValidation
}

// Unwrap devuelve el error base de validación.
func (f *ValidationFailure) Unwrap() error {
	return shared.ErrValidation
}

// ValidateEntries aplica la regla del dominio: toda entrada con el alumno
// ausente debe llevar observación no vacía (descontando espacios). Devuelve
// nil si el detalle es válido, o *ValidationFailure con la lista completa
// de infractores.
func ValidateEntries(entries []Entry) error {
	var offenders []roster.StudentID
	for _, e := range entries {
		if e.RequiresObservation() && !e.HasObservation() {
			offenders = append(offenders, e.StudentID)
		}
	}
	if len(offenders) > 0 {
		return &ValidationFailure{StudentIDs: offenders}
	}
	return nil
}

// AsValidationFailure extrae la falla de validación de un error, si lo es.
func AsValidationFailure(err error) (*ValidationFailure, bool) {
	var f *ValidationFailure
	ok := errors.As(err, &f)
	return f, ok
}
