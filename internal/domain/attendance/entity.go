// Package attendance contiene el núcleo del libro de clases: el registro
// diario de asistencia, su validación y el plegado mensual de porcentajes.
//
// Invariantes del dominio:
//
//  1. Existe a lo sumo un registro por fecha; una vez creado es inmutable
//     (no se expone update ni delete).
//  2. Toda entrada con el alumno ausente lleva una observación no vacía,
//     exigida en el momento de la escritura.
//  3. El detalle del registro conserva el orden de la nómina.
package attendance

import (
	"strings"
	"time"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry es el resultado de un alumno en un día: presente o ausente, con
// observación obligatoria en caso de ausencia.
type Entry struct {
	// StudentID referencia a un alumno existente de la nómina.
	StudentID roster.StudentID `json:"id"`

	// Name es el nombre del alumno tal como quedó en el registro.
	// Se persiste junto a la entrada para que el registro sea legible
	// aunque la nómina cambie en sesiones futuras.
	Name string `json:"name"`

	// Present indica si el alumno asistió.
	Present bool `json:"present"`

	// Observation es la observación de la ausencia. Vacía si Present.
	Observation string `json:"observation"`
}

// RequiresObservation indica si la entrada exige observación (ausente).
func (e Entry) RequiresObservation() bool {
	return !e.Present
}

// HasObservation indica si la observación, sin espacios circundantes,
// no está vacía.
func (e Entry) HasObservation() bool {
	return strings.TrimSpace(e.Observation) != ""
}

// Normalize devuelve la entrada con la observación recortada, y vaciada
// cuando el alumno está presente.
func (e Entry) Normalize() Entry {
	if e.Present {
		e.Observation = ""
		return e
	}
	e.Observation = strings.TrimSpace(e.Observation)
	return e
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record es la foto inmutable de la asistencia de un día completo.
// La fecha es la clave única del registro.
type Record struct {
	// Date es la fecha calendario del registro.
	Date shared.DayDate `json:"date"`

	// Detail es la secuencia ordenada de entradas, una por alumno de la
	// nómina, en el orden de la nómina.
	Detail []Entry `json:"detail"`

	// CreatedAt es el instante de creación del registro.
	CreatedAt time.Time `json:"createdAt"`
}

// NewRecord construye un registro validado con la marca de tiempo actual.
// Devuelve *ValidationFailure (envolviendo shared.ErrValidation) si alguna
// ausencia carece de observación; la falla enumera todos los alumnos
// infractores, no solo el primero.
func NewRecord(date shared.DayDate, entries []Entry, now time.Time) (*Record, error) {
	if date.IsZero() {
		return nil, shared.ErrInvalidDate
	}
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	detail := make([]Entry, len(entries))
	for i, e := range entries {
		detail[i] = e.Normalize()
	}

	return &Record{
		Date:      date,
		Detail:    detail,
		CreatedAt: now,
	}, nil
}

// PresentCount devuelve el número de alumnos presentes.
func (r *Record) PresentCount() int {
	n := 0
	for _, e := range r.Detail {
		if e.Present {
			n++
		}
	}
	return n
}

// AbsentCount devuelve el número de alumnos ausentes.
func (r *Record) AbsentCount() int {
	return len(r.Detail) - r.PresentCount()
}

// ObservedAbsences devuelve el número de ausencias con observación.
func (r *Record) ObservedAbsences() int {
	n := 0
	for _, e := range r.Detail {
		if !e.Present && e.HasObservation() {
			n++
		}
	}
	return n
}

// EntryFor busca la entrada de un alumno dentro del registro.
func (r *Record) EntryFor(id roster.StudentID) (Entry, bool) {
	for _, e := range r.Detail {
		if e.StudentID == id {
			return e, true
		}
	}
	return Entry{}, false
}
