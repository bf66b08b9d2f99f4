package roster

import (
	"context"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// La nómina cargada en memoria. Solo lectura: no expone mutaciones.
// ══════════════════════════════════════════════════════════════════════════════

// Store mantiene la nómina de alumnos en el orden estable de carga.
type Store struct {
	students []Student
	byID     map[StudentID]int
}

// NewStore construye un Store a partir de una secuencia de alumnos ya
// validada. El orden de la secuencia es el orden canónico de la nómina.
func NewStore(students []Student) (*Store, error) {
	if len(students) == 0 {
		return nil, shared.ErrRosterEmpty
	}

	byID := make(map[StudentID]int, len(students))
	for i, s := range students {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[s.ID]; dup {
			return nil, shared.NewDomainError("roster", "NewStore",
				shared.ErrAlreadyExists, "duplicate student id "+s.ID.String())
		}
		byID[s.ID] = i
	}

	// Copia defensiva: el Store es dueño de su secuencia.
	own := make([]Student, len(students))
	copy(own, students)

	return &Store{students: own, byID: byID}, nil
}

// Load consulta la fuente y construye el Store. Si la fuente falla con
// shared.ErrSourceUnavailable, el llamador decide sustituir el respaldo.
func Load(ctx context.Context, src Source) (*Store, error) {
	students, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(students)
}

// List devuelve la nómina completa en orden de carga.
// La secuencia devuelta es una copia; el llamador puede quedársela.
func (st *Store) List() []Student {
	out := make([]Student, len(st.students))
	copy(out, st.students)
	return out
}

// ByID busca un alumno por su identificador.
// Devuelve shared.ErrStudentNotFound si no existe.
func (st *Store) ByID(id StudentID) (Student, error) {
	i, ok := st.byID[id]
	if !ok {
		return Student{}, shared.ErrStudentNotFound
	}
	return st.students[i], nil
}

// Contains indica si el alumno pertenece a la nómina.
func (st *Store) Contains(id StudentID) bool {
	_, ok := st.byID[id]
	return ok
}

// Count devuelve el número de alumnos de la nómina.
func (st *Store) Count() int {
	return len(st.students)
}
