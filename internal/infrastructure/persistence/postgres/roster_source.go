package postgres

import (
	"context"
	"time"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER SOURCE
// roster.Source implementation over the alumnos table. Load order is the
// stable roster order: position first, id as tiebreaker.
// ══════════════════════════════════════════════════════════════════════════════

// RosterSource loads the student roster from PostgreSQL.
type RosterSource struct {
	conn *Connection
}

// NewRosterSource creates a RosterSource.
func NewRosterSource(conn *Connection) *RosterSource {
	return &RosterSource{conn: conn}
}

// Load returns the roster in stable order. Any failure - connection,
// query, malformed row - maps to shared.ErrSourceUnavailable so the caller
// can substitute the fallback roster.
func (s *RosterSource) Load(ctx context.Context) ([]roster.Student, error) {
	query := `
		SELECT id, nombre, apellido_paterno, apellido_materno,
		       fecha_nacimiento, curso, apoderado, contacto, COALESCE(foto, '')
		FROM alumnos
		ORDER BY posicion, id
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
			"alumnos query failed", err)
	}
	defer rows.Close()

	var students []roster.Student
	for rows.Next() {
		var (
			st    roster.Student
			id    string
			birth time.Time
		)
		err := rows.Scan(&id, &st.Nombre, &st.ApellidoPaterno, &st.ApellidoMaterno,
			&birth, &st.Curso, &st.Apoderado, &st.Contacto, &st.Foto)
		if err != nil {
			return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
				"alumnos row scan failed", err)
		}
		st.ID = roster.StudentID(id)
		st.FechaNacimiento = shared.DayDateOf(birth)
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
			"alumnos rows failed", err)
	}

	return students, nil
}
