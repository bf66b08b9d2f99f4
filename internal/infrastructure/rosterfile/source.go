// Package rosterfile implements the JSON-document roster source: an
// array of students with Spanish field names, see data/alumnos.json.
package rosterfile

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// alumnoDTO mirrors one entry of the roster document.
type alumnoDTO struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Curso           string `json:"curso"`
	Apoderado       string `json:"apoderado"`
	Contacto        string `json:"contacto"`
	Foto            string `json:"foto,omitempty"`
}

// Source loads the roster from a JSON document on disk.
type Source struct {
	path string
}

// NewSource creates a Source for the given document path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads and decodes the roster document. Document order is the stable
// roster order. An unreadable or malformed document maps to
// shared.ErrSourceUnavailable so the caller can substitute the fallback.
func (s *Source) Load(ctx context.Context) ([]roster.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
			"roster document unreadable", err)
	}

	var dtos []alumnoDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
			"roster document malformed", err)
	}

	students := make([]roster.Student, 0, len(dtos))
	for _, dto := range dtos {
		birth, err := shared.ParseDayDate(dto.FechaNacimiento)
		if err != nil {
			return nil, shared.WrapError("roster", "Load", shared.ErrSourceUnavailable,
				"fecha_nacimiento malformed for "+dto.ID, err)
		}
		students = append(students, roster.Student{
			ID:              roster.StudentID(dto.ID),
			Nombre:          dto.Nombre,
			ApellidoPaterno: dto.ApellidoPaterno,
			ApellidoMaterno: dto.ApellidoMaterno,
			FechaNacimiento: birth,
			Curso:           dto.Curso,
			Apoderado:       dto.Apoderado,
			Contacto:        dto.Contacto,
			Foto:            dto.Foto,
		})
	}

	return students, nil
}
