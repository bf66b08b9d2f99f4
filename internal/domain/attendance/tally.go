package attendance

import (
	"math"
	"sort"

	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY TALLY
// Plegado de lectura sobre los registros de un mes. Derivado, nunca
// persistido: se recalcula en cada consulta.
// ══════════════════════════════════════════════════════════════════════════════

// Level clasifica un porcentaje de asistencia para la presentación.
type Level string

const (
	// LevelGood: asistencia de 95% o más.
	LevelGood Level = "good"
	// LevelWarning: asistencia entre 80% y 94%.
	LevelWarning Level = "warning"
	// LevelCritical: asistencia bajo 80%.
	LevelCritical Level = "critical"
)

// LevelFor devuelve la banda del porcentaje dado.
func LevelFor(percentage int) Level {
	switch {
	case percentage >= 95:
		return LevelGood
	case percentage >= 80:
		return LevelWarning
	default:
		return LevelCritical
	}
}

// MonthlyRow es la fila derivada de un alumno en el informe mensual.
type MonthlyRow struct {
	// StudentID identifica al alumno.
	StudentID roster.StudentID `json:"id"`

	// Name es el nombre completo según la nómina.
	Name string `json:"name"`

	// PresentDays es el número de días con presencia registrada.
	PresentDays int `json:"presentDays"`

	// TotalRecordedDays es el número de días del mes en cuyos registros
	// aparece el alumno.
	TotalRecordedDays int `json:"totalRecordedDays"`

	// Percentage es round(PresentDays/TotalRecordedDays*100), o 0 si el
	// alumno no aparece en ningún registro del mes.
	Percentage int `json:"percentage"`

	// Level es la banda de presentación del porcentaje.
	Level Level `json:"level"`
}

// Tally acumula presencias por alumno a lo largo de los registros de un mes.
type Tally struct {
	present map[roster.StudentID]int
	total   map[roster.StudentID]int
}

// NewTally crea un acumulador vacío.
func NewTally() *Tally {
	return &Tally{
		present: make(map[roster.StudentID]int),
		total:   make(map[roster.StudentID]int),
	}
}

// Accumulate suma las entradas de un registro al acumulado. Cada entrada
// incrementa el total del alumno, y su presencia si corresponde. Un registro
// con detalle vacío cuenta como día con registro para el llamador aunque no
// aporte al acumulado.
func (t *Tally) Accumulate(rec *Record) {
	if rec == nil {
		return
	}
	for _, e := range rec.Detail {
		t.total[e.StudentID]++
		if e.Present {
			t.present[e.StudentID]++
		}
	}
}

// Rows produce las filas del informe para todos los alumnos de la nómina,
// no solo los que aparecen en registros. El resultado queda ordenado por
// porcentaje descendente; los empates conservan el orden de la nómina
// (orden estable). Ese orden es una conveniencia de presentación, no una
// garantía semántica.
func (t *Tally) Rows(students []roster.Student) []MonthlyRow {
	rows := make([]MonthlyRow, len(students))
	for i, s := range students {
		total := t.total[s.ID]
		present := t.present[s.ID]
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(present) / float64(total) * 100))
		}
		rows[i] = MonthlyRow{
			StudentID:         s.ID,
			Name:              s.FullName(),
			PresentDays:       present,
			TotalRecordedDays: total,
			Percentage:        pct,
			Level:             LevelFor(pct),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})

	return rows
}
