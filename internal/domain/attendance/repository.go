package attendance

import (
	"context"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY
// Contrato de persistencia de registros diarios, con clave por fecha.
// Las implementaciones viven en infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository define las operaciones sobre los registros de asistencia.
// El dominio modela la toma de asistencia como acción diaria irrepetible:
// no existe update ni delete; corregir un error requiere una vía
// administrativa fuera de este contrato.
type Repository interface {
	// Get devuelve el registro de la fecha dada.
	// Devuelve shared.ErrRecordNotFound si no existe registro para la fecha,
	// o shared.ErrRecordCorrupt si el dato almacenado para esa clave no se
	// puede interpretar; los llamadores tratan la corrupción como ausencia
	// para esa fecha (registrándola en el log) sin abortar la operación.
	Get(ctx context.Context, date shared.DayDate) (*Record, error)

	// Create valida y persiste el registro del día con la marca de tiempo
	// actual, y lo devuelve. La verificación de existencia y la escritura
	// forman una sola operación lógica: devuelve shared.ErrRecordExists si
	// la fecha ya está bloqueada (nunca sobreescribe en silencio), y
	// *ValidationFailure si el detalle no pasa el validador, sin persistir
	// nada parcial.
	Create(ctx context.Context, date shared.DayDate, entries []Entry) (*Record, error)

	// CountRecords devuelve cuántos días tienen registro almacenado.
	CountRecords(ctx context.Context) (int, error)
}
