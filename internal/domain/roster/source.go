package roster

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// SOURCE
// Contrato de la fuente externa de la nómina. Las implementaciones viven en
// infrastructure (documento JSON, tabla PostgreSQL).
// ══════════════════════════════════════════════════════════════════════════════

// Source define la fuente de datos de la nómina, consultada una sola vez
// al inicio de la aplicación.
type Source interface {
	// Load devuelve la secuencia de alumnos en el orden estable de la fuente.
	// Devuelve un error que envuelve shared.ErrSourceUnavailable si la fuente
	// es inalcanzable o el documento está malformado; en ese caso el llamador
	// sustituye la nómina de respaldo en vez de presentar una lista vacía.
	Load(ctx context.Context) ([]Student, error)
}
