package query

import (
	"context"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYSTEM INFO QUERY
// Roster size and number of stored attendance days, for the administrative
// "información del sistema" panel.
// ══════════════════════════════════════════════════════════════════════════════

// SystemInfoResult describes the current dataset.
type SystemInfoResult struct {
	// Students is the roster size.
	Students int `json:"students"`

	// RecordedDays is the number of days with a stored record.
	RecordedDays int `json:"recordedDays"`

	// Version is the application version.
	Version string `json:"version"`
}

// SystemInfoHandler handles system info queries.
type SystemInfoHandler struct {
	repo    attendance.Repository
	roster  *roster.Store
	version string
}

// NewSystemInfoHandler creates a SystemInfoHandler.
func NewSystemInfoHandler(repo attendance.Repository, rosterStore *roster.Store, version string) *SystemInfoHandler {
	return &SystemInfoHandler{
		repo:    repo,
		roster:  rosterStore,
		version: version,
	}
}

// Handle returns the dataset counters.
func (h *SystemInfoHandler) Handle(ctx context.Context) (*SystemInfoResult, error) {
	recorded, err := h.repo.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &SystemInfoResult{
		Students:     h.roster.Count(),
		RecordedDays: recorded,
		Version:      h.version,
	}, nil
}
