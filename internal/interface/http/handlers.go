package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aula-hub/libro-de-clases/internal/application/command"
	"github.com/aula-hub/libro-de-clases/internal/application/query"
	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
	"github.com/aula-hub/libro-de-clases/pkg/timeutil"
)

// validate checks inbound request DTOs before they reach the application
// layer. Domain rules (observations, roster membership, write-once) are
// still enforced there; this only rejects malformed payloads early.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DTOs
// ══════════════════════════════════════════════════════════════════════════════

type attendanceEntryRequest struct {
	StudentID   string `json:"id" validate:"required,max=32"`
	Present     bool   `json:"present"`
	Observation string `json:"observation" validate:"max=500"`
}

type saveAttendanceRequest struct {
	Date   string                   `json:"date" validate:"required,datetime=2006-01-02"`
	Detail []attendanceEntryRequest `json:"detail" validate:"required,min=1,dive"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"service": "libro-de-clases",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	storage := "ok"

	if s.deps.Storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Storage.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			storage = "unavailable"
		}
	}

	writeJSON(w, r, status, map[string]interface{}{
		"status":  statusWord(status),
		"storage": storage,
		"uptime":  s.Uptime().String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.handleHealth(w, r)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetAttendance returns the record for one date. A date without a
// record answers 200 with found=false so the client can open the editable
// register instead of treating it as an error.
func (s *Server) handleGetAttendance(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	result, err := s.deps.GetDailyRecord.Handle(r.Context(), query.GetDailyRecordQuery{Date: date})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// handleSaveAttendance creates the immutable record for one date.
func (s *Server) handleSaveAttendance(w http.ResponseWriter, r *http.Request) {
	var req saveAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body failed validation", validationDetails(err)...)
		return
	}

	cmd := command.SaveAttendanceCommand{Date: req.Date}
	for _, e := range req.Detail {
		cmd.Entries = append(cmd.Entries, command.EntryInput{
			StudentID:   e.StudentID,
			Present:     e.Present,
			Observation: e.Observation,
		})
	}

	result, err := s.deps.SaveAttendance.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"record":  result.Record,
		"present": result.PresentCount,
		"absent":  result.AbsentCount,
	})
}

// handleMonthlyReport answers GET /api/v1/reports/monthly?year=YYYY&month=M.
// A period query parameter in YYYY-MM form is accepted as an alternative.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year := getQueryParamInt(r, "year", 0)
	month := getQueryParamInt(r, "month", 0)

	if p := r.URL.Query().Get("period"); p != "" {
		parsed, err := timeutil.ParsePeriod(p)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_period", "period must be YYYY-MM")
			return
		}
		year, month = parsed.Year(), int(parsed.Month())
	}

	result, err := s.deps.MonthlyReport.Handle(r.Context(), query.MonthlyReportQuery{
		Year:  year,
		Month: month,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER & SYSTEM HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type rosterStudentResponse struct {
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

func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	students := s.deps.Roster.List()

	out := make([]rosterStudentResponse, 0, len(students))
	for _, st := range students {
		out = append(out, rosterStudentResponse{
			ID:              st.ID.String(),
			Nombre:          st.Nombre,
			ApellidoPaterno: st.ApellidoPaterno,
			ApellidoMaterno: st.ApellidoMaterno,
			FechaNacimiento: st.FechaNacimiento.String(),
			Curso:           st.Curso,
			Apoderado:       st.Apoderado,
			Contacto:        st.Contacto,
			Foto:            st.Foto,
		})
	}

	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"students": out,
		"count":    len(out),
	})
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.SystemInfo.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeDomainError translates domain errors into HTTP responses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	// Incomplete absence observations carry the full offender list.
	if f, ok := attendance.AsValidationFailure(err); ok {
		ids := make([]string, len(f.StudentIDs))
		for i, id := range f.StudentIDs {
			ids[i] = id.String()
		}
		writeJSONError(w, http.StatusUnprocessableEntity, "observation_required",
			"Absent students require a non-empty observation", ids...)
		return
	}

	switch {
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "record_exists",
			"Attendance for this date is already registered and cannot be changed")
	case errors.Is(err, shared.ErrInvalidPeriod):
		writeJSONError(w, http.StatusBadRequest, "invalid_period", "Month must be 1-12 and year positive")
	case errors.Is(err, shared.ErrInvalidFormat),
		errors.Is(err, shared.ErrInvalidDate),
		errors.Is(err, shared.ErrInvalidID),
		errors.Is(err, shared.ErrInvalidInput),
		shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
	case shared.IsSourceUnavailable(err):
		writeJSONError(w, http.StatusServiceUnavailable, "source_unavailable", "Backing data source is unavailable")
	default:
		s.logger.Error("unhandled error in http handler", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}

// validationDetails flattens validator errors into field messages.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Namespace()+": failed "+fe.Tag())
	}
	return out
}
