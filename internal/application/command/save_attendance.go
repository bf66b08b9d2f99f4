// Package command contains write operations (CQRS - Commands).
// There is exactly one: saving a day's attendance. The domain models
// attendance-taking as a one-shot daily action, so no update or delete
// command exists.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/messaging"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE ATTENDANCE COMMAND
// Collects per-student presence input for a date, validates it, and creates
// the day's immutable record. The repository is the single source of truth
// for "is this date locked": a second save for the same date is refused.
// ══════════════════════════════════════════════════════════════════════════════

// EntryInput is one student's presence input as collected by the UI.
type EntryInput struct {
	// StudentID must reference a student in the roster.
	StudentID string

	// Present is the presence flag.
	Present bool

	// Observation is required (non-blank) when Present is false.
	Observation string
}

// SaveAttendanceCommand contains the data to save one day's attendance.
type SaveAttendanceCommand struct {
	// Date is the calendar date in YYYY-MM-DD.
	Date string

	// Entries holds one input per roster student, in any order; the handler
	// reorders them to roster order before persisting.
	Entries []EntryInput
}

// SaveAttendanceResult contains the persisted record and its summary.
type SaveAttendanceResult struct {
	Record       *attendance.Record
	PresentCount int
	AbsentCount  int
}

// SaveAttendanceHandler handles the save attendance use case.
type SaveAttendanceHandler struct {
	repo   attendance.Repository
	roster *roster.Store
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewSaveAttendanceHandler creates a SaveAttendanceHandler.
func NewSaveAttendanceHandler(
	repo attendance.Repository,
	rosterStore *roster.Store,
	bus *messaging.EventBus,
	log *logger.Logger,
) *SaveAttendanceHandler {
	return &SaveAttendanceHandler{
		repo:   repo,
		roster: rosterStore,
		bus:    bus,
		log:    log.With(logger.Component("command.save_attendance")),
	}
}

// Handle validates the input and persists the day's record.
//
// Failure modes, none of which leave a partial record behind:
//   - shared.ErrInvalidDate: the date is not a calendar day
//   - shared.ErrUnknownStudent / shared.ErrInvalidInput: the entry set does
//     not match the roster
//   - *attendance.ValidationFailure: absences missing observations, with
//     every offending student id listed
//   - shared.ErrRecordExists: the date is already locked
func (h *SaveAttendanceHandler) Handle(ctx context.Context, cmd SaveAttendanceCommand) (*SaveAttendanceResult, error) {
	date, err := shared.ParseDayDate(cmd.Date)
	if err != nil {
		return nil, shared.WrapError("command", "SaveAttendance", shared.ErrInvalidFormat,
			"date must be YYYY-MM-DD", err)
	}

	entries, err := h.assembleEntries(cmd.Entries)
	if err != nil {
		return nil, err
	}

	rec, err := h.repo.Create(ctx, date, entries)
	if err != nil {
		h.publishRejection(ctx, date, err)
		return nil, err
	}

	present := rec.PresentCount()
	absent := rec.AbsentCount()

	h.bus.Publish(ctx, shared.NewRecordCreatedEvent(rec.Date.String(), present, absent))
	h.log.Info("attendance record created",
		logger.RecordDate(rec.Date.String()),
		logger.PresentCount(present),
		logger.AbsentCount(absent),
	)

	return &SaveAttendanceResult{
		Record:       rec,
		PresentCount: present,
		AbsentCount:  absent,
	}, nil
}

// assembleEntries maps the raw input onto the roster: one entry per roster
// student, in roster order. Inputs referencing unknown students and rosters
// left without an input both fail before anything touches storage.
func (h *SaveAttendanceHandler) assembleEntries(inputs []EntryInput) ([]attendance.Entry, error) {
	byID := make(map[roster.StudentID]EntryInput, len(inputs))
	for _, in := range inputs {
		id := roster.StudentID(in.StudentID)
		if !h.roster.Contains(id) {
			return nil, shared.WrapError("command", "SaveAttendance", shared.ErrUnknownStudent,
				"unknown student in input", fmt.Errorf("id %q", in.StudentID))
		}
		if _, dup := byID[id]; dup {
			return nil, shared.WrapError("command", "SaveAttendance", shared.ErrInvalidInput,
				"duplicate entry for student", fmt.Errorf("id %q", in.StudentID))
		}
		byID[id] = in
	}

	students := h.roster.List()
	entries := make([]attendance.Entry, 0, len(students))
	for _, s := range students {
		in, ok := byID[s.ID]
		if !ok {
			return nil, shared.WrapError("command", "SaveAttendance", shared.ErrInvalidInput,
				"missing entry for student", fmt.Errorf("id %q", s.ID))
		}
		entries = append(entries, attendance.Entry{
			StudentID:   s.ID,
			Name:        s.FullName(),
			Present:     in.Present,
			Observation: in.Observation,
		})
	}

	return entries, nil
}

func (h *SaveAttendanceHandler) publishRejection(ctx context.Context, date shared.DayDate, err error) {
	reason := "validation_failed"
	if errors.Is(err, shared.ErrAlreadyExists) {
		reason = "already_exists"
	}
	h.bus.Publish(ctx, shared.NewRecordRejectedEvent(date.String(), reason))

	if f, ok := attendance.AsValidationFailure(err); ok {
		ids := make([]string, len(f.StudentIDs))
		for i, id := range f.StudentIDs {
			ids[i] = id.String()
		}
		h.log.Warn("attendance record rejected",
			logger.RecordDate(date.String()),
			logger.String("reason", reason),
			logger.Any("offending_students", ids),
		)
		return
	}

	h.log.Warn("attendance record rejected",
		logger.RecordDate(date.String()),
		logger.String("reason", reason),
		logger.Err(err),
	)
}
