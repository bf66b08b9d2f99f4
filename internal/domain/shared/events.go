package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the domain. The set is small on purpose: attendance-taking
// is a one-shot daily action, so most state changes happen at startup or
// at the single daily write.
const (
	// Roster events
	EventRosterLoaded   EventType = "roster.loaded"
	EventRosterFallback EventType = "roster.fallback_used"

	// Attendance events
	EventRecordCreated  EventType = "attendance.record_created"
	EventRecordRejected EventType = "attendance.record_rejected"
	EventRecordCorrupt  EventType = "attendance.record_corrupt"

	// Report events
	EventMonthlyReportBuilt EventType = "report.monthly_built"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventID returns the unique identifier of this event instance.
	EventID() string

	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// EventID implements Event interface.
func (e BaseEvent) EventID() string { return e.ID }

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a new base event with a fresh identifier.
func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
	}
}

// RosterLoadedEvent is emitted once at startup after the roster is loaded.
type RosterLoadedEvent struct {
	BaseEvent
	StudentCount int  `json:"student_count"`
	UsedFallback bool `json:"used_fallback"`
}

// NewRosterLoadedEvent creates a RosterLoadedEvent.
func NewRosterLoadedEvent(count int, fallback bool) RosterLoadedEvent {
	t := EventRosterLoaded
	if fallback {
		t = EventRosterFallback
	}
	return RosterLoadedEvent{
		BaseEvent:    NewBaseEvent(t),
		StudentCount: count,
		UsedFallback: fallback,
	}
}

// RecordCreatedEvent is emitted when a day's attendance record is persisted.
type RecordCreatedEvent struct {
	BaseEvent
	Date         string `json:"date"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
}

// NewRecordCreatedEvent creates a RecordCreatedEvent.
func NewRecordCreatedEvent(date string, present, absent int) RecordCreatedEvent {
	return RecordCreatedEvent{
		BaseEvent:    NewBaseEvent(EventRecordCreated),
		Date:         date,
		PresentCount: present,
		AbsentCount:  absent,
	}
}

// RecordCorruptEvent is emitted when a stored record cannot be parsed.
// The read path treats the day as absent; the event is the audit trail.
type RecordCorruptEvent struct {
	BaseEvent
	Date string `json:"date"`
}

// NewRecordCorruptEvent creates a RecordCorruptEvent.
func NewRecordCorruptEvent(date string) RecordCorruptEvent {
	return RecordCorruptEvent{
		BaseEvent: NewBaseEvent(EventRecordCorrupt),
		Date:      date,
	}
}

// MonthlyReportBuiltEvent is emitted after a monthly report is computed.
type MonthlyReportBuiltEvent struct {
	BaseEvent
	Period          string `json:"period"`
	DaysWithRecords int    `json:"days_with_records"`
}

// NewMonthlyReportBuiltEvent creates a MonthlyReportBuiltEvent.
func NewMonthlyReportBuiltEvent(period string, daysWithRecords int) MonthlyReportBuiltEvent {
	return MonthlyReportBuiltEvent{
		BaseEvent:       NewBaseEvent(EventMonthlyReportBuilt),
		Period:          period,
		DaysWithRecords: daysWithRecords,
	}
}

// RecordRejectedEvent is emitted when a save attempt is refused, either
// because validation failed or because the date is already locked.
type RecordRejectedEvent struct {
	BaseEvent
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// NewRecordRejectedEvent creates a RecordRejectedEvent.
func NewRecordRejectedEvent(date, reason string) RecordRejectedEvent {
	return RecordRejectedEvent{
		BaseEvent: NewBaseEvent(EventRecordRejected),
		Date:      date,
		Reason:    reason,
	}
}
