package entity

import (
	"time"

	"dayflow/core/errors"

	"github.com/google/uuid"
)

// EventType classifies a calendar event
type EventType string

const (
	EventTypeMeeting     EventType = "meeting"
	EventTypeAppointment EventType = "appointment"
	EventTypeDeadline    EventType = "deadline"
	EventTypeReminder    EventType = "reminder"
	EventTypeTask        EventType = "task"
	EventTypeBreak       EventType = "break"
	EventTypePersonal    EventType = "personal"
	EventTypeWork        EventType = "work"
	EventTypeTravel      EventType = "travel"
)

// EventPriority represents event importance
type EventPriority string

const (
	EventPriorityLow    EventPriority = "low"
	EventPriorityMedium EventPriority = "medium"
	EventPriorityHigh   EventPriority = "high"
	EventPriorityUrgent EventPriority = "urgent"
)

// Weight maps a priority onto the 1-4 scale used for conflict severity.
func (p EventPriority) Weight() int {
	switch p {
	case EventPriorityLow:
		return 1
	case EventPriorityHigh:
		return 3
	case EventPriorityUrgent:
		return 4
	default:
		return 2
	}
}

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusTentative EventStatus = "tentative"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Reminder is a notification offset attached to an event
type Reminder struct {
	MinutesBefore int  `json:"minutes_before"`
	Enabled       bool `json:"enabled"`
}

// CalendarEvent is a concrete entry on the timeline. Conflicts is always
// derived by the conflict detector; input values are discarded.
type CalendarEvent struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	AllDay      bool            `json:"all_day"`
	Type        EventType       `json:"type"`
	Priority    EventPriority   `json:"priority"`
	Status      EventStatus     `json:"status"`
	IsRecurring bool            `json:"is_recurring"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty"`
	TimeZone    string          `json:"time_zone"`
	Location    *string         `json:"location,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Attendees   []string        `json:"attendees,omitempty"`
	Reminders   []Reminder      `json:"reminders,omitempty"`
	Conflicts   []ConflictInfo  `json:"conflicts,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var validEventTypes = map[EventType]bool{
	EventTypeMeeting: true, EventTypeAppointment: true, EventTypeDeadline: true,
	EventTypeReminder: true, EventTypeTask: true, EventTypeBreak: true,
	EventTypePersonal: true, EventTypeWork: true, EventTypeTravel: true,
}

var validEventStatuses = map[EventStatus]bool{
	EventStatusTentative: true, EventStatusConfirmed: true,
	EventStatusCancelled: true, EventStatusCompleted: true,
}

var validEventPriorities = map[EventPriority]bool{
	EventPriorityLow: true, EventPriorityMedium: true,
	EventPriorityHigh: true, EventPriorityUrgent: true,
}

// Validate checks the event invariants at construction time.
func (e *CalendarEvent) Validate() *errors.AppError {
	if e.Title == "" {
		return errors.NewAppError(errors.ErrInsufficientData, "event title is required", nil)
	}
	if !e.EndTime.After(e.StartTime) {
		return errors.NewAppError(errors.ErrInvalidInterval, "event start time must be before end time", nil)
	}
	if !validEventTypes[e.Type] {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown event type", nil)
	}
	if e.Priority != "" && !validEventPriorities[e.Priority] {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown event priority", nil)
	}
	if e.Status != "" && !validEventStatuses[e.Status] {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown event status", nil)
	}
	if e.TimeZone != "" {
		if _, err := time.LoadLocation(e.TimeZone); err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "time zone must be a valid IANA identifier", err)
		}
	}
	if e.IsRecurring {
		if e.Recurrence == nil {
			return errors.NewAppError(errors.ErrInsufficientData, "recurring event requires a recurrence rule", nil)
		}
		if appErr := e.Recurrence.Validate(); appErr != nil {
			return appErr
		}
	}
	for _, r := range e.Reminders {
		if r.MinutesBefore < 0 {
			return errors.NewAppError(errors.ErrInvalidInput, "reminder offset must be non-negative", nil)
		}
	}
	return nil
}

// IsBusy reports whether the event occupies timeline space for conflict and
// availability purposes. Cancelled events never do.
func (e *CalendarEvent) IsBusy() bool {
	return e.Status != EventStatusCancelled
}

// Duration returns the event length.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// NormalizeAllDay expands an all-day event to its implicit
// midnight-to-midnight interval in the event's zone.
func (e *CalendarEvent) NormalizeAllDay() {
	if !e.AllDay {
		return
	}
	loc := time.UTC
	if e.TimeZone != "" {
		if l, err := time.LoadLocation(e.TimeZone); err == nil {
			loc = l
		}
	}
	start := e.StartTime.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e.StartTime = day
	e.EndTime = day.AddDate(0, 0, 1)
}
