package dto

import (
	"time"

	"dayflow/modules/schedule/entity"
)

// CreateEventRequest is the payload for creating a calendar event.
// Conflicts are never accepted from input; they are derived.
type CreateEventRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     time.Time              `json:"end_time"`
	AllDay      bool                   `json:"all_day"`
	Type        entity.EventType       `json:"type"`
	Priority    entity.EventPriority   `json:"priority,omitempty"`
	Status      entity.EventStatus     `json:"status,omitempty"`
	IsRecurring bool                   `json:"is_recurring"`
	Recurrence  *entity.RecurrenceRule `json:"recurrence,omitempty"`
	TimeZone    string                 `json:"time_zone,omitempty"`
	Location    string                 `json:"location,omitempty"`
	Color       string                 `json:"color,omitempty"`
	Attendees   []string               `json:"attendees,omitempty"`
	Reminders   []entity.Reminder      `json:"reminders,omitempty"`
}

// UpdateEventRequest carries a partial update (move, resize, edit).
// Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	StartTime   *time.Time             `json:"start_time,omitempty"`
	EndTime     *time.Time             `json:"end_time,omitempty"`
	AllDay      *bool                  `json:"all_day,omitempty"`
	Type        *entity.EventType      `json:"type,omitempty"`
	Priority    *entity.EventPriority  `json:"priority,omitempty"`
	Status      *entity.EventStatus    `json:"status,omitempty"`
	IsRecurring *bool                  `json:"is_recurring,omitempty"`
	Recurrence  *entity.RecurrenceRule `json:"recurrence,omitempty"`
	TimeZone    *string                `json:"time_zone,omitempty"`
	Location    *string                `json:"location,omitempty"`
	Color       *string                `json:"color,omitempty"`
	Attendees   *[]string              `json:"attendees,omitempty"`
	Reminders   *[]entity.Reminder     `json:"reminders,omitempty"`
}

// EventResponse is the event as returned to callers, conflicts included.
type EventResponse struct {
	entity.CalendarEvent
}

func ToEventResponse(ev *entity.CalendarEvent) *EventResponse {
	return &EventResponse{CalendarEvent: *ev}
}

// CreateTimeBlockRequest is the payload for creating a time block.
type CreateTimeBlockRequest struct {
	Title         string             `json:"title"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	Type          entity.BlockType   `json:"type"`
	IsLocked      bool               `json:"is_locked"`
	Flexibility   entity.Flexibility `json:"flexibility,omitempty"`
	Priority      int                `json:"priority"`
	BufferMinutes int                `json:"buffer_minutes"`
}

// UpdateTimeBlockRequest carries a partial time block update.
type UpdateTimeBlockRequest struct {
	Title         *string             `json:"title,omitempty"`
	StartTime     *time.Time          `json:"start_time,omitempty"`
	EndTime       *time.Time          `json:"end_time,omitempty"`
	Type          *entity.BlockType   `json:"type,omitempty"`
	IsLocked      *bool               `json:"is_locked,omitempty"`
	Flexibility   *entity.Flexibility `json:"flexibility,omitempty"`
	Priority      *int                `json:"priority,omitempty"`
	BufferMinutes *int                `json:"buffer_minutes,omitempty"`
}

// TimeBlockResponse is the block as returned to callers.
type TimeBlockResponse struct {
	entity.TimeBlock
}

func ToTimeBlockResponse(b *entity.TimeBlock) *TimeBlockResponse {
	return &TimeBlockResponse{TimeBlock: *b}
}

// WindowRequest bounds a query to [From, To).
type WindowRequest struct {
	From time.Time `json:"from" query:"from"`
	To   time.Time `json:"to" query:"to"`
}

// OccurrenceDTO is one materialized instance of a (possibly recurring) event.
type OccurrenceDTO struct {
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// OccurrencesResponse lists materialized occurrences in a window.
type OccurrencesResponse struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Occurrences []OccurrenceDTO `json:"occurrences"`
}

// ConflictsRequest asks for conflict detection over a window.
type ConflictsRequest struct {
	From              time.Time                   `json:"from"`
	To                time.Time                   `json:"to"`
	HighEnergyWindows []entity.TimeSlotPreference `json:"high_energy_windows,omitempty"`
}

// ConflictsResponse lists the detected conflicts, order-stable.
type ConflictsResponse struct {
	Conflicts []entity.ConflictInfo `json:"conflicts"`
}

// AvailabilityRequest asks for free slots in a window.
type AvailabilityRequest struct {
	From               time.Time           `json:"from"`
	To                 time.Time           `json:"to"`
	WorkingHours       entity.WorkingHours `json:"working_hours"`
	MinDurationMinutes int                 `json:"min_duration_minutes"`
}

// FreeSlotDTO is one free interval.
type FreeSlotDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResponse lists the free slots found.
type AvailabilityResponse struct {
	Slots []FreeSlotDTO `json:"slots"`
}

// SuggestionsRequest asks the smart scheduler for ranked slot suggestions.
type SuggestionsRequest struct {
	Event        entity.QuickEventData         `json:"event"`
	Options      entity.SmartSchedulingOptions `json:"options"`
	WorkingHours entity.WorkingHours           `json:"working_hours"`
}

// SuggestionsResponse lists ranked suggestions, best first. Empty is a
// legitimate result, not an error.
type SuggestionsResponse struct {
	Suggestions []entity.SchedulingSuggestion `json:"suggestions"`
}
