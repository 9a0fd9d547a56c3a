package entity

import (
	"testing"
	"time"

	"dayflow/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() CalendarEvent {
	return CalendarEvent{
		Title:     "standup",
		StartTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Type:      EventTypeMeeting,
		Priority:  EventPriorityMedium,
		Status:    EventStatusConfirmed,
	}
}

func TestEventValidate(t *testing.T) {
	ev := validEvent()
	assert.Nil(t, ev.Validate())
}

func TestEventValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CalendarEvent)
		code   errors.ErrorCode
	}{
		{"missing title", func(e *CalendarEvent) { e.Title = "" }, errors.ErrInsufficientData},
		{"end before start", func(e *CalendarEvent) { e.EndTime = e.StartTime.Add(-time.Hour) }, errors.ErrInvalidInterval},
		{"zero length", func(e *CalendarEvent) { e.EndTime = e.StartTime }, errors.ErrInvalidInterval},
		{"unknown type", func(e *CalendarEvent) { e.Type = "party" }, errors.ErrInvalidInput},
		{"unknown priority", func(e *CalendarEvent) { e.Priority = "extreme" }, errors.ErrInvalidInput},
		{"unknown status", func(e *CalendarEvent) { e.Status = "paused" }, errors.ErrInvalidInput},
		{"bad time zone", func(e *CalendarEvent) { e.TimeZone = "Mars/Olympus" }, errors.ErrInvalidInput},
		{"recurring without rule", func(e *CalendarEvent) { e.IsRecurring = true }, errors.ErrInsufficientData},
		{"negative reminder", func(e *CalendarEvent) { e.Reminders = []Reminder{{MinutesBefore: -5}} }, errors.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := validEvent()
			tc.mutate(&ev)
			appErr := ev.Validate()
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestEventValidate_RecurringRuleChecked(t *testing.T) {
	ev := validEvent()
	ev.IsRecurring = true
	ev.Recurrence = &RecurrenceRule{Frequency: "hourly", Interval: 1}

	appErr := ev.Validate()
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrMalformedRecurrenceRule, appErr.Code)
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 1, EventPriorityLow.Weight())
	assert.Equal(t, 2, EventPriorityMedium.Weight())
	assert.Equal(t, 3, EventPriorityHigh.Weight())
	assert.Equal(t, 4, EventPriorityUrgent.Weight())
	assert.Equal(t, 2, EventPriority("").Weight(), "unset priority defaults to medium")
}

func TestIsBusy(t *testing.T) {
	ev := validEvent()
	assert.True(t, ev.IsBusy())
	ev.Status = EventStatusTentative
	assert.True(t, ev.IsBusy())
	ev.Status = EventStatusCancelled
	assert.False(t, ev.IsBusy())
}

func TestNormalizeAllDay(t *testing.T) {
	ev := validEvent()
	ev.AllDay = true
	ev.StartTime = time.Date(2024, 1, 1, 14, 23, 0, 0, time.UTC)
	ev.EndTime = time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	ev.NormalizeAllDay()
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ev.StartTime)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ev.EndTime)
}

func TestNormalizeAllDay_UsesEventZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ev := validEvent()
	ev.AllDay = true
	ev.TimeZone = "America/New_York"
	// 02:00 UTC on Jan 2 is still Jan 1 evening in New York.
	ev.StartTime = time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC)
	ev.EndTime = ev.StartTime.Add(time.Hour)

	ev.NormalizeAllDay()
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), ev.StartTime)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), ev.EndTime)
}

func TestNormalizeAllDay_NoopForTimedEvents(t *testing.T) {
	ev := validEvent()
	start, end := ev.StartTime, ev.EndTime
	ev.NormalizeAllDay()
	assert.Equal(t, start, ev.StartTime)
	assert.Equal(t, end, ev.EndTime)
}
