package service

import (
	"context"
	"testing"
	"time"

	"dayflow/core/config"
	"dayflow/core/errors"
	"dayflow/modules/schedule/dto"
	"dayflow/modules/schedule/entity"
	"dayflow/modules/schedule/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() ScheduleServiceInterface {
	return NewScheduleService(repository.NewSnapshotRepository(), config.EngineConfig{})
}

func eventReq(title string, start, end time.Time) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Type:      entity.EventTypeMeeting,
	}
}

func TestCreateEvent_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, appErr := svc.CreateEvent(ctx, eventReq("standup", at(9, 0), at(9, 30)))
	require.Nil(t, appErr)
	assert.Equal(t, entity.EventPriorityMedium, resp.Priority)
	assert.Equal(t, entity.EventStatusConfirmed, resp.Status)
	assert.NotEqual(t, "", resp.ID.String())
}

func TestCreateEvent_ValidationFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.CreateEvent(ctx, eventReq("", at(9, 0), at(10, 0)))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInsufficientData, appErr.Code)

	_, appErr = svc.CreateEvent(ctx, eventReq("backwards", at(10, 0), at(9, 0)))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInterval, appErr.Code)
}

func TestCreateEvent_DerivesConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.CreateEvent(ctx, eventReq("first", at(9, 0), at(10, 0)))
	require.Nil(t, appErr)

	second, appErr := svc.CreateEvent(ctx, eventReq("second", at(9, 30), at(10, 30)))
	require.Nil(t, appErr)
	require.Len(t, second.Conflicts, 1)
	assert.Equal(t, entity.ConflictTypeOverlap, second.Conflicts[0].Type)
	assert.Equal(t, entity.SeverityMedium, second.Conflicts[0].Severity)
}

func TestCreateEvent_NormalizesAllDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := eventReq("holiday", at(14, 0), at(15, 0))
	req.AllDay = true
	req.Type = entity.EventTypePersonal

	resp, appErr := svc.CreateEvent(ctx, req)
	require.Nil(t, appErr)
	assert.Equal(t, at(0, 0), resp.StartTime)
	assert.Equal(t, at(0, 0).AddDate(0, 0, 1), resp.EndTime)
}

func TestUpdateEvent_PartialMove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, appErr := svc.CreateEvent(ctx, eventReq("standup", at(9, 0), at(9, 30)))
	require.Nil(t, appErr)

	newStart, newEnd := at(11, 0), at(11, 30)
	updated, appErr := svc.UpdateEvent(ctx, created.ID, &dto.UpdateEventRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.Nil(t, appErr)
	assert.Equal(t, newStart, updated.StartTime)
	assert.Equal(t, "standup", updated.Title, "unset fields stay untouched")
}

func TestUpdateEvent_MoveClearsConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.CreateEvent(ctx, eventReq("first", at(9, 0), at(10, 0)))
	require.Nil(t, appErr)
	second, appErr := svc.CreateEvent(ctx, eventReq("second", at(9, 30), at(10, 30)))
	require.Nil(t, appErr)
	require.NotEmpty(t, second.Conflicts)

	newStart, newEnd := at(14, 0), at(15, 0)
	moved, appErr := svc.UpdateEvent(ctx, second.ID, &dto.UpdateEventRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.Nil(t, appErr)
	assert.Empty(t, moved.Conflicts, "moving away resolves the overlap")
}

func TestEventLifecycle_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, appErr := svc.CreateEvent(ctx, eventReq("temp", at(9, 0), at(10, 0)))
	require.Nil(t, appErr)
	require.Nil(t, svc.DeleteEvent(ctx, created.ID))

	_, appErr = svc.GetEvent(ctx, created.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	appErr = svc.DeleteEvent(ctx, created.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateTimeBlock_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, appErr := svc.CreateTimeBlock(ctx, &dto.CreateTimeBlockRequest{
		Title:     "deep work",
		StartTime: at(9, 0),
		EndTime:   at(11, 0),
		Type:      entity.BlockTypeFocus,
	})
	require.Nil(t, appErr)
	assert.Equal(t, entity.FlexibilityPreferred, resp.Flexibility)
	assert.Equal(t, 5, resp.Priority)
}

func TestUpdateTimeBlock_Partial(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, appErr := svc.CreateTimeBlock(ctx, &dto.CreateTimeBlockRequest{
		Title:     "deep work",
		StartTime: at(9, 0),
		EndTime:   at(11, 0),
		Type:      entity.BlockTypeFocus,
	})
	require.Nil(t, appErr)

	locked := true
	updated, appErr := svc.UpdateTimeBlock(ctx, created.ID, &dto.UpdateTimeBlockRequest{IsLocked: &locked})
	require.Nil(t, appErr)
	assert.True(t, updated.IsLocked)
	assert.Equal(t, "deep work", updated.Title)
}

func TestExpandOccurrences_MaterializesRecurring(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := eventReq("weekly sync", at(9, 0), at(10, 0))
	req.IsRecurring = true
	req.Recurrence = &entity.RecurrenceRule{Frequency: entity.FrequencyWeekly, Interval: 1}
	created, appErr := svc.CreateEvent(ctx, req)
	require.Nil(t, appErr)

	resp, appErr := svc.ExpandOccurrences(ctx, at(0, 0), at(0, 0).AddDate(0, 0, 21))
	require.Nil(t, appErr)
	require.Len(t, resp.Occurrences, 3)
	for i, occ := range resp.Occurrences {
		assert.Equal(t, created.ID.String(), occ.EventID, "occurrences share the base event id")
		assert.Equal(t, at(9, 0).AddDate(0, 0, 7*i), occ.Start)
	}
}

func TestExpandOccurrences_WindowRequired(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.ExpandOccurrences(ctx, time.Time{}, at(0, 0))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInsufficientData, appErr.Code)

	_, appErr = svc.ExpandOccurrences(ctx, at(10, 0), at(9, 0))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInterval, appErr.Code)
}

func TestDetectConflicts_IncludesRecurringInstances(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	weekly := eventReq("weekly sync", at(9, 0), at(10, 0))
	weekly.IsRecurring = true
	weekly.Recurrence = &entity.RecurrenceRule{Frequency: entity.FrequencyWeekly, Interval: 1}
	_, appErr := svc.CreateEvent(ctx, weekly)
	require.Nil(t, appErr)

	// Clashes with the second occurrence, a week after the anchor.
	clash := eventReq("review", at(9, 30).AddDate(0, 0, 7), at(10, 30).AddDate(0, 0, 7))
	_, appErr = svc.CreateEvent(ctx, clash)
	require.Nil(t, appErr)

	resp, appErr := svc.DetectConflicts(ctx, &dto.ConflictsRequest{
		From: at(0, 0).AddDate(0, 0, 5),
		To:   at(0, 0).AddDate(0, 0, 10),
	})
	require.Nil(t, appErr)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, entity.ConflictTypeOverlap, resp.Conflicts[0].Type)
}

func TestDetectConflicts_EmptyWindowIsEmptyList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, appErr := svc.DetectConflicts(ctx, &dto.ConflictsRequest{From: at(0, 0), To: at(0, 0).AddDate(0, 0, 1)})
	require.Nil(t, appErr)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestFindAvailability_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.CreateEvent(ctx, eventReq("sync", at(10, 0), at(11, 0)))
	require.Nil(t, appErr)

	resp, appErr := svc.FindAvailability(ctx, &dto.AvailabilityRequest{
		From: at(0, 0),
		To:   at(0, 0).AddDate(0, 0, 1),
		WorkingHours: entity.WorkingHours{
			Enabled:     true,
			Start:       "09:00",
			End:         "17:00",
			WorkingDays: []int{1, 2, 3, 4, 5},
		},
	})
	require.Nil(t, appErr)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
	assert.Equal(t, at(10, 0), resp.Slots[0].End)
	assert.Equal(t, at(11, 0), resp.Slots[1].Start)
	assert.Equal(t, at(17, 0), resp.Slots[1].End)
}

func TestSuggestSlots_EmptyCalendarStillSuggests(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, appErr := svc.SuggestSlots(ctx, &dto.SuggestionsRequest{
		Event: entity.QuickEventData{Title: "focus", DurationMinutes: 60},
		Options: entity.SmartSchedulingOptions{
			SearchStart:      at(0, 0),
			SearchEnd:        at(0, 0).AddDate(0, 0, 1),
			WorkingHoursOnly: true,
		},
		WorkingHours: entity.WorkingHours{
			Enabled:     true,
			Start:       "09:00",
			End:         "17:00",
			WorkingDays: []int{1, 2, 3, 4, 5},
		},
	})
	require.Nil(t, appErr)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestSuggestSlots_FullyBookedWindowReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, appErr := svc.CreateEvent(ctx, eventReq("offsite", at(9, 0), at(17, 0)))
	require.Nil(t, appErr)

	resp, appErr := svc.SuggestSlots(ctx, &dto.SuggestionsRequest{
		Event: entity.QuickEventData{Title: "deep work", DurationMinutes: 120},
		Options: entity.SmartSchedulingOptions{
			SearchStart:      at(0, 0),
			SearchEnd:        at(0, 0).AddDate(0, 0, 1),
			WorkingHoursOnly: true,
		},
		WorkingHours: entity.WorkingHours{
			Enabled:     true,
			Start:       "09:00",
			End:         "17:00",
			WorkingDays: []int{1, 2, 3, 4, 5},
		},
	})
	require.Nil(t, appErr)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}
