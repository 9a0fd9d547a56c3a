package service

import (
	"context"
	stderrors "errors"
	"time"

	"dayflow/core/config"
	"dayflow/core/errors"
	"dayflow/modules/schedule/dto"
	"dayflow/modules/schedule/entity"
	"dayflow/modules/schedule/repository"

	"github.com/google/uuid"
)

// ScheduleService orchestrates the engine stages over the snapshot
// repository: expand occurrences, detect conflicts, find availability,
// suggest slots. All engine stages are pure; the service owns the boundary.
type ScheduleService struct {
	repo         repository.SnapshotRepositoryInterface
	expander     *RecurrenceExpander
	detector     *ConflictDetector
	availability *AvailabilityFinder
	scheduler    *SmartScheduler
}

// ScheduleServiceInterface defines the service contract
type ScheduleServiceInterface interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context, from, to time.Time) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, id uuid.UUID) *errors.AppError

	CreateTimeBlock(ctx context.Context, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, *errors.AppError)
	GetTimeBlock(ctx context.Context, id uuid.UUID) (*dto.TimeBlockResponse, *errors.AppError)
	UpdateTimeBlock(ctx context.Context, id uuid.UUID, req *dto.UpdateTimeBlockRequest) (*dto.TimeBlockResponse, *errors.AppError)
	DeleteTimeBlock(ctx context.Context, id uuid.UUID) *errors.AppError

	ExpandOccurrences(ctx context.Context, from, to time.Time) (*dto.OccurrencesResponse, *errors.AppError)
	DetectConflicts(ctx context.Context, req *dto.ConflictsRequest) (*dto.ConflictsResponse, *errors.AppError)
	FindAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
	SuggestSlots(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, *errors.AppError)
}

// NewScheduleService creates the service with engine tunables from config.
func NewScheduleService(repo repository.SnapshotRepositoryInterface, cfg config.EngineConfig) ScheduleServiceInterface {
	expander := NewRecurrenceExpander()
	if cfg.MaxExpansionYears > 0 {
		expander.MaxWindowYears = cfg.MaxExpansionYears
	}
	scheduler := NewSmartScheduler()
	if cfg.SuggestionCap > 0 {
		scheduler.SuggestionCap = cfg.SuggestionCap
	}
	if cfg.SlotStepMinutes > 0 {
		scheduler.SlotStepMinutes = cfg.SlotStepMinutes
	}
	return &ScheduleService{
		repo:         repo,
		expander:     expander,
		detector:     NewConflictDetector(),
		availability: NewAvailabilityFinder(),
		scheduler:    scheduler,
	}
}

// CreateEvent validates and stores a new event, then derives its conflicts.
func (s *ScheduleService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ev := &entity.CalendarEvent{
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Type:        req.Type,
		Priority:    req.Priority,
		Status:      req.Status,
		IsRecurring: req.IsRecurring,
		Recurrence:  req.Recurrence,
		TimeZone:    req.TimeZone,
		Attendees:   req.Attendees,
		Reminders:   req.Reminders,
	}
	if req.Description != "" {
		ev.Description = &req.Description
	}
	if req.Location != "" {
		ev.Location = &req.Location
	}
	if req.Color != "" {
		ev.Color = &req.Color
	}
	if ev.Priority == "" {
		ev.Priority = entity.EventPriorityMedium
	}
	if ev.Status == "" {
		ev.Status = entity.EventStatusConfirmed
	}
	ev.NormalizeAllDay()

	if appErr := ev.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateEvent(ctx, ev); err != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "failed to store event", err)
	}
	if appErr := s.refreshEventConflicts(ctx, ev); appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(ev), nil
}

// GetEvent returns an event with freshly derived conflicts.
func (s *ScheduleService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, s.repoError(err, "event not found")
	}
	if appErr := s.refreshEventConflicts(ctx, ev); appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(ev), nil
}

// ListEvents returns the events relevant to [from, to) with conflicts
// derived once over the materialized window.
func (s *ScheduleService) ListEvents(ctx context.Context, from, to time.Time) ([]dto.EventResponse, *errors.AppError) {
	if appErr := validateWindow(from, to); appErr != nil {
		return nil, appErr
	}
	events, err := s.repo.LoadEvents(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	blocks, err := s.repo.LoadTimeBlocks(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load time blocks", err)
	}

	materialized, appErr := s.materialize(events, from, to)
	if appErr != nil {
		return nil, appErr
	}
	byID := groupConflicts(s.detector.Detect(materialized, blocks, entity.ConflictOptions{}))

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		events[i].Conflicts = byID[events[i].ID.String()]
		out = append(out, *dto.ToEventResponse(&events[i]))
	}
	return out, nil
}

// UpdateEvent applies a partial update (move, resize, edit) and re-derives
// conflicts for the changed event.
func (s *ScheduleService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, s.repoError(err, "event not found")
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = req.Description
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = *req.EndTime
	}
	if req.AllDay != nil {
		ev.AllDay = *req.AllDay
	}
	if req.Type != nil {
		ev.Type = *req.Type
	}
	if req.Priority != nil {
		ev.Priority = *req.Priority
	}
	if req.Status != nil {
		ev.Status = *req.Status
	}
	if req.IsRecurring != nil {
		ev.IsRecurring = *req.IsRecurring
	}
	if req.Recurrence != nil {
		ev.Recurrence = req.Recurrence
	}
	if req.TimeZone != nil {
		ev.TimeZone = *req.TimeZone
	}
	if req.Location != nil {
		ev.Location = req.Location
	}
	if req.Color != nil {
		ev.Color = req.Color
	}
	if req.Attendees != nil {
		ev.Attendees = *req.Attendees
	}
	if req.Reminders != nil {
		ev.Reminders = *req.Reminders
	}
	ev.NormalizeAllDay()

	if appErr := ev.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.UpdateEvent(ctx, ev); err != nil {
		return nil, s.repoError(err, "event not found")
	}
	if appErr := s.refreshEventConflicts(ctx, ev); appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(ev), nil
}

// DeleteEvent removes the event from the working set.
func (s *ScheduleService) DeleteEvent(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return s.repoError(err, "event not found")
	}
	return nil
}

func (s *ScheduleService) CreateTimeBlock(ctx context.Context, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, *errors.AppError) {
	b := &entity.TimeBlock{
		Title:         req.Title,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Type:          req.Type,
		IsLocked:      req.IsLocked,
		Flexibility:   req.Flexibility,
		Priority:      req.Priority,
		BufferMinutes: req.BufferMinutes,
	}
	if b.Flexibility == "" {
		b.Flexibility = entity.FlexibilityPreferred
	}
	if b.Priority == 0 {
		b.Priority = 5
	}
	if appErr := b.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateTimeBlock(ctx, b); err != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "failed to store time block", err)
	}
	return dto.ToTimeBlockResponse(b), nil
}

func (s *ScheduleService) GetTimeBlock(ctx context.Context, id uuid.UUID) (*dto.TimeBlockResponse, *errors.AppError) {
	b, err := s.repo.GetTimeBlock(ctx, id)
	if err != nil {
		return nil, s.repoError(err, "time block not found")
	}
	return dto.ToTimeBlockResponse(b), nil
}

func (s *ScheduleService) UpdateTimeBlock(ctx context.Context, id uuid.UUID, req *dto.UpdateTimeBlockRequest) (*dto.TimeBlockResponse, *errors.AppError) {
	b, err := s.repo.GetTimeBlock(ctx, id)
	if err != nil {
		return nil, s.repoError(err, "time block not found")
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		b.EndTime = *req.EndTime
	}
	if req.Type != nil {
		b.Type = *req.Type
	}
	if req.IsLocked != nil {
		b.IsLocked = *req.IsLocked
	}
	if req.Flexibility != nil {
		b.Flexibility = *req.Flexibility
	}
	if req.Priority != nil {
		b.Priority = *req.Priority
	}
	if req.BufferMinutes != nil {
		b.BufferMinutes = *req.BufferMinutes
	}
	if appErr := b.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.UpdateTimeBlock(ctx, b); err != nil {
		return nil, s.repoError(err, "time block not found")
	}
	return dto.ToTimeBlockResponse(b), nil
}

func (s *ScheduleService) DeleteTimeBlock(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteTimeBlock(ctx, id); err != nil {
		return s.repoError(err, "time block not found")
	}
	return nil
}

// ExpandOccurrences materializes every event in the window, recurring rules
// expanded and exceptions applied.
func (s *ScheduleService) ExpandOccurrences(ctx context.Context, from, to time.Time) (*dto.OccurrencesResponse, *errors.AppError) {
	if appErr := validateWindow(from, to); appErr != nil {
		return nil, appErr
	}
	events, err := s.repo.LoadEvents(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	materialized, appErr := s.materialize(events, from, to)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dto.OccurrencesResponse{From: from, To: to, Occurrences: []dto.OccurrenceDTO{}}
	for i := range materialized {
		resp.Occurrences = append(resp.Occurrences, dto.OccurrenceDTO{
			EventID: materialized[i].ID.String(),
			Title:   materialized[i].Title,
			Start:   materialized[i].StartTime,
			End:     materialized[i].EndTime,
		})
	}
	return resp, nil
}

// DetectConflicts flags conflicts over the materialized window.
func (s *ScheduleService) DetectConflicts(ctx context.Context, req *dto.ConflictsRequest) (*dto.ConflictsResponse, *errors.AppError) {
	if appErr := validateWindow(req.From, req.To); appErr != nil {
		return nil, appErr
	}
	events, err := s.repo.LoadEvents(ctx, req.From, req.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	blocks, err := s.repo.LoadTimeBlocks(ctx, req.From, req.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load time blocks", err)
	}
	materialized, appErr := s.materialize(events, req.From, req.To)
	if appErr != nil {
		return nil, appErr
	}
	conflicts := s.detector.Detect(materialized, blocks, entity.ConflictOptions{
		HighEnergyWindows: req.HighEnergyWindows,
	})
	if conflicts == nil {
		conflicts = []entity.ConflictInfo{}
	}
	return &dto.ConflictsResponse{Conflicts: conflicts}, nil
}

// FindAvailability computes free slots in the window.
func (s *ScheduleService) FindAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	if appErr := validateWindow(req.From, req.To); appErr != nil {
		return nil, appErr
	}
	events, err := s.repo.LoadEvents(ctx, req.From, req.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	blocks, err := s.repo.LoadTimeBlocks(ctx, req.From, req.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load time blocks", err)
	}
	materialized, appErr := s.materialize(events, req.From, req.To)
	if appErr != nil {
		return nil, appErr
	}
	minDur := time.Duration(req.MinDurationMinutes) * time.Minute
	slots, appErr := s.availability.FindFreeSlots(materialized, blocks, req.WorkingHours, req.From, req.To, minDur)
	if appErr != nil {
		return nil, appErr
	}
	resp := &dto.AvailabilityResponse{Slots: []dto.FreeSlotDTO{}}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, dto.FreeSlotDTO{Start: slot.Start, End: slot.End})
	}
	return resp, nil
}

// SuggestSlots runs the smart scheduler. An empty suggestion list is a
// legitimate outcome, not an error.
func (s *ScheduleService) SuggestSlots(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, *errors.AppError) {
	from, to := req.Options.SearchStart, req.Options.SearchEnd
	if from.IsZero() {
		from = time.Now()
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 7)
	}
	if appErr := validateWindow(from, to); appErr != nil {
		return nil, appErr
	}
	events, err := s.repo.LoadEvents(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	blocks, err := s.repo.LoadTimeBlocks(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load time blocks", err)
	}
	materialized, appErr := s.materialize(events, from, to)
	if appErr != nil {
		return nil, appErr
	}

	opts := req.Options
	opts.SearchStart = from
	opts.SearchEnd = to
	suggestions, appErr := s.scheduler.Suggest(req.Event, opts, materialized, blocks, req.WorkingHours)
	if appErr != nil {
		return nil, appErr
	}
	if suggestions == nil {
		suggestions = []entity.SchedulingSuggestion{}
	}
	return &dto.SuggestionsResponse{Suggestions: suggestions}, nil
}

// materialize turns the loaded events into the concrete working set for
// [from, to): single events pass through when they intersect the window;
// recurring events are expanded into per-occurrence copies sharing the base
// event's id.
func (s *ScheduleService) materialize(events []entity.CalendarEvent, from, to time.Time) ([]entity.CalendarEvent, *errors.AppError) {
	var out []entity.CalendarEvent
	for i := range events {
		ev := events[i]
		if !ev.IsRecurring || ev.Recurrence == nil {
			if Overlaps(ev.StartTime, ev.EndTime, from, to) {
				out = append(out, ev)
			}
			continue
		}
		occurrences, appErr := s.expander.Expand(ev.Recurrence, ev.StartTime, ev.EndTime, from, to)
		if appErr != nil {
			return nil, appErr
		}
		for _, occ := range occurrences {
			inst := ev
			inst.StartTime = occ.Start
			inst.EndTime = occ.End
			out = append(out, inst)
		}
	}
	return out, nil
}

// refreshEventConflicts re-derives the conflicts involving one event over a
// window padded by a day on each side.
func (s *ScheduleService) refreshEventConflicts(ctx context.Context, ev *entity.CalendarEvent) *errors.AppError {
	from := ev.StartTime.AddDate(0, 0, -1)
	to := ev.EndTime.AddDate(0, 0, 1)

	events, err := s.repo.LoadEvents(ctx, from, to)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	blocks, err := s.repo.LoadTimeBlocks(ctx, from, to)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load time blocks", err)
	}
	materialized, appErr := s.materialize(events, from, to)
	if appErr != nil {
		return appErr
	}
	byID := groupConflicts(s.detector.Detect(materialized, blocks, entity.ConflictOptions{}))
	ev.Conflicts = byID[ev.ID.String()]
	return nil
}

func groupConflicts(conflicts []entity.ConflictInfo) map[string][]entity.ConflictInfo {
	byID := make(map[string][]entity.ConflictInfo)
	for _, c := range conflicts {
		for _, id := range c.ItemIDs {
			byID[id] = append(byID[id], c)
		}
	}
	return byID
}

func validateWindow(from, to time.Time) *errors.AppError {
	if from.IsZero() || to.IsZero() {
		return errors.NewAppError(errors.ErrInsufficientData, "window start and end are required", nil)
	}
	if !to.After(from) {
		return errors.NewAppError(errors.ErrInvalidInterval, "window end must be after start", nil)
	}
	return nil
}

func (s *ScheduleService) repoError(err error, notFoundMsg string) *errors.AppError {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewAppError(errors.ErrNotFound, notFoundMsg, err)
	}
	return errors.NewAppError(errors.ErrInternalServer, "repository failure", err)
}
