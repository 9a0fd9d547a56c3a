package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dayflow/modules/schedule/entity"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an item is not in the snapshot.
var ErrNotFound = fmt.Errorf("not found")

// SnapshotRepositoryInterface supplies the engine's working set for a
// window. The engine never talks to durable storage; callers hydrate the
// snapshot at the boundary.
type SnapshotRepositoryInterface interface {
	LoadEvents(ctx context.Context, from, to time.Time) ([]entity.CalendarEvent, error)
	LoadTimeBlocks(ctx context.Context, from, to time.Time) ([]entity.TimeBlock, error)

	CreateEvent(ctx context.Context, ev *entity.CalendarEvent) error
	GetEvent(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error)
	UpdateEvent(ctx context.Context, ev *entity.CalendarEvent) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateTimeBlock(ctx context.Context, b *entity.TimeBlock) error
	GetTimeBlock(ctx context.Context, id uuid.UUID) (*entity.TimeBlock, error)
	UpdateTimeBlock(ctx context.Context, b *entity.TimeBlock) error
	DeleteTimeBlock(ctx context.Context, id uuid.UUID) error

	// PruneBefore drops finished items whose end time is before cutoff.
	// Returns the number of removed items.
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// SnapshotRepository is the in-memory working set. The mutex guards the
// caller boundary; engine computations stay pure over copies.
type SnapshotRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]entity.CalendarEvent
	blocks map[uuid.UUID]entity.TimeBlock
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		events: make(map[uuid.UUID]entity.CalendarEvent),
		blocks: make(map[uuid.UUID]entity.TimeBlock),
	}
}

// LoadEvents returns copies of the events relevant to [from, to): events
// whose own interval intersects the window, plus recurring events whose rule
// has not terminated before the window (their occurrences may fall inside).
func (r *SnapshotRepository) LoadEvents(ctx context.Context, from, to time.Time) ([]entity.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.CalendarEvent
	for _, ev := range r.events {
		if eventRelevant(&ev, from, to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func eventRelevant(ev *entity.CalendarEvent, from, to time.Time) bool {
	if ev.StartTime.Before(to) && ev.EndTime.After(from) {
		return true
	}
	if !ev.IsRecurring || ev.Recurrence == nil {
		return false
	}
	if ev.StartTime.After(to) {
		return false
	}
	if ev.Recurrence.EndDate != nil && ev.Recurrence.EndDate.AddDate(0, 0, 1).Before(from) {
		return false
	}
	return true
}

func (r *SnapshotRepository) LoadTimeBlocks(ctx context.Context, from, to time.Time) ([]entity.TimeBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.TimeBlock
	for _, b := range r.blocks {
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *SnapshotRepository) CreateEvent(ctx context.Context, ev *entity.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if _, exists := r.events[ev.ID]; exists {
		return fmt.Errorf("event %s already exists", ev.ID)
	}
	now := time.Now()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	r.events[ev.ID] = *ev
	return nil
}

func (r *SnapshotRepository) GetEvent(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ev, nil
}

func (r *SnapshotRepository) UpdateEvent(ctx context.Context, ev *entity.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[ev.ID]
	if !ok {
		return ErrNotFound
	}
	ev.CreatedAt = existing.CreatedAt
	ev.UpdatedAt = time.Now()
	r.events[ev.ID] = *ev
	return nil
}

func (r *SnapshotRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *SnapshotRepository) CreateTimeBlock(ctx context.Context, b *entity.TimeBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if _, exists := r.blocks[b.ID]; exists {
		return fmt.Errorf("time block %s already exists", b.ID)
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.blocks[b.ID] = *b
	return nil
}

func (r *SnapshotRepository) GetTimeBlock(ctx context.Context, id uuid.UUID) (*entity.TimeBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blocks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *SnapshotRepository) UpdateTimeBlock(ctx context.Context, b *entity.TimeBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.blocks[b.ID]
	if !ok {
		return ErrNotFound
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now()
	r.blocks[b.ID] = *b
	return nil
}

func (r *SnapshotRepository) DeleteTimeBlock(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[id]; !ok {
		return ErrNotFound
	}
	delete(r.blocks, id)
	return nil
}

// PruneBefore removes completed and cancelled events, and time blocks, whose
// end time is before cutoff. Live (tentative/confirmed) events are kept even
// when past, so callers can still inspect them.
func (r *SnapshotRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ev := range r.events {
		done := ev.Status == entity.EventStatusCompleted || ev.Status == entity.EventStatusCancelled
		if done && ev.EndTime.Before(cutoff) {
			delete(r.events, id)
			removed++
		}
	}
	for id, b := range r.blocks {
		if b.EndTime.Before(cutoff) {
			delete(r.blocks, id)
			removed++
		}
	}
	return removed, nil
}
