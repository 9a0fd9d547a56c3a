package service

import (
	"time"

	"dayflow/core/errors"
	"dayflow/modules/schedule/entity"
)

// AvailabilityFinder computes free slots from the busy working set.
type AvailabilityFinder struct{}

func NewAvailabilityFinder() *AvailabilityFinder {
	return &AvailabilityFinder{}
}

// FindFreeSlots returns the ordered free intervals of at least minDuration
// inside [windowStart, windowEnd), restricted to working hours and working
// weekdays with break windows subtracted. The busy set is the non-cancelled
// events plus the locked/fixed time blocks.
//
// When hours.Enabled is false every day is fully available; the scheduler
// uses this for searches that are not limited to working hours.
func (f *AvailabilityFinder) FindFreeSlots(
	events []entity.CalendarEvent,
	blocks []entity.TimeBlock,
	hours entity.WorkingHours,
	windowStart, windowEnd time.Time,
	minDuration time.Duration,
) ([]Interval, *errors.AppError) {
	if !windowEnd.After(windowStart) {
		return nil, errors.NewAppError(errors.ErrInvalidInterval, "window end must be after start", nil)
	}
	if hours.Enabled {
		if appErr := hours.Validate(); appErr != nil {
			return nil, appErr
		}
	}
	if minDuration < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "minimum duration must be non-negative", nil)
	}

	busy := BusyIntervals(events, blocks)

	var free []Interval
	dayStart := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(),
		0, 0, 0, 0, windowStart.Location())
	for day := dayStart; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		workStart, workEnd, ok := f.workingWindow(hours, day)
		if !ok {
			continue
		}
		// Clip the day's working window to the requested window.
		win, ok := ClipInterval(Interval{Start: workStart, End: workEnd}, windowStart, windowEnd)
		if !ok {
			continue
		}

		dayBusy := make([]Interval, 0, len(busy))
		dayBusy = append(dayBusy, busy...)
		dayBusy = append(dayBusy, f.breakIntervals(hours, day)...)

		for _, gap := range ComplementIntervals(dayBusy, win.Start, win.End) {
			if gap.Duration() >= minDuration {
				free = append(free, gap)
			}
		}
	}
	return free, nil
}

// workingWindow returns the scheduling window for one day.
func (f *AvailabilityFinder) workingWindow(hours entity.WorkingHours, day time.Time) (time.Time, time.Time, bool) {
	if !hours.Enabled {
		return day, day.AddDate(0, 0, 1), true
	}
	return hours.WindowOn(day)
}

func (f *AvailabilityFinder) breakIntervals(hours entity.WorkingHours, day time.Time) []Interval {
	if !hours.Enabled {
		return nil
	}
	var out []Interval
	for _, b := range hours.Breaks {
		pref := entity.TimeSlotPreference{Start: b.Start, End: b.End}
		if start, end, ok := pref.WindowOn(day); ok {
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out
}

// BusyIntervals collects the merged busy intervals of the working set:
// non-cancelled events plus locked/fixed time blocks.
func BusyIntervals(events []entity.CalendarEvent, blocks []entity.TimeBlock) []Interval {
	var busy []Interval
	for i := range events {
		if events[i].IsBusy() {
			busy = append(busy, Interval{Start: events[i].StartTime, End: events[i].EndTime})
		}
	}
	for i := range blocks {
		if blocks[i].IsImmovable() {
			busy = append(busy, Interval{Start: blocks[i].StartTime, End: blocks[i].EndTime})
		}
	}
	return MergeIntervals(busy)
}
