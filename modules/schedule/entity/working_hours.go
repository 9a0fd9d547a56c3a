package entity

import (
	"time"

	"dayflow/core/errors"
)

// BreakWindow is a recurring daily break inside working hours ("12:00"-"13:00").
type BreakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Title string `json:"title,omitempty"`
}

// WorkingHours define the caller's daily scheduling window.
type WorkingHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // HH:mm
	End     string `json:"end"`   // HH:mm
	// WorkingDays uses 0=Sunday .. 6=Saturday.
	WorkingDays []int         `json:"working_days"`
	Breaks      []BreakWindow `json:"breaks,omitempty"`
}

// TimeSlotPreference is a soft preference window used by the smart scheduler;
// it is never a hard constraint.
type TimeSlotPreference struct {
	Start string `json:"start"` // HH:mm
	End   string `json:"end"`   // HH:mm
	// Days uses 0=Sunday .. 6=Saturday; empty means every day.
	Days   []int `json:"days,omitempty"`
	Weight int   `json:"weight"` // 1-10
}

// ParseClock parses an HH:mm string into hour and minute.
func ParseClock(s string) (hour, minute int, appErr *errors.AppError) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrInvalidInput, "clock time must be HH:mm", err)
	}
	return t.Hour(), t.Minute(), nil
}

// Validate checks the working-hours invariants.
func (w *WorkingHours) Validate() *errors.AppError {
	if _, _, appErr := ParseClock(w.Start); appErr != nil {
		return appErr
	}
	if _, _, appErr := ParseClock(w.End); appErr != nil {
		return appErr
	}
	for _, d := range w.WorkingDays {
		if d < 0 || d > 6 {
			return errors.NewAppError(errors.ErrInvalidInput, "working_days entries must be 0-6", nil)
		}
	}
	for _, b := range w.Breaks {
		if _, _, appErr := ParseClock(b.Start); appErr != nil {
			return appErr
		}
		if _, _, appErr := ParseClock(b.End); appErr != nil {
			return appErr
		}
	}
	return nil
}

// AppliesOn reports whether the weekday is a working day.
func (w *WorkingHours) AppliesOn(day time.Weekday) bool {
	for _, d := range w.WorkingDays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// WindowOn returns the concrete working interval for the day containing t.
// ok is false on non-working days or when working hours are disabled.
func (w *WorkingHours) WindowOn(t time.Time) (start, end time.Time, ok bool) {
	if !w.Enabled || !w.AppliesOn(t.Weekday()) {
		return time.Time{}, time.Time{}, false
	}
	sh, sm, appErr := ParseClock(w.Start)
	if appErr != nil {
		return time.Time{}, time.Time{}, false
	}
	eh, em, appErr := ParseClock(w.End)
	if appErr != nil {
		return time.Time{}, time.Time{}, false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)
	end = day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// AppliesOn reports whether the preference is active on the weekday.
// An empty Days list means every day.
func (p *TimeSlotPreference) AppliesOn(day time.Weekday) bool {
	if len(p.Days) == 0 {
		return true
	}
	for _, d := range p.Days {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// WindowOn returns the preference window for the day containing t.
func (p *TimeSlotPreference) WindowOn(t time.Time) (start, end time.Time, ok bool) {
	if !p.AppliesOn(t.Weekday()) {
		return time.Time{}, time.Time{}, false
	}
	sh, sm, appErr := ParseClock(p.Start)
	if appErr != nil {
		return time.Time{}, time.Time{}, false
	}
	eh, em, appErr := ParseClock(p.End)
	if appErr != nil {
		return time.Time{}, time.Time{}, false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)
	end = day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
