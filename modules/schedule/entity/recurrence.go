package entity

import (
	"time"

	"dayflow/core/errors"
)

// Frequency is the recurrence stepping unit
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurrenceRule describes how an event repeats. The rule terminates by
// EndDate or Count; when both are given EndDate wins. Constraint lists
// (DaysOfWeek, DaysOfMonth, MonthsOfYear) are conjunctive: a generated
// instance must satisfy every list that is present.
type RecurrenceRule struct {
	Frequency Frequency  `json:"frequency"`
	Interval  int        `json:"interval"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Count     *int       `json:"count,omitempty"`
	// DaysOfWeek uses 0=Sunday .. 6=Saturday.
	DaysOfWeek   []int `json:"days_of_week,omitempty"`
	DaysOfMonth  []int `json:"days_of_month,omitempty"`
	MonthsOfYear []int `json:"months_of_year,omitempty"`
	// Exceptions are calendar dates whose occurrences are suppressed.
	Exceptions []time.Time `json:"exceptions,omitempty"`
}

var validFrequencies = map[Frequency]bool{
	FrequencyDaily: true, FrequencyWeekly: true,
	FrequencyMonthly: true, FrequencyYearly: true,
}

// Validate checks the rule invariants.
func (r *RecurrenceRule) Validate() *errors.AppError {
	if !validFrequencies[r.Frequency] {
		return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "unknown recurrence frequency", nil)
	}
	if r.Interval < 1 {
		return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "recurrence interval must be at least 1", nil)
	}
	if r.Count != nil && *r.Count < 1 {
		return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "recurrence count must be at least 1", nil)
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "days_of_week entries must be 0-6", nil)
		}
	}
	for _, d := range r.DaysOfMonth {
		if d < 1 || d > 31 {
			return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "days_of_month entries must be 1-31", nil)
		}
	}
	for _, m := range r.MonthsOfYear {
		if m < 1 || m > 12 {
			return errors.NewAppError(errors.ErrMalformedRecurrenceRule, "months_of_year entries must be 1-12", nil)
		}
	}
	return nil
}

// IsSelfTerminating reports whether the rule bounds itself via EndDate or Count.
func (r *RecurrenceRule) IsSelfTerminating() bool {
	return r.EndDate != nil || r.Count != nil
}
