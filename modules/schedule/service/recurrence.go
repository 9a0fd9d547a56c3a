package service

import (
	"time"

	"dayflow/core/constants"
	"dayflow/core/errors"
	"dayflow/modules/schedule/entity"

	"github.com/teambition/rrule-go"
)

// frequency mapping onto rrule stepping units
var rruleFrequencies = map[entity.Frequency]rrule.Frequency{
	entity.FrequencyDaily:   rrule.DAILY,
	entity.FrequencyWeekly:  rrule.WEEKLY,
	entity.FrequencyMonthly: rrule.MONTHLY,
	entity.FrequencyYearly:  rrule.YEARLY,
}

// 0=Sunday .. 6=Saturday
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// RecurrenceExpander materializes recurrence rules into concrete occurrence
// intervals inside a bounded window.
type RecurrenceExpander struct {
	// MaxWindowYears rejects expansion windows wider than this span.
	MaxWindowYears int
}

// NewRecurrenceExpander creates an expander with the default window bound.
func NewRecurrenceExpander() *RecurrenceExpander {
	return &RecurrenceExpander{MaxWindowYears: constants.DefaultMaxExpansionYears}
}

// Expand steps the rule forward from the anchor event interval and returns
// the ordered, deduplicated occurrences intersecting [from, to).
//
// Termination: EndDate wins over Count when both are set. Constraint lists
// are conjunctive (RFC 5545 limit semantics). A monthly rule anchored on day
// 29-31 skips months lacking that day; it never clamps to month end.
// Exceptions suppress occurrences by calendar date in the anchor's zone.
func (x *RecurrenceExpander) Expand(
	rule *entity.RecurrenceRule,
	anchorStart, anchorEnd time.Time,
	from, to time.Time,
) ([]Interval, *errors.AppError) {
	if rule == nil {
		return nil, errors.NewAppError(errors.ErrInsufficientData, "recurrence rule is required", nil)
	}
	if appErr := rule.Validate(); appErr != nil {
		return nil, appErr
	}
	if !anchorEnd.After(anchorStart) {
		return nil, errors.NewAppError(errors.ErrInvalidInterval, "anchor start must be before anchor end", nil)
	}

	// The expansion window must keep the work finite: either the caller
	// bounds it with `to`, or the rule bounds itself.
	if to.IsZero() {
		if !rule.IsSelfTerminating() {
			return nil, errors.NewAppError(errors.ErrMalformedRecurrenceRule,
				"rule has no end date or count and no expansion bound was given", nil)
		}
		if rule.EndDate != nil {
			to = rule.EndDate.AddDate(0, 0, 1)
		} else {
			to = from.AddDate(x.maxYears(), 0, 0)
		}
	}
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInterval, "expansion window end must be after start", nil)
	}
	if to.After(from.AddDate(x.maxYears(), 0, 0)) {
		return nil, errors.NewAppError(errors.ErrUnboundedExpansionWindow,
			"expansion window exceeds the maximum span", nil)
	}

	opt := rrule.ROption{
		Freq:     rruleFrequencies[rule.Frequency],
		Interval: rule.Interval,
		Dtstart:  anchorStart,
	}
	// EndDate wins over Count when both are present.
	if rule.EndDate != nil {
		opt.Until = *rule.EndDate
	} else if rule.Count != nil {
		opt.Count = *rule.Count
	}
	for _, d := range rule.DaysOfWeek {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
	}
	opt.Bymonthday = append(opt.Bymonthday, rule.DaysOfMonth...)
	opt.Bymonth = append(opt.Bymonth, rule.MonthsOfYear...)

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrMalformedRecurrenceRule, "invalid recurrence rule", err)
	}

	var set rrule.Set
	set.RRule(r)
	for _, ex := range rule.Exceptions {
		// Align the exception date with the anchor's clock time so it matches
		// the generated occurrence instant exactly.
		exLoc := ex.In(anchorStart.Location())
		set.ExDate(time.Date(exLoc.Year(), exLoc.Month(), exLoc.Day(),
			anchorStart.Hour(), anchorStart.Minute(), anchorStart.Second(), 0,
			anchorStart.Location()))
	}

	duration := anchorEnd.Sub(anchorStart)

	// Search back by one duration so occurrences straddling `from` are kept.
	starts := set.Between(from.Add(-duration), to, true)

	var out []Interval
	for _, start := range starts {
		end := start.Add(duration)
		// Clip to [from, to): keep only occurrences intersecting the window.
		if !start.Before(to) || !end.After(from) {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Start.Equal(start) {
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out, nil
}

func (x *RecurrenceExpander) maxYears() int {
	if x.MaxWindowYears > 0 {
		return x.MaxWindowYears
	}
	return constants.DefaultMaxExpansionYears
}
