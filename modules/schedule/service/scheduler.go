package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dayflow/core/constants"
	"dayflow/core/errors"
	"dayflow/modules/schedule/entity"

	"github.com/google/uuid"
)

// SmartScheduler ranks candidate free slots against the caller's soft
// preferences and returns ordered suggestions. "No suggestion" is a valid
// empty result, never an error.
type SmartScheduler struct {
	availability *AvailabilityFinder
	detector     *ConflictDetector

	// SuggestionCap limits the number of suggestions returned (default 5).
	SuggestionCap int
	// SlotStepMinutes is the step between candidate starts inside a gap.
	SlotStepMinutes int
	// Now is injected for deterministic proximity scoring in tests.
	Now func() time.Time
}

func NewSmartScheduler() *SmartScheduler {
	return &SmartScheduler{
		availability:    NewAvailabilityFinder(),
		detector:        NewConflictDetector(),
		SuggestionCap:   constants.DefaultSuggestionCap,
		SlotStepMinutes: constants.DefaultSlotStepMinutes,
		Now:             time.Now,
	}
}

// candidate is a scored slot before it becomes a suggestion.
type candidate struct {
	start, end time.Time
	score      int
	energy     int
	prod       int
	reasons    []string
}

// Suggest finds and ranks open slots for the quick event. Suggestions are
// sorted by confidence descending with earliest start as tie-break and
// capped at SuggestionCap.
func (s *SmartScheduler) Suggest(
	quick entity.QuickEventData,
	opts entity.SmartSchedulingOptions,
	events []entity.CalendarEvent,
	blocks []entity.TimeBlock,
	hours entity.WorkingHours,
) ([]entity.SchedulingSuggestion, *errors.AppError) {
	if quick.Title == "" {
		return nil, errors.NewAppError(errors.ErrInsufficientData, "event title is required", nil)
	}
	if quick.DurationMinutes < 1 {
		return nil, errors.NewAppError(errors.ErrInsufficientData, "event duration is required", nil)
	}

	durationMinutes := quick.DurationMinutes
	if opts.MaxDurationMinutes > 0 && durationMinutes > opts.MaxDurationMinutes {
		durationMinutes = opts.MaxDurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(opts.BufferMinutes) * time.Minute

	searchStart, searchEnd := s.searchWindow(opts)

	searchHours := hours
	if !opts.WorkingHoursOnly {
		searchHours = entity.WorkingHours{Enabled: false}
	}

	gaps, appErr := s.availability.FindFreeSlots(events, blocks, searchHours,
		searchStart, searchEnd, duration)
	if appErr != nil {
		return nil, appErr
	}
	busy := BusyIntervals(events, blocks)

	var candidates []candidate
	for _, gap := range gaps {
		for _, start := range GenerateSlotStarts(gap.Start, gap.End, s.slotStep()) {
			end := start.Add(duration)
			if end.After(gap.End) {
				break
			}
			if s.overlapsAvoidWindow(start, end, opts.AvoidTimes) {
				continue
			}
			if !s.bufferFits(start, end, buffer, busy) {
				continue
			}
			candidates = append(candidates, s.score(start, end, opts))
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].start.Before(candidates[j].start)
	})
	if limit := s.suggestionCap(); len(candidates) > limit {
		candidates = candidates[:limit]
	}

	suggestions := make([]entity.SchedulingSuggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, entity.SchedulingSuggestion{
			StartTime:         c.start,
			EndTime:           c.end,
			Confidence:        c.score,
			Reasoning:         strings.Join(c.reasons, "; "),
			Conflicts:         s.introducedConflicts(quick, c, events, blocks),
			ProductivityScore: c.prod,
			EnergyMatch:       c.energy,
		})
	}
	return suggestions, nil
}

func (s *SmartScheduler) searchWindow(opts entity.SmartSchedulingOptions) (time.Time, time.Time) {
	start := opts.SearchStart
	end := opts.SearchEnd
	if start.IsZero() {
		start = s.now()
	}
	if end.IsZero() {
		end = start.AddDate(0, 0, 7)
	}
	return start, end
}

func (s *SmartScheduler) overlapsAvoidWindow(start, end time.Time, avoid []entity.TimeSlotPreference) bool {
	for i := range avoid {
		if ws, we, ok := avoid[i].WindowOn(start); ok {
			if Overlaps(start, end, ws, we) {
				return true
			}
		}
	}
	return false
}

// bufferFits checks that the padded slot collides with no busy interval.
// Padding running past the search window edge is fine; only busy collisions
// reject the slot.
func (s *SmartScheduler) bufferFits(start, end time.Time, buffer time.Duration, busy []Interval) bool {
	if buffer <= 0 {
		return true
	}
	padded := Interval{Start: start.Add(-buffer), End: end.Add(buffer)}
	for _, iv := range busy {
		if IntervalsOverlap(padded, iv) {
			return false
		}
	}
	return true
}

func (s *SmartScheduler) score(start, end time.Time, opts entity.SmartSchedulingOptions) candidate {
	c := candidate{start: start, end: end, score: 50}
	c.energy = energyForHour(start.Hour())
	c.prod = productivityForSlot(start)

	prefBonus, prefHit := s.preferenceBonus(start, end, opts.PreferredTimes)

	switch opts.OptimizeFor {
	case entity.OptimizeForTime:
		days := int(start.Sub(s.now()).Hours() / 24)
		switch {
		case days <= 1:
			c.score += 30
			c.reasons = append(c.reasons, "available soon")
		case days <= 3:
			c.score += 20
			c.reasons = append(c.reasons, "available within a few days")
		case days <= 7:
			c.score += 10
		}
		c.score += prefBonus / 2
	case entity.OptimizeForEnergy:
		c.score += c.energy * 3
		c.score += prefBonus
		if c.energy >= 7 {
			c.reasons = append(c.reasons, "high-energy time of day")
		}
	case entity.OptimizeForProductivity:
		c.score += c.prod * 3
		c.score += prefBonus
		if c.prod >= 7 {
			c.reasons = append(c.reasons, "productive focus window")
		}
	default: // balance
		c.score += (c.energy + c.prod) * 3 / 2
		c.score += prefBonus
	}

	if prefHit {
		c.reasons = append(c.reasons, "matches a preferred time")
	}
	if len(c.reasons) == 0 {
		c.reasons = append(c.reasons, fmt.Sprintf("open slot at %s", start.Format("Mon 15:04")))
	}

	if c.score > 100 {
		c.score = 100
	}
	if c.score < 0 {
		c.score = 0
	}
	return c
}

// preferenceBonus sums the weights of preferred windows the slot overlaps,
// scaled so a single max-weight preference is worth 30 points.
func (s *SmartScheduler) preferenceBonus(start, end time.Time, prefs []entity.TimeSlotPreference) (int, bool) {
	bonus := 0
	hit := false
	for i := range prefs {
		if ws, we, ok := prefs[i].WindowOn(start); ok {
			if Overlaps(start, end, ws, we) {
				w := prefs[i].Weight
				if w < 1 {
					w = 1
				}
				bonus += w * 3
				hit = true
			}
		}
	}
	return bonus, hit
}

// introducedConflicts runs the detector over the working set plus the
// hypothetical event and returns the conflicts the new event participates
// in. Free slots never hard-overlap, but flexible blocks and buffer windows
// can still produce soft conflicts worth surfacing.
func (s *SmartScheduler) introducedConflicts(
	quick entity.QuickEventData,
	c candidate,
	events []entity.CalendarEvent,
	blocks []entity.TimeBlock,
) []entity.ConflictInfo {
	category := quick.Category
	if category == "" {
		category = entity.EventTypeTask
	}
	hypothetical := entity.CalendarEvent{
		ID:        uuid.New(),
		Title:     quick.Title,
		StartTime: c.start,
		EndTime:   c.end,
		Type:      category,
		Priority:  entity.EventPriorityMedium,
		Status:    entity.EventStatusTentative,
	}
	augmented := make([]entity.CalendarEvent, 0, len(events)+1)
	augmented = append(augmented, events...)
	augmented = append(augmented, hypothetical)

	var introduced []entity.ConflictInfo
	for _, conflict := range s.detector.Detect(augmented, blocks, entity.ConflictOptions{}) {
		for _, id := range conflict.ItemIDs {
			if id == hypothetical.ID.String() {
				introduced = append(introduced, conflict)
				break
			}
		}
	}
	return introduced
}

// energyForHour is a fixed hour-of-day energy curve on a 1-10 scale:
// mid-morning peak, post-lunch dip, modest afternoon recovery.
func energyForHour(hour int) int {
	switch {
	case hour >= 9 && hour < 12:
		return 9
	case hour == 8:
		return 7
	case hour >= 14 && hour < 17:
		return 7
	case hour >= 12 && hour < 14:
		return 4
	case hour >= 17 && hour < 20:
		return 5
	case hour >= 6 && hour < 8:
		return 4
	default:
		return 2
	}
}

// productivityForSlot blends the energy curve with a weekday factor:
// early-week mornings score highest, weekends lowest.
func productivityForSlot(start time.Time) int {
	p := energyForHour(start.Hour())
	switch start.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday:
		p++
	case time.Saturday, time.Sunday:
		p -= 2
	}
	if p > 10 {
		p = 10
	}
	if p < 1 {
		p = 1
	}
	return p
}

func (s *SmartScheduler) suggestionCap() int {
	if s.SuggestionCap > 0 {
		return s.SuggestionCap
	}
	return constants.DefaultSuggestionCap
}

func (s *SmartScheduler) slotStep() int {
	if s.SlotStepMinutes > 0 {
		return s.SlotStepMinutes
	}
	return constants.DefaultSlotStepMinutes
}

func (s *SmartScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
