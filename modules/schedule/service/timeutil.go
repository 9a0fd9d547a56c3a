package service

import (
	"sort"
	"time"

	"dayflow/core/errors"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IntervalsOverlap is Overlaps on Interval values.
func IntervalsOverlap(a, b Interval) bool {
	return Overlaps(a.Start, a.End, b.Start, b.End)
}

// DurationMinutes returns end minus start in whole minutes.
func DurationMinutes(start, end time.Time) (int, *errors.AppError) {
	if !end.After(start) {
		return 0, errors.NewAppError(errors.ErrInvalidInterval, "interval end must be after start", nil)
	}
	return int(end.Sub(start) / time.Minute), nil
}

// GenerateSlotStarts returns the candidate slot starts inside
// [windowStart, windowEnd), stepped by stepMinutes. The sequence is bounded
// by the window and deterministic: equal arguments yield equal output.
func GenerateSlotStarts(windowStart, windowEnd time.Time, stepMinutes int) []time.Time {
	if stepMinutes < 1 || !windowEnd.After(windowStart) {
		return nil
	}
	step := time.Duration(stepMinutes) * time.Minute
	var starts []time.Time
	for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(step) {
		starts = append(starts, cur)
	}
	return starts
}

// MergeIntervals sorts and coalesces intervals. Overlapping and touching
// intervals are merged; the input slice is not modified.
func MergeIntervals(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start.After(last.End) {
			merged = append(merged, cur)
			continue
		}
		if cur.End.After(last.End) {
			last.End = cur.End
		}
	}
	return merged
}

// ComplementIntervals returns the free gaps inside [windowStart, windowEnd)
// not covered by busy. Busy intervals may be unsorted and overlapping.
func ComplementIntervals(busy []Interval, windowStart, windowEnd time.Time) []Interval {
	if !windowEnd.After(windowStart) {
		return nil
	}
	var clipped []Interval
	for _, iv := range busy {
		if c, ok := ClipInterval(iv, windowStart, windowEnd); ok {
			clipped = append(clipped, c)
		}
	}
	merged := MergeIntervals(clipped)

	var free []Interval
	cursor := windowStart
	for _, iv := range merged {
		if iv.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: iv.Start})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if windowEnd.After(cursor) {
		free = append(free, Interval{Start: cursor, End: windowEnd})
	}
	return free
}

// ClipInterval restricts iv to [windowStart, windowEnd). ok is false when
// nothing remains.
func ClipInterval(iv Interval, windowStart, windowEnd time.Time) (Interval, bool) {
	start := iv.Start
	end := iv.End
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}
