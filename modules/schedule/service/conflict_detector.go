package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dayflow/modules/schedule/entity"
)

// scheduleItem is the detector's uniform view of events and time blocks.
type scheduleItem struct {
	id        string
	title     string
	start     time.Time
	end       time.Time
	weight    int // 1-4 priority weight
	buffer    time.Duration
	attendees []string

	isBlock     bool
	isBreakLike bool // event type break, block type break/buffer
	isMeeting   bool // event of type meeting or appointment
	isFocus     bool // block of type focus
	locked      bool
	displaceable bool
	immovable   bool
}

// sweepStart returns the item's start extended by its buffer window, which
// is what the sweep must order by so buffer violations are not missed.
func (it *scheduleItem) sweepStart() time.Time {
	if it.locked && it.buffer > 0 {
		return it.start.Add(-it.buffer)
	}
	return it.start
}

func (it *scheduleItem) sweepEnd() time.Time {
	if it.locked && it.buffer > 0 {
		return it.end.Add(it.buffer)
	}
	return it.end
}

// ConflictDetector finds pairwise and policy conflicts over a materialized
// working set. Detection is pure: same input, same output, stable order.
type ConflictDetector struct{}

func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// Detect evaluates the conflict rules over the given events and time blocks.
// Cancelled events are ignored. The result is sorted by conflict start time,
// then conflict type name, then participant ids.
func (d *ConflictDetector) Detect(
	events []entity.CalendarEvent,
	blocks []entity.TimeBlock,
	opts entity.ConflictOptions,
) []entity.ConflictInfo {
	items := buildItems(events, blocks)

	conflicts := d.sweepPairs(items)
	conflicts = append(conflicts, d.energyMismatches(items, opts)...)

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return strings.Join(a.ItemIDs, ",") < strings.Join(b.ItemIDs, ",")
	})
	return conflicts
}

func buildItems(events []entity.CalendarEvent, blocks []entity.TimeBlock) []scheduleItem {
	items := make([]scheduleItem, 0, len(events)+len(blocks))
	for i := range events {
		ev := &events[i]
		if !ev.IsBusy() {
			continue
		}
		items = append(items, scheduleItem{
			id:          ev.ID.String(),
			title:       ev.Title,
			start:       ev.StartTime,
			end:         ev.EndTime,
			weight:      ev.Priority.Weight(),
			attendees:   ev.Attendees,
			isBreakLike: ev.Type == entity.EventTypeBreak,
			isMeeting:   ev.Type == entity.EventTypeMeeting || ev.Type == entity.EventTypeAppointment,
			immovable:   true,
		})
	}
	for i := range blocks {
		b := &blocks[i]
		items = append(items, scheduleItem{
			id:           b.ID.String(),
			title:        b.Title,
			start:        b.StartTime,
			end:          b.EndTime,
			weight:       b.PriorityWeight(),
			buffer:       time.Duration(b.BufferMinutes) * time.Minute,
			isBlock:      true,
			isBreakLike:  b.Type == entity.BlockTypeBreak || b.Type == entity.BlockTypeBuffer,
			isFocus:      b.Type == entity.BlockTypeFocus,
			locked:       b.IsLocked,
			displaceable: b.Flexibility.IsDisplaceable(),
			immovable:    b.IsImmovable(),
		})
	}
	return items
}

// sweepPairs runs an interval sweep over buffer-extended intervals and
// evaluates the pairwise rules on each temporally-close pair. Items are
// sorted by extended start; the active set drops items whose extended end
// has passed, so only neighbouring pairs are ever compared.
func (d *ConflictDetector) sweepPairs(items []scheduleItem) []entity.ConflictInfo {
	sorted := make([]scheduleItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].sweepStart().Equal(sorted[j].sweepStart()) {
			return sorted[i].sweepStart().Before(sorted[j].sweepStart())
		}
		return sorted[i].id < sorted[j].id
	})

	var conflicts []entity.ConflictInfo
	var active []*scheduleItem
	for i := range sorted {
		cur := &sorted[i]

		kept := active[:0]
		for _, it := range active {
			if it.sweepEnd().After(cur.sweepStart()) {
				kept = append(kept, it)
			}
		}
		active = kept

		for _, other := range active {
			conflicts = append(conflicts, d.evaluatePair(other, cur)...)
		}
		active = append(active, cur)
	}
	return conflicts
}

func (d *ConflictDetector) evaluatePair(a, b *scheduleItem) []entity.ConflictInfo {
	var out []entity.ConflictInfo
	overlapping := Overlaps(a.start, a.end, b.start, b.end)

	if overlapping && !a.isBreakLike && !b.isBreakLike {
		out = append(out, entity.ConflictInfo{
			Type:     entity.ConflictTypeOverlap,
			Severity: entity.SeverityFromWeights(a.weight + b.weight),
			ItemIDs:  pairIDs(a, b),
			Start:    laterStart(a, b),
		})
	}

	if overlapping && a.isMeeting && b.isMeeting && attendeesIntersect(a.attendees, b.attendees) {
		out = append(out, entity.ConflictInfo{
			Type:                entity.ConflictTypeDoubleBooking,
			Severity:            entity.SeverityHigh,
			ItemIDs:             pairIDs(a, b),
			Start:               laterStart(a, b),
			SuggestedResolution: "Reschedule one of the meetings or drop the shared attendees from one of them",
		})
	}

	if c, ok := d.bufferViolation(a, b); ok {
		out = append(out, c)
	}
	if c, ok := d.bufferViolation(b, a); ok {
		out = append(out, c)
	}

	if overlapping {
		if c, ok := d.priorityConflict(a, b); ok {
			out = append(out, c)
		} else if c, ok := d.priorityConflict(b, a); ok {
			out = append(out, c)
		}
	}
	return out
}

// bufferViolation reports whether item intrudes into the buffer window of a
// locked block. Intrusion into the block itself is an overlap conflict, not
// a buffer violation.
func (d *ConflictDetector) bufferViolation(block, item *scheduleItem) (entity.ConflictInfo, bool) {
	if !block.isBlock || !block.locked || block.buffer <= 0 {
		return entity.ConflictInfo{}, false
	}
	if Overlaps(block.start, block.end, item.start, item.end) {
		return entity.ConflictInfo{}, false
	}
	pre := Interval{Start: block.start.Add(-block.buffer), End: block.start}
	post := Interval{Start: block.end, End: block.end.Add(block.buffer)}
	itemIv := Interval{Start: item.start, End: item.end}
	if !IntervalsOverlap(itemIv, pre) && !IntervalsOverlap(itemIv, post) {
		return entity.ConflictInfo{}, false
	}
	return entity.ConflictInfo{
		Type:     entity.ConflictTypeBreakViolation,
		Severity: entity.SeverityMedium,
		ItemIDs:  pairIDs(block, item),
		Start:    item.start,
		SuggestedResolution: fmt.Sprintf(
			"Keep %d minutes free around %q", int(block.buffer/time.Minute), blockLabel(block)),
	}, true
}

// priorityConflict fires when a displaceable lower-priority block overlaps a
// higher-priority immovable item. The resolution always moves the flexible,
// lower-cost side.
func (d *ConflictDetector) priorityConflict(flex, fixed *scheduleItem) (entity.ConflictInfo, bool) {
	if !flex.isBlock || !flex.displaceable || !fixed.immovable {
		return entity.ConflictInfo{}, false
	}
	if flex.weight >= fixed.weight {
		return entity.ConflictInfo{}, false
	}
	return entity.ConflictInfo{
		Type:     entity.ConflictTypePriorityConflict,
		Severity: entity.SeverityFromWeights(flex.weight + fixed.weight),
		ItemIDs:  pairIDs(flex, fixed),
		Start:    laterStart(flex, fixed),
		SuggestedResolution: fmt.Sprintf(
			"Move %q: it has lower priority and is the cheaper item to reschedule", blockLabel(flex)),
	}, true
}

// energyMismatches flags focus blocks placed outside the caller's declared
// high-energy windows. Informational only; never blocks scheduling.
func (d *ConflictDetector) energyMismatches(items []scheduleItem, opts entity.ConflictOptions) []entity.ConflictInfo {
	if len(opts.HighEnergyWindows) == 0 {
		return nil
	}
	var out []entity.ConflictInfo
	for i := range items {
		it := &items[i]
		if !it.isFocus {
			continue
		}
		aligned := false
		for j := range opts.HighEnergyWindows {
			w := &opts.HighEnergyWindows[j]
			if start, end, ok := w.WindowOn(it.start); ok {
				if !it.start.Before(start) && !it.end.After(end) {
					aligned = true
					break
				}
			}
		}
		if aligned {
			continue
		}
		out = append(out, entity.ConflictInfo{
			Type:                entity.ConflictTypeEnergyMismatch,
			Severity:            entity.SeverityLow,
			ItemIDs:             []string{it.id},
			Start:               it.start,
			SuggestedResolution: fmt.Sprintf("Consider moving %q into a high-energy window", blockLabel(it)),
		})
	}
	return out
}

func pairIDs(a, b *scheduleItem) []string {
	if a.start.After(b.start) || (a.start.Equal(b.start) && a.id > b.id) {
		return []string{b.id, a.id}
	}
	return []string{a.id, b.id}
}

func laterStart(a, b *scheduleItem) time.Time {
	if a.start.After(b.start) {
		return a.start
	}
	return b.start
}

func blockLabel(it *scheduleItem) string {
	if it.title != "" {
		return it.title
	}
	return it.id
}

func attendeesIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, y := range b {
		if _, ok := set[y]; ok {
			return true
		}
	}
	return false
}
