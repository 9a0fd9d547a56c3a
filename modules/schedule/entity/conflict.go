package entity

import "time"

// ConflictType classifies a detected scheduling conflict
type ConflictType string

const (
	ConflictTypeOverlap          ConflictType = "overlap"
	ConflictTypeDoubleBooking    ConflictType = "double_booking"
	ConflictTypeTravelTime       ConflictType = "travel_time"
	ConflictTypeBreakViolation   ConflictType = "break_violation"
	ConflictTypePriorityConflict ConflictType = "priority_conflict"
	ConflictTypeEnergyMismatch   ConflictType = "energy_mismatch"
)

// ConflictSeverity grades how serious a conflict is
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// SeverityFromWeights maps the summed 1-4 priority weights of two
// participants onto a severity grade.
func SeverityFromWeights(sum int) ConflictSeverity {
	switch {
	case sum >= 8:
		return SeverityCritical
	case sum >= 6:
		return SeverityHigh
	case sum >= 4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ConflictInfo describes one detected conflict. It is always derived from
// the working set, never persisted as source-of-truth state.
type ConflictInfo struct {
	Type     ConflictType     `json:"type"`
	Severity ConflictSeverity `json:"severity"`
	// ItemIDs reference the conflicting event/time-block ids.
	ItemIDs []string `json:"item_ids"`
	// Start anchors the conflict on the timeline for stable ordering.
	Start               time.Time `json:"start"`
	SuggestedResolution string    `json:"suggested_resolution,omitempty"`
}
