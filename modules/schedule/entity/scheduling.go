package entity

import "time"

// SchedulingSuggestion is one ranked candidate slot returned by the smart
// scheduler. Suggestions are ordered by confidence descending, ties broken
// by earliest start time.
type SchedulingSuggestion struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Confidence int       `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	// Conflicts the event would introduce if accepted (soft conflicts only;
	// hard overlaps are never suggested).
	Conflicts         []ConflictInfo `json:"conflicts,omitempty"`
	ProductivityScore int            `json:"productivity_score"`
	EnergyMatch       int            `json:"energy_match"`
}

// OptimizeFor selects the smart scheduler's scoring strategy
type OptimizeFor string

const (
	OptimizeForTime         OptimizeFor = "time"
	OptimizeForEnergy       OptimizeFor = "energy"
	OptimizeForProductivity OptimizeFor = "productivity"
	OptimizeForBalance      OptimizeFor = "balance"
)

// QuickEventData describes the event the caller wants scheduled.
type QuickEventData struct {
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        EventType `json:"category,omitempty"`
}

// SmartSchedulingOptions tune the smart scheduler's search and scoring.
type SmartSchedulingOptions struct {
	PreferredTimes []TimeSlotPreference `json:"preferred_times,omitempty"`
	AvoidTimes     []TimeSlotPreference `json:"avoid_times,omitempty"`
	// BufferMinutes of free padding required on both sides of the slot.
	BufferMinutes      int         `json:"buffer_minutes"`
	MaxDurationMinutes int         `json:"max_duration_minutes,omitempty"`
	WorkingHoursOnly   bool        `json:"working_hours_only"`
	OptimizeFor        OptimizeFor `json:"optimize_for,omitempty"`
	// SearchStart/SearchEnd bound the suggestion horizon.
	SearchStart time.Time `json:"search_start"`
	SearchEnd   time.Time `json:"search_end"`
}

// ConflictOptions carry caller context the detector cannot derive from the
// working set itself.
type ConflictOptions struct {
	// HighEnergyWindows are the caller's declared peak-energy clock windows,
	// used for the informational energy_mismatch rule on focus blocks.
	HighEnergyWindows []TimeSlotPreference `json:"high_energy_windows,omitempty"`
}
