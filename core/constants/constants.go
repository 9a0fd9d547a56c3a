package constants

// Context keys
const (
	ContextRequestID = "request_id"
)

// Engine defaults
const (
	// DefaultMaxExpansionYears bounds recurrence expansion windows.
	DefaultMaxExpansionYears = 5
	// DefaultSuggestionCap is the maximum number of scheduling suggestions returned.
	DefaultSuggestionCap = 5
	// DefaultSlotStepMinutes is the candidate slot generation step.
	DefaultSlotStepMinutes = 30
	// DefaultMinSlotMinutes is the minimum free slot duration considered useful.
	DefaultMinSlotMinutes = 15
)

// Server defaults
const (
	DefaultServerPort    = 7070
	DefaultRetentionDays = 90
	DefaultRetentionCron = "0 3 * * *"
)
