package entity

import (
	"time"

	"dayflow/core/errors"

	"github.com/google/uuid"
)

// BlockType classifies a time block
type BlockType string

const (
	BlockTypeFocus    BlockType = "focus"
	BlockTypeMeeting  BlockType = "meeting"
	BlockTypeBreak    BlockType = "break"
	BlockTypeRoutine  BlockType = "routine"
	BlockTypeBuffer   BlockType = "buffer"
	BlockTypeFlexible BlockType = "flexible"
	BlockTypeCommute  BlockType = "commute"
	BlockTypeMeal     BlockType = "meal"
)

// Flexibility governs whether the scheduler may displace a block
type Flexibility string

const (
	FlexibilityFixed        Flexibility = "fixed"
	FlexibilityPreferred    Flexibility = "preferred"
	FlexibilityFlexible     Flexibility = "flexible"
	FlexibilityVeryFlexible Flexibility = "very_flexible"
)

// IsDisplaceable reports whether the scheduler may consider moving the block.
func (f Flexibility) IsDisplaceable() bool {
	return f == FlexibilityFlexible || f == FlexibilityVeryFlexible
}

// TimeBlock is a caller-scheduled interval of protected or flexible time.
type TimeBlock struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Type        BlockType   `json:"type"`
	IsLocked    bool        `json:"is_locked"`
	Flexibility Flexibility `json:"flexibility"`
	// Priority is 1-10; higher wins when two blocks compete for a slot.
	Priority int `json:"priority"`
	// BufferMinutes must stay free immediately before and after the block.
	BufferMinutes int       `json:"buffer_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var validBlockTypes = map[BlockType]bool{
	BlockTypeFocus: true, BlockTypeMeeting: true, BlockTypeBreak: true,
	BlockTypeRoutine: true, BlockTypeBuffer: true, BlockTypeFlexible: true,
	BlockTypeCommute: true, BlockTypeMeal: true,
}

var validFlexibilities = map[Flexibility]bool{
	FlexibilityFixed: true, FlexibilityPreferred: true,
	FlexibilityFlexible: true, FlexibilityVeryFlexible: true,
}

// Validate checks the block invariants at construction time.
func (b *TimeBlock) Validate() *errors.AppError {
	if !b.EndTime.After(b.StartTime) {
		return errors.NewAppError(errors.ErrInvalidInterval, "block start time must be before end time", nil)
	}
	if !validBlockTypes[b.Type] {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown block type", nil)
	}
	if b.Flexibility != "" && !validFlexibilities[b.Flexibility] {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown flexibility", nil)
	}
	if b.Priority < 1 || b.Priority > 10 {
		return errors.NewAppError(errors.ErrInvalidInput, "block priority must be between 1 and 10", nil)
	}
	if b.BufferMinutes < 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "buffer minutes must be non-negative", nil)
	}
	return nil
}

// PriorityWeight maps the 1-10 block priority onto the 1-4 scale shared with
// event priorities for conflict severity.
func (b *TimeBlock) PriorityWeight() int {
	switch {
	case b.Priority >= 9:
		return 4
	case b.Priority >= 7:
		return 3
	case b.Priority >= 4:
		return 2
	default:
		return 1
	}
}

// IsImmovable reports whether the block is pinned to its slot: either locked
// outright or declared fixed.
func (b *TimeBlock) IsImmovable() bool {
	return b.IsLocked || b.Flexibility == FlexibilityFixed
}
