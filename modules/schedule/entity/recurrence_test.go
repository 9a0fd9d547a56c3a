package entity

import (
	"testing"
	"time"

	"dayflow/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceValidate(t *testing.T) {
	rule := RecurrenceRule{Frequency: FrequencyWeekly, Interval: 1, DaysOfWeek: []int{1, 3, 5}}
	assert.Nil(t, rule.Validate())
}

func TestRecurrenceValidate_Errors(t *testing.T) {
	count := 0
	cases := []struct {
		name string
		rule RecurrenceRule
	}{
		{"unknown frequency", RecurrenceRule{Frequency: "hourly", Interval: 1}},
		{"zero interval", RecurrenceRule{Frequency: FrequencyDaily}},
		{"zero count", RecurrenceRule{Frequency: FrequencyDaily, Interval: 1, Count: &count}},
		{"weekday out of range", RecurrenceRule{Frequency: FrequencyWeekly, Interval: 1, DaysOfWeek: []int{7}}},
		{"month day out of range", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, DaysOfMonth: []int{0}}},
		{"month out of range", RecurrenceRule{Frequency: FrequencyYearly, Interval: 1, MonthsOfYear: []int{13}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := tc.rule.Validate()
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrMalformedRecurrenceRule, appErr.Code)
		})
	}
}

func TestIsSelfTerminating(t *testing.T) {
	open := RecurrenceRule{Frequency: FrequencyDaily, Interval: 1}
	assert.False(t, open.IsSelfTerminating())

	n := 5
	byCount := open
	byCount.Count = &n
	assert.True(t, byCount.IsSelfTerminating())

	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	byDate := open
	byDate.EndDate = &end
	assert.True(t, byDate.IsSelfTerminating())
}
