package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, m, appErr := ParseClock("09:30")
	require.Nil(t, appErr)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"9:30am", "25:00", "nine", ""} {
		_, _, appErr := ParseClock(bad)
		assert.NotNil(t, appErr, "%q must not parse", bad)
	}
}

func TestWorkingHoursWindowOn(t *testing.T) {
	hours := WorkingHours{
		Enabled:     true,
		Start:       "09:00",
		End:         "17:00",
		WorkingDays: []int{1, 2, 3, 4, 5},
	}

	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	start, end, ok := hours.WindowOn(monday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), end)

	saturday := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	_, _, ok = hours.WindowOn(saturday)
	assert.False(t, ok)

	hours.Enabled = false
	_, _, ok = hours.WindowOn(monday)
	assert.False(t, ok)
}

func TestWorkingHoursValidate(t *testing.T) {
	hours := WorkingHours{Enabled: true, Start: "09:00", End: "17:00", WorkingDays: []int{1}}
	assert.Nil(t, hours.Validate())

	hours.WorkingDays = []int{8}
	assert.NotNil(t, hours.Validate())

	hours.WorkingDays = []int{1}
	hours.Breaks = []BreakWindow{{Start: "noon", End: "13:00"}}
	assert.NotNil(t, hours.Validate())
}

func TestTimeSlotPreferenceAppliesOn(t *testing.T) {
	everyDay := TimeSlotPreference{Start: "09:00", End: "12:00"}
	assert.True(t, everyDay.AppliesOn(time.Sunday))
	assert.True(t, everyDay.AppliesOn(time.Wednesday))

	weekdaysOnly := TimeSlotPreference{Start: "09:00", End: "12:00", Days: []int{1, 2, 3, 4, 5}}
	assert.True(t, weekdaysOnly.AppliesOn(time.Monday))
	assert.False(t, weekdaysOnly.AppliesOn(time.Sunday))
}

func TestTimeSlotPreferenceWindowOn(t *testing.T) {
	pref := TimeSlotPreference{Start: "15:00", End: "16:00"}
	day := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	start, end, ok := pref.WindowOn(day)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), end)

	inverted := TimeSlotPreference{Start: "16:00", End: "15:00"}
	_, _, ok = inverted.WindowOn(day)
	assert.False(t, ok)
}
