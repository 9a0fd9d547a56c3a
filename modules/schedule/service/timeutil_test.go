package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"partial", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"touching", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd), "overlaps must be symmetric")
		})
	}
}

func TestOverlaps_HalfOpenBoundary(t *testing.T) {
	// An event ending exactly when another starts does not overlap it.
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))
}

func TestDurationMinutes(t *testing.T) {
	minutes, appErr := DurationMinutes(at(9, 0), at(10, 30))
	require.Nil(t, appErr)
	assert.Equal(t, 90, minutes)
}

func TestDurationMinutes_InvalidInterval(t *testing.T) {
	_, appErr := DurationMinutes(at(10, 0), at(10, 0))
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_INTERVAL", string(appErr.Code))

	_, appErr = DurationMinutes(at(10, 0), at(9, 0))
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_INTERVAL", string(appErr.Code))
}

func TestGenerateSlotStarts(t *testing.T) {
	starts := GenerateSlotStarts(at(9, 0), at(11, 0), 30)
	require.Len(t, starts, 4)
	assert.Equal(t, at(9, 0), starts[0])
	assert.Equal(t, at(10, 30), starts[3])
}

func TestGenerateSlotStarts_Restartable(t *testing.T) {
	first := GenerateSlotStarts(at(9, 0), at(17, 0), 15)
	second := GenerateSlotStarts(at(9, 0), at(17, 0), 15)
	assert.Equal(t, first, second)
}

func TestGenerateSlotStarts_DegenerateInputs(t *testing.T) {
	assert.Empty(t, GenerateSlotStarts(at(11, 0), at(9, 0), 30))
	assert.Empty(t, GenerateSlotStarts(at(9, 0), at(11, 0), 0))
}

func TestMergeIntervals(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Start: at(13, 0), End: at(14, 0)},
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(9, 30), End: at(11, 0)},
		{Start: at(11, 0), End: at(12, 0)}, // touching extends
	})
	require.Len(t, merged, 2)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(12, 0)}, merged[0])
	assert.Equal(t, Interval{Start: at(13, 0), End: at(14, 0)}, merged[1])
}

func TestComplementIntervals(t *testing.T) {
	free := ComplementIntervals([]Interval{
		{Start: at(10, 0), End: at(11, 0)},
	}, at(9, 0), at(17, 0))
	require.Len(t, free, 2)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(10, 0)}, free[0])
	assert.Equal(t, Interval{Start: at(11, 0), End: at(17, 0)}, free[1])
}

func TestComplementIntervals_ReconstructsWindow(t *testing.T) {
	busy := []Interval{
		{Start: at(8, 0), End: at(9, 30)}, // partially outside window
		{Start: at(11, 0), End: at(12, 0)},
		{Start: at(11, 30), End: at(13, 0)}, // overlaps previous
	}
	windowStart, windowEnd := at(9, 0), at(17, 0)
	free := ComplementIntervals(busy, windowStart, windowEnd)

	// Free and clipped busy must tile the window exactly: no gaps, no overlaps.
	var all []Interval
	for _, iv := range busy {
		if clipped, ok := ClipInterval(iv, windowStart, windowEnd); ok {
			all = append(all, clipped)
		}
	}
	all = append(all, free...)
	tiled := MergeIntervals(all)
	require.Len(t, tiled, 1)
	assert.Equal(t, Interval{Start: windowStart, End: windowEnd}, tiled[0])

	for i := range free {
		for _, iv := range busy {
			assert.False(t, IntervalsOverlap(free[i], iv), "free slot overlaps busy interval")
		}
	}
}

func TestClipInterval(t *testing.T) {
	clipped, ok := ClipInterval(Interval{Start: at(8, 0), End: at(18, 0)}, at(9, 0), at(17, 0))
	require.True(t, ok)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(17, 0)}, clipped)

	_, ok = ClipInterval(Interval{Start: at(7, 0), End: at(8, 0)}, at(9, 0), at(17, 0))
	assert.False(t, ok)
}
