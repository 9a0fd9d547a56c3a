package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFromWeights(t *testing.T) {
	cases := []struct {
		sum  int
		want ConflictSeverity
	}{
		{2, SeverityLow},     // low + low
		{3, SeverityLow},     // low + medium
		{4, SeverityMedium},  // medium + medium
		{5, SeverityMedium},  // medium + high
		{6, SeverityHigh},    // high + high
		{7, SeverityHigh},    // high + urgent
		{8, SeverityCritical}, // urgent + urgent
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeverityFromWeights(tc.sum), "sum %d", tc.sum)
	}
}
