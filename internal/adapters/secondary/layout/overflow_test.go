package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateShortTextFits(t *testing.T) {
	est := newTestEngine().Estimate("a few words", 18, 10.5, 5.0)

	assert.Equal(t, 1, est.LinesNeeded)
	assert.False(t, est.Overflows)
	assert.Greater(t, est.LinesAvailable, 1)
}

func TestEstimateLongTextOverflows(t *testing.T) {
	long := strings.Repeat("somewhat lengthy words keep arriving here ", 80)
	est := newTestEngine().Estimate(long, 18, 3.0, 1.0)

	assert.True(t, est.Overflows)
	assert.Greater(t, est.LinesNeeded, est.LinesAvailable)
}

func TestEstimateLinesAvailable(t *testing.T) {
	// line height = 18/72*1.3 = 0.325in; floor(5.0/0.325) = 15
	est := newTestEngine().Estimate("x", 18, 10.5, 5.0)
	assert.Equal(t, 15, est.LinesAvailable)
}

func TestEstimateEmptyText(t *testing.T) {
	est := newTestEngine().Estimate("", 18, 10.5, 5.0)
	assert.Equal(t, 1, est.LinesNeeded)
	assert.False(t, est.Overflows)
}

func TestAutoSize(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name   string
		length int
		base   int
		want   int
	}{
		{"short keeps base", 100, 22, 22},
		{"over 300 caps at 18", 301, 22, 18},
		{"over 500 caps at 16", 501, 22, 16},
		{"over 700 caps at 14", 701, 22, 14},
		{"over 1000 caps at 12", 1001, 22, 12},
		{"never raises a small base", 301, 14, 14},
		{"boundary is exclusive", 300, 22, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.AutoSize(tt.length, tt.base))
		})
	}
}

func TestAutoSizeMonotone(t *testing.T) {
	e := newTestEngine()
	prev := e.AutoSize(0, 22)
	for length := 0; length <= 1200; length += 50 {
		got := e.AutoSize(length, 22)
		assert.LessOrEqual(t, got, prev, "length %d", length)
		prev = got
	}
}
