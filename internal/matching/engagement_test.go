package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementQualityBranches(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"excellent ceiling", 0.05, 1.0},
		{"above ceiling", 0.12, 1.0},
		{"mid band", 0.03, 0.03 / 0.05},
		{"mid band upper", 0.045, 0.045 / 0.05},
		{"floor boundary takes mid branch", 0.02, 0.02 / 0.05},
		{"below floor", 0.01, (0.01 / 0.02) * 0.5},
		{"zero", 0, 0},
		{"negative clamps to zero", -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EngagementQuality(tt.rate), 1e-9)
		})
	}
}

// The curve is intentionally discontinuous at the 0.02 floor: approaching
// from below it tends to 0.5, at the boundary it drops to 0.4.
func TestEngagementQualityDiscontinuityAtFloor(t *testing.T) {
	below := EngagementQuality(0.02 - 1e-9)
	at := EngagementQuality(0.02)

	assert.InDelta(t, 0.5, below, 1e-6)
	assert.InDelta(t, 0.4, at, 1e-9)
	assert.Greater(t, below, at)
}

func TestEngagementQualityBoundedAndMonotonicWithinBranches(t *testing.T) {
	rates := []float64{0, 0.001, 0.005, 0.01, 0.015, 0.019}
	prev := -1.0
	for _, r := range rates {
		q := EngagementQuality(r)
		assert.GreaterOrEqual(t, q, 0.0)
		assert.LessOrEqual(t, q, 1.0)
		assert.GreaterOrEqual(t, q, prev, "low branch must be non-decreasing")
		prev = q
	}

	rates = []float64{0.02, 0.025, 0.03, 0.04, 0.049, 0.05, 0.08}
	prev = -1.0
	for _, r := range rates {
		q := EngagementQuality(r)
		assert.GreaterOrEqual(t, q, 0.0)
		assert.LessOrEqual(t, q, 1.0)
		assert.GreaterOrEqual(t, q, prev, "upper branches must be non-decreasing")
		prev = q
	}
}
