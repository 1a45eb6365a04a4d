package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFee(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		rate   float64
		want   float64
	}{
		{"round amount", 100, 0.05, 5},
		{"rounds to cents", 123.45, 0.05, 6.17}, // 6.1725 -> 6.17
		{"half up", 10.10, 0.05, 0.51},          // 0.505 -> 0.51
		{"zero amount", 0, 0.05, 0},
		{"zero rate", 100, 0, 0},
		{"negative amount", -50, 0.05, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlatformFee(tt.amount, tt.rate))
		})
	}
}

func TestNetAmount(t *testing.T) {
	assert.Equal(t, 95.0, NetAmount(100, 0.05))
	assert.Equal(t, 117.28, NetAmount(123.45, 0.05))
	assert.Equal(t, 0.0, NetAmount(-1, 0.05))
}
