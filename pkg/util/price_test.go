package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name            string
		basePrice       float64
		discountPercent *float64
		want            float64
	}{
		{
			name:            "No discount",
			basePrice:       100.0,
			discountPercent: nil,
			want:            100.0,
		},
		{
			name:            "Zero discount",
			basePrice:       100.0,
			discountPercent: floatPtr(0),
			want:            100.0,
		},
		{
			name:            "Twenty percent discount",
			basePrice:       100.0,
			discountPercent: floatPtr(20),
			want:            80.0,
		},
		{
			name:            "Fifty percent discount",
			basePrice:       59.90,
			discountPercent: floatPtr(50),
			want:            29.95,
		},
		{
			name:            "Negative discount ignored",
			basePrice:       100.0,
			discountPercent: floatPtr(-10),
			want:            100.0,
		},
		{
			name:            "Full discount ignored",
			basePrice:       100.0,
			discountPercent: floatPtr(100),
			want:            100.0,
		},
		{
			name:            "Over full discount ignored",
			basePrice:       100.0,
			discountPercent: floatPtr(150),
			want:            100.0,
		},
		{
			name:            "Fractional discount",
			basePrice:       80.0,
			discountPercent: floatPtr(12.5),
			want:            70.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePrice(tt.basePrice, tt.discountPercent)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestEffectivePriceNeverExceedsBase(t *testing.T) {
	base := 249.99
	for _, d := range []float64{-50, 0, 1, 25, 99.9, 100, 500} {
		got := EffectivePrice(base, &d)
		assert.LessOrEqual(t, got, base, "discount %v", d)
		assert.Greater(t, got, 0.0, "discount %v", d)
	}
}

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{
			name:   "Already rounded",
			amount: 210.00,
			want:   210.00,
		},
		{
			name:   "Round down",
			amount: 19.994,
			want:   19.99,
		},
		{
			name:   "Round up",
			amount: 19.995,
			want:   20.00,
		},
		{
			name:   "Floating point accumulation",
			amount: 0.1 + 0.2,
			want:   0.3,
		},
		{
			name:   "Zero",
			amount: 0,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundPrice(tt.amount))
		})
	}
}
