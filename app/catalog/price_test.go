package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount float64
		want     string
	}{
		{"no discount", "200", 0, "200"},
		{"quarter off", "200", 25, "150"},
		{"rounds to two decimals", "99.99", 10, "89.99"},
		{"third off rounds", "100", 33.33, "66.67"},
		{"discount above 100 clamps to free", "200", 150, "0"},
		{"negative discount clamps to none", "200", -10, "200"},
		{"full discount", "80", 100, "0"},
		{"zero base", "0", 25, "0"},
		{"negative base", "-5", 25, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := decimal.RequireFromString(tt.base)
			want := decimal.RequireFromString(tt.want)

			got := EffectivePrice(base, tt.discount)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestClampDiscount(t *testing.T) {
	assert.Equal(t, 0.0, ClampDiscount(-1))
	assert.Equal(t, 100.0, ClampDiscount(101))
	assert.Equal(t, 42.5, ClampDiscount(42.5))
}
