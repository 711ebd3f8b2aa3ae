package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"shortest round trip", 0.05, "0.05"},
		{"negative", -1.0, "-1"},
		{"large value stays decimal", 1234567.89, "1234567.89"},
		{"zero", 0, "0"},
		{"nan becomes empty cell", math.NaN(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.input))
		})
	}
}

func TestFormatFloatPrec(t *testing.T) {
	assert.Equal(t, "13.40", FormatFloatPrec(13.4, 2))
	assert.Equal(t, "0.0500", FormatFloatPrec(0.05, 4))
	assert.Equal(t, "", FormatFloatPrec(math.NaN(), 2))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "47529", FormatInt(47529))
	assert.Equal(t, "0", FormatInt(0))
}
