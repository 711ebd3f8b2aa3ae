package macro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthetic_Shape(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC)

	series := Synthetic(42, start, end)

	require.Len(t, series, 4)
	assert.Equal(t, []string{SeriesFedFunds, SeriesMortgage30US, SeriesCPI, SeriesUnemployment},
		[]string{series[0].ID, series[1].ID, series[2].ID, series[3].ID})

	for _, s := range series {
		assert.Len(t, s.Observations, 24, "series %s", s.ID)
		assert.Equal(t, start, s.Observations[0].Date)
		assert.Equal(t, end, s.Observations[23].Date)
	}
}

func TestSynthetic_ValueFloors(t *testing.T) {
	series := Synthetic(7, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	for _, s := range series {
		for _, o := range s.Observations {
			switch s.ID {
			case SeriesFedFunds:
				assert.GreaterOrEqual(t, o.Value, 0.1)
			case SeriesCPI:
				assert.Greater(t, o.Value, 0.0)
			case SeriesUnemployment:
				assert.GreaterOrEqual(t, o.Value, 3.0)
			}
		}
	}
}

func TestSynthetic_SeedIsDeterministic(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)

	first := Synthetic(42, start, end)
	second := Synthetic(42, start, end)
	assert.Equal(t, first, second, "same seed must regenerate identical data")

	other := Synthetic(43, start, end)
	assert.NotEqual(t, first[0].Observations, other[0].Observations,
		"a different seed should move the walks")
}

func TestSynthetic_EmptyPeriod(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, Synthetic(42, start, end))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single month",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "full year",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			want:  12,
		},
		{
			name:  "across year boundary",
			start: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
		{
			name:  "default config span",
			start: time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			want:  252,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthsBetween(tt.start, tt.end))
		})
	}
}
