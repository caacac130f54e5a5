package locale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carbex/internal/locale"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 16.7, locale.Round(16.6666, 1))
	assert.Equal(t, 0.13, locale.Round(0.125, 2))
	assert.Equal(t, -0.13, locale.Round(-0.125, 2))
	assert.Equal(t, 3.0, locale.Round(2.999, 2))
}

func TestTonnes(t *testing.T) {
	assert.Equal(t, 1.0, locale.Tonnes(1000, 2))
	assert.Equal(t, 1.23, locale.Tonnes(1234.5, 2))
	assert.Equal(t, 1.2345, locale.Tonnes(1234.5, 4))
	assert.Equal(t, 0.0, locale.Tonnes(0, 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 16.7, locale.Percent(1000, 6000, 1))
	assert.Equal(t, 33.3, locale.Percent(2000, 6000, 1))
	assert.Equal(t, 50.0, locale.Percent(3000, 6000, 1))
	assert.Equal(t, 0.0, locale.Percent(10, 0, 1))
	assert.Equal(t, 0.0, locale.Percent(10, -5, 1))
}

func TestShares_LargestRemainder(t *testing.T) {
	got := locale.Shares([]float64{3335, 3335, 3330}, 1)
	assert.Equal(t, []float64{33.4, 33.3, 33.3}, got)

	got = locale.Shares([]float64{1, 1, 1}, 1)
	assert.Equal(t, []float64{33.4, 33.3, 33.3}, got)

	assert.Equal(t, []float64{16.7, 33.3, 50.0}, locale.Shares([]float64{1000, 2000, 3000}, 1))
	assert.Equal(t, []float64{100.0}, locale.Shares([]float64{42}, 1))
	assert.Equal(t, []float64{0.0, 0.0}, locale.Shares([]float64{0, 0}, 1))
	assert.Empty(t, locale.Shares(nil, 1))
}

func TestShares_SumToHundred(t *testing.T) {
	sets := [][]float64{
		{3335, 3335, 3330},
		{1, 1, 1, 1, 1, 1, 1},
		{0.5, 999.5, 12.25, 7},
		{10, 0, 20},
	}
	for _, parts := range sets {
		var sum float64
		for _, v := range locale.Shares(parts, 1) {
			sum += v
		}
		assert.InDelta(t, 100.0, sum, 1e-9, "parts %v", parts)
	}
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, 57.1, locale.Multiply(1000, 0.0571, 4))
	assert.Equal(t, 0.3, locale.Multiply(0.1, 3, 4))
}

func TestNumber_UsesDecimalComma(t *testing.T) {
	assert.Equal(t, "0,00", locale.Number(0, 2))
	assert.Contains(t, locale.Number(1234.5, 2), ",50")
	assert.Equal(t, "16,7 %", locale.PercentLabel(16.7))
}

func TestPeriodLabel(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"full year", d(2024, 1, 1), d(2024, 12, 31), "Année 2024"},
		{"single month", d(2024, 3, 1), d(2024, 3, 31), "mars 2024"},
		{"range within year", d(2024, 1, 1), d(2024, 6, 30), "janv. - juin 2024"},
		{"range across years", d(2023, 11, 1), d(2024, 2, 29), "nov. 2023 - févr. 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.PeriodLabel(tt.start, tt.end))
		})
	}
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", locale.Date(ts))
	assert.Equal(t, "5 mars 2024", locale.LongDate(ts))
	assert.Equal(t, "mars 2024", locale.MonthLabel(ts))
}
