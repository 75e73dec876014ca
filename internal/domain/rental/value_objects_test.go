//go:build unit

package rental_test

import (
	"testing"
	"time"

	"rentmart/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatePeriod(t *testing.T) {
	t.Run("days are inclusive of both boundaries", func(t *testing.T) {
		cases := []struct {
			name  string
			start time.Time
			end   time.Time
			days  int
		}{
			{name: "single day", start: date(2025, 3, 10), end: date(2025, 3, 10), days: 1},
			{name: "three days", start: date(2025, 3, 10), end: date(2025, 3, 12), days: 3},
			{name: "across month boundary", start: date(2025, 1, 30), end: date(2025, 2, 2), days: 4},
			{name: "full week", start: date(2025, 6, 1), end: date(2025, 6, 7), days: 7},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				period, err := rental.NewDatePeriod(tc.start, tc.end)
				require.NoError(t, err)
				assert.Equal(t, tc.days, period.Days())
			})
		}
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := rental.NewDatePeriod(date(2025, 3, 12), date(2025, 3, 10))
		assert.ErrorIs(t, err, rental.ErrInvalidDatePeriod)
	})

	t.Run("zero end collapses to single day", func(t *testing.T) {
		period, err := rental.NewDatePeriod(date(2025, 3, 10), time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 1, period.Days())
		assert.Equal(t, period.Start(), period.End())
	})

	t.Run("times are truncated to midnight UTC", func(t *testing.T) {
		start := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
		end := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
		period, err := rental.NewDatePeriod(start, end)
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 10), period.Start())
		assert.Equal(t, 2, period.Days())
	})
}

func TestMoney(t *testing.T) {
	t.Run("naira converts to kobo with rounding", func(t *testing.T) {
		cases := []struct {
			name  string
			naira float64
			kobo  int64
		}{
			{name: "whole amount", naira: 5000, kobo: 500000},
			{name: "two decimal places", naira: 123.45, kobo: 12345},
			{name: "rounds up", naira: 0.015, kobo: 2},
			{name: "float artifact rounds cleanly", naira: 19.99, kobo: 1999},
			{name: "zero", naira: 0, kobo: 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				m, err := rental.NewMoneyFromNaira(tc.naira)
				require.NoError(t, err)
				assert.Equal(t, tc.kobo, m.Kobo())
			})
		}
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		_, err := rental.NewMoney(-1)
		assert.ErrorIs(t, err, rental.ErrNegativeMoney)

		_, err = rental.NewMoneyFromNaira(-0.01)
		assert.ErrorIs(t, err, rental.ErrNegativeMoney)
	})

	t.Run("arithmetic", func(t *testing.T) {
		m, err := rental.NewMoney(500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), m.Mul(3).Kobo())

		other, err := rental.NewMoney(250)
		require.NoError(t, err)
		assert.Equal(t, int64(750), m.Add(other).Kobo())
		assert.InDelta(t, 5.0, m.Naira(), 1e-9)
	})
}
