//go:build unit

package rental_test

import (
	"testing"

	"rentmart/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPriceCalculator(t *testing.T) {
	calc := rental.NewStandardPriceCalculator()

	mustMoney := func(kobo int64) rental.Money {
		m, err := rental.NewMoney(kobo)
		require.NoError(t, err)
		return m
	}
	mustPeriod := func(startDay, endDay int) rental.DatePeriod {
		p, err := rental.NewDatePeriod(date(2025, 3, startDay), date(2025, 3, endDay))
		require.NoError(t, err)
		return p
	}

	t.Run("price is rate times quantity times days", func(t *testing.T) {
		cases := []struct {
			name     string
			rate     rental.Money
			quantity int
			period   rental.DatePeriod
			want     int64
		}{
			// 5000 naira/day, 2 units, 3 days -> 3,000,000 kobo
			{name: "two units three days", rate: mustMoney(500000), quantity: 2, period: mustPeriod(10, 12), want: 3000000},
			{name: "single unit single day", rate: mustMoney(500000), quantity: 1, period: mustPeriod(10, 10), want: 500000},
			{name: "one kobo rate", rate: mustMoney(1), quantity: 3, period: mustPeriod(1, 7), want: 21},
			{name: "zero rate", rate: mustMoney(0), quantity: 5, period: mustPeriod(1, 5), want: 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				total, err := calc.Calculate(tc.rate, tc.quantity, tc.period)
				require.NoError(t, err)
				assert.Equal(t, tc.want, total.Kobo())
			})
		}
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := calc.Calculate(mustMoney(100), quantity, mustPeriod(10, 12))
			assert.ErrorIs(t, err, rental.ErrInvalidQuantity)
		}
	})

	t.Run("same total regardless of call order", func(t *testing.T) {
		first, err := calc.Calculate(mustMoney(250), 4, mustPeriod(1, 10))
		require.NoError(t, err)
		second, err := calc.Calculate(mustMoney(250), 4, mustPeriod(1, 10))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
