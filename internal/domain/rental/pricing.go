package rental

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// PriceCalculator computes the total rental price for a daily rate,
// quantity and date period. Implementations must be pure.
type PriceCalculator interface {
	Calculate(dailyRate Money, quantity int, period DatePeriod) (Money, error)
}

// StandardPriceCalculator charges the daily rate for every unit on every
// calendar day of the period, both boundary days included.
type StandardPriceCalculator struct{}

func NewStandardPriceCalculator() *StandardPriceCalculator {
	return &StandardPriceCalculator{}
}

func (c *StandardPriceCalculator) Calculate(dailyRate Money, quantity int, period DatePeriod) (Money, error) {
	if quantity < 1 {
		return Money{}, ErrInvalidQuantity
	}

	return dailyRate.Mul(int64(quantity) * int64(period.Days())), nil
}
