package rental

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidDatePeriod = errors.New("end date must not be before start date")
	ErrNegativeMoney     = errors.New("money cannot be negative")
)

// DatePeriod is a rental date range, inclusive of both boundary days.
type DatePeriod struct {
	start time.Time
	end   time.Time
}

// NewDatePeriod normalizes both dates to midnight UTC. A zero end date
// collapses to a single-day period.
func NewDatePeriod(start, end time.Time) (DatePeriod, error) {
	s := truncateToDate(start)
	if end.IsZero() {
		return DatePeriod{start: s, end: s}, nil
	}

	e := truncateToDate(end)
	if e.Before(s) {
		return DatePeriod{}, ErrInvalidDatePeriod
	}

	return DatePeriod{start: s, end: e}, nil
}

func (p DatePeriod) Start() time.Time {
	return p.start
}

func (p DatePeriod) End() time.Time {
	return p.end
}

// Days counts calendar days covered by the period, counting both the
// start and end day. start == end is one day.
func (p DatePeriod) Days() int {
	return int(p.end.Sub(p.start).Hours()/24) + 1
}

func (p DatePeriod) Contains(t time.Time) bool {
	d := truncateToDate(t)
	return !d.Before(p.start) && !d.After(p.end)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an amount in kobo (minor currency units).
type Money struct {
	kobo int64
}

func NewMoney(kobo int64) (Money, error) {
	if kobo < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{kobo: kobo}, nil
}

// NewMoneyFromNaira converts a major-unit amount to kobo with exact
// half-away-from-zero rounding: kobo = round(naira * 100).
func NewMoneyFromNaira(naira float64) (Money, error) {
	if naira < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{kobo: int64(math.Round(naira * 100))}, nil
}

func (m Money) Kobo() int64 {
	return m.kobo
}

func (m Money) Naira() float64 {
	return float64(m.kobo) / 100.0
}

func (m Money) IsZero() bool {
	return m.kobo == 0
}

func (m Money) Mul(n int64) Money {
	return Money{kobo: m.kobo * n}
}

func (m Money) Add(other Money) Money {
	return Money{kobo: m.kobo + other.kobo}
}
