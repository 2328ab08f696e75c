/*
Package money provides the decimal-backed quantity type shared by every
other package in this repository: currency amounts (salaries, prices,
billing rates, expenses) and hour amounts (charged hours,
planned/target/actual hours on deliverables and projects). Per-title
daily caps and per-day hour arithmetic in the allocator stay float64.

Using decimal.Decimal instead of float64 avoids the rounding drift that
would otherwise accumulate across a decade of daily hour charges and
monthly payroll postings; it also makes "round to nearest 1000" and
"round to 0.1 hours" exact operations instead of float approximations.
*/
package money

import "github.com/shopspring/decimal"

// Unit disambiguates what an Amount measures so a currency value and an
// hours value are never accidentally combined.
type Unit string

const (
	UnitCurrency Unit = "currency"
	UnitHours    Unit = "hours"
)

// Amount is a decimal quantity tagged with its unit.
type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

func New(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func Zero(unit Unit) Amount { return Amount{Value: decimal.Zero, Unit: unit} }

func Hours(v float64) Amount    { return New(v, UnitHours) }
func Currency(v float64) Amount { return New(v, UnitCurrency) }
func CurrencyInt(v int) Amount  { return NewInt(v, UnitCurrency) }

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) MulFloat(s float64) Amount    { return a.Mul(decimal.NewFromFloat(s)) }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Unit: a.Unit} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Unit: a.Unit} }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.Value.GreaterThanOrEqual(b.Value) }
func (a Amount) LessThanOrEqual(b Amount) bool    { return a.Value.LessThanOrEqual(b.Value) }

func (a Amount) Min(b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Float64 returns the value as a float64, for call sites that only need
// an approximate magnitude (e.g. logging, distribution targets).
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// RoundHours rounds to one decimal place, matching the allocator's
// "rounded to 0.1" hour-charge rule.
func (a Amount) RoundHours() Amount {
	return Amount{Value: a.Value.Round(1), Unit: a.Unit}
}

// RoundToNearest1000 rounds a currency amount to the nearest 1000 units,
// matching the Fixed-project pricing rule.
func (a Amount) RoundToNearest1000() Amount {
	thousand := decimal.NewFromInt(1000)
	divided := a.Value.Div(thousand)
	return Amount{Value: divided.Round(0).Mul(thousand), Unit: a.Unit}
}
