package partnership

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// centPlaces is the number of decimal places amounts are rounded to on output.
const centPlaces = 2

// Money represents a monetary value in the partnership's single currency.
//
// Arithmetic is exact decimal arithmetic; rounding only happens through Round.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns a Money from any supported numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// String returns the amount with two decimals and no currency symbol.
func (m Money) String() string { return m.value.StringFixed(centPlaces) }

// Format returns the amount formatted for the given ISO currency code, e.g. "$1,234.50".
func (m Money) Format(currency string) string {
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Decimal() decimal.Decimal          { return m.value }
func (m Money) Equal(n Money) bool                { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                      { return m.value.IsZero() }
func (m Money) IsPositive() bool                  { return m.value.IsPositive() }
func (m Money) IsNegative() bool                  { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool             { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool      { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool          { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool   { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                        { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money                 { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money                 { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(f decimal.Decimal) Money       { return Money{value: m.value.Mul(f)} }
func (m Money) Div(f decimal.Decimal) Money       { return Money{value: m.value.Div(f)} }
func (m Money) Ratio(n Money) decimal.Decimal     { return m.value.Div(n.value) }
func (m Money) Round() Money                      { return Money{value: m.value.Round(centPlaces)} }
func (m Money) Min(n Money) Money                 { return Money{value: decimal.Min(m.value, n.value)} }
func (m Money) Max(n Money) Money                 { return Money{value: decimal.Max(m.value, n.value)} }
func (m Money) Float() float64                    { return m.value.InexactFloat64() }
func (m Money) Within(n Money, tolerance float64) bool {
	return m.value.Sub(n.value).Abs().LessThanOrEqual(decimal.NewFromFloat(tolerance))
}

// Sum returns the total of all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount as a plain JSON number, rounded to cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(centPlaces).MarshalJSON()
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}

// MarshalYAML writes the amount as a number.
func (m Money) MarshalYAML() (any, error) {
	return m.value.Round(centPlaces).InexactFloat64(), nil
}
