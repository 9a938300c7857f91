package finlit

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// number lists the types accepted by the decimal factories.
type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T number](value T) decimal.Decimal {
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

// Amount is a quantity of a commodity: a currency like USD or anything held in
// units, like a fund share.
type Amount struct {
	value decimal.Decimal
	cur   string
}

// A returns an Amount of value units of commodity cur.
func A[T number](value T, cur string) Amount {
	return Amount{value: newDecimal(value), cur: cur}
}

func (a Amount) Value() decimal.Decimal { return a.value }
func (a Amount) Currency() string       { return a.cur }
func (a Amount) IsZero() bool           { return a.value.IsZero() }
func (a Amount) IsNegative() bool       { return a.value.IsNegative() }
func (a Amount) Neg() Amount            { return Amount{value: a.value.Neg(), cur: a.cur} }
func (a Amount) Abs() Amount            { return Amount{value: a.value.Abs(), cur: a.cur} }
func (a Amount) Mul(d decimal.Decimal) Amount {
	return Amount{value: a.value.Mul(d), cur: a.cur}
}
func (a Amount) Equal(b Amount) bool { return a.cur == b.cur && a.value.Equal(b.value) }

// Add sums two amounts of the same commodity. The empty commodity is weak and
// takes the other operand's.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value), cur: sameCur(a, b)} }

func sameCur(a, b Amount) string {
	switch {
	case a.cur == "":
		return b.cur
	case b.cur == "":
		return a.cur
	case a.cur != b.cur:
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// Float returns the value as a float64, for projections and charts.
func (a Amount) Float() float64 { return a.value.InexactFloat64() }

// String formats the amount the way its currency is usually written
// ("$1,234.50"). Commodities unknown to ISO 4217 are written as "12.5 VOO".
func (a Amount) String() string {
	cur := money.GetCurrency(a.cur)
	if cur == nil {
		return a.value.String() + " " + a.cur
	}
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
