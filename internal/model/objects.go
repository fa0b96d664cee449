package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-style currency code.
type Currency string

// Price is a decimal price with an explicit precision (number of decimal
// places). Precision is carried separately from the decimal value so the
// engine can validate it against an instrument's configured precision.
type Price struct {
	value     decimal.Decimal
	precision int32
}

// NewPrice creates a Price with the given value and precision.
func NewPrice(value decimal.Decimal, precision int32) Price {
	return Price{value: value, precision: precision}
}

// PriceFromString parses a price, inferring precision from the number of
// decimal places in the string, e.g. "1.00010" has precision 5.
func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{value: d, precision: precisionOf(d)}, nil
}

// MustPriceFromString parses a price and panics on malformed input.
// Intended for fixtures and static definitions.
func MustPriceFromString(s string) Price {
	p, err := PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) Precision() int32         { return p.precision }
func (p Price) IsPositive() bool         { return p.value.IsPositive() }
func (p Price) IsZero() bool             { return p.value.IsZero() }

func (p Price) String() string {
	return p.value.StringFixed(p.precision)
}

// Quantity is a non-negative decimal size with an explicit precision.
type Quantity struct {
	value     decimal.Decimal
	precision int32
}

// NewQuantity creates a Quantity with the given value and precision.
func NewQuantity(value decimal.Decimal, precision int32) Quantity {
	return Quantity{value: value, precision: precision}
}

// QuantityFromString parses a quantity, inferring precision from the
// number of decimal places in the string.
func QuantityFromString(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	if d.IsNegative() {
		return Quantity{}, fmt.Errorf("invalid quantity %q: negative", s)
	}
	return Quantity{value: d, precision: precisionOf(d)}, nil
}

// MustQuantityFromString parses a quantity and panics on malformed input.
func MustQuantityFromString(s string) Quantity {
	q, err := QuantityFromString(s)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity at the given precision.
func ZeroQuantity(precision int32) Quantity {
	return Quantity{value: decimal.Zero, precision: precision}
}

func (q Quantity) Decimal() decimal.Decimal { return q.value }
func (q Quantity) Precision() int32         { return q.precision }
func (q Quantity) IsZero() bool             { return q.value.IsZero() }

// GreaterThan reports whether q > other by value.
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// LessThan reports whether q < other by value.
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

func (q Quantity) String() string {
	return q.value.StringFixed(q.precision)
}

// Money is a decimal amount in a specific currency. All notional and
// balance arithmetic runs on Money rather than floats.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney creates Money from a decimal amount and currency.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// MoneyFromString parses a decimal string into Money.
func MoneyFromString(s string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", s, err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// Add returns m + other. Panics if the currencies differ, which would be
// a programming error in the risk pipeline.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("currency mismatch: %s + %s", m.Currency, other.Currency))
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// GreaterThan reports whether m > other by amount.
func (m Money) GreaterThan(other Money) bool {
	return m.Amount.GreaterThan(other.Amount)
}

// GreaterThanOrEqual reports whether m >= other by amount.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.Amount.GreaterThanOrEqual(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}

// precisionOf returns the number of decimal places carried by d.
func precisionOf(d decimal.Decimal) int32 {
	if d.Exponent() < 0 {
		return -d.Exponent()
	}
	return 0
}
