package model

import "github.com/shopspring/decimal"

// Instrument holds the static definition the risk engine validates
// against. It is read-only to the engine; definitions are loaded into
// the cache at startup (or refreshed by a provider).
type Instrument struct {
	ID             InstrumentID
	AssetClass     AssetClass
	IsCurrencyPair bool
	BaseCurrency   Currency
	QuoteCurrency  Currency

	PricePrecision int32
	SizePrecision  int32
	TickSize       decimal.Decimal
	Multiplier     decimal.Decimal

	// Optional bounds; nil means unconstrained on that side.
	MinQuantity *Quantity
	MaxQuantity *Quantity
	MinPrice    *Price
	MaxPrice    *Price
	MinNotional *Money
	MaxNotional *Money
}

// NotionalValue computes the economic exposure of quantity at price,
// expressed in the instrument's quote currency.
func (i *Instrument) NotionalValue(quantity Quantity, price Price) Money {
	multiplier := i.Multiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}
	amount := quantity.Decimal().Mul(price.Decimal()).Mul(multiplier)
	return NewMoney(amount, i.QuoteCurrency)
}

// BaseNotionalValue expresses the exposure of quantity in the base
// currency, used for SELL orders on currency pairs where the quote
// notional divided by price (the 1/price exchange rate) collapses to
// the quantity itself.
func (i *Instrument) BaseNotionalValue(quantity Quantity) Money {
	return NewMoney(quantity.Decimal(), i.BaseCurrency)
}
