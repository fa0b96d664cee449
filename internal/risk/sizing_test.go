package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tradegate/pretrade/internal/model"
)

func fxInstrument() *model.Instrument {
	maxQty := model.MustQuantityFromString("10000000")
	return &model.Instrument{
		ID:             model.NewInstrumentID("AUD/USD", "SIM"),
		AssetClass:     model.AssetClassFX,
		IsCurrencyPair: true,
		BaseCurrency:   "AUD",
		QuoteCurrency:  "USD",
		PricePrecision: 5,
		SizePrecision:  0,
		TickSize:       decimal.RequireFromString("0.0001"),
		Multiplier:     decimal.NewFromInt(1),
		MaxQuantity:    &maxQty,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFixedRiskSizer_Calculate(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	// Risking 1% of 100,000 over a 10 tick stop distance.
	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.Decimal().Equal(d("1000000")), "got %s", qty)
}

func TestFixedRiskSizer_ZeroRiskDistanceReturnsZero(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00100"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.IsZero())
}

func TestFixedRiskSizer_ZeroExchangeRateReturnsZero(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.Zero,
		nil,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.IsZero())
}

func TestFixedRiskSizer_HardLimitCapsBeforeBatching(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())
	hardLimit := d("250000")

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		&hardLimit,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.Decimal().Equal(d("250000")), "got %s", qty)
}

func TestFixedRiskSizer_UnitsPartitionTheSize(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		2,
	)

	assert.True(t, qty.Decimal().Equal(d("500000")), "got %s", qty)
}

func TestFixedRiskSizer_UnitBatchSizeRoundsDown(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		d("30000"),
		1,
	)

	// 1,000,000 rounds down to the nearest 30,000 multiple.
	assert.True(t, qty.Decimal().Equal(d("990000")), "got %s", qty)
}

func TestFixedRiskSizer_CommissionReducesRiskableMoney(t *testing.T) {
	sizer := NewFixedRiskSizer(fxInstrument())

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		d("0.0015"),
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.Decimal().Equal(d("998500")), "got %s", qty)
}

func TestFixedRiskSizer_CappedByInstrumentMaxQuantity(t *testing.T) {
	instrument := fxInstrument()
	maxQty := model.MustQuantityFromString("500000")
	instrument.MaxQuantity = &maxQty
	sizer := NewFixedRiskSizer(instrument)

	qty := sizer.Calculate(
		model.MustPriceFromString("1.00100"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("100000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		1,
	)

	assert.True(t, qty.Decimal().Equal(d("500000")), "got %s", qty)
}

func TestFixedRiskSizer_RoundsDownToSizePrecision(t *testing.T) {
	instrument := fxInstrument()
	instrument.MaxQuantity = nil
	sizer := NewFixedRiskSizer(instrument)

	// 3 tick distance does not divide evenly; the fractional unit is
	// truncated, never rounded up.
	qty := sizer.Calculate(
		model.MustPriceFromString("1.00030"),
		model.MustPriceFromString("1.00000"),
		model.NewMoney(d("1000"), "USD"),
		d("0.01"),
		decimal.Zero,
		decimal.NewFromInt(1),
		nil,
		decimal.Zero,
		1,
	)

	// 10 / 0.0003 = 33333.33..., truncated to whole units.
	assert.True(t, qty.Decimal().Equal(d("33333")), "got %s", qty)
}
