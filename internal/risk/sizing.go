package risk

import (
	"github.com/shopspring/decimal"

	"github.com/tradegate/pretrade/internal/model"
)

// FixedRiskSizer computes an order quantity from a fixed fraction of
// account equity risked between an entry and a stop-loss price. All
// arithmetic is exact decimal; every degenerate input (zero risk
// distance, zero exchange rate) resolves to a zero quantity rather
// than a division error.
type FixedRiskSizer struct {
	instrument *model.Instrument
}

// NewFixedRiskSizer creates a sizer for the given instrument.
func NewFixedRiskSizer(instrument *model.Instrument) *FixedRiskSizer {
	return &FixedRiskSizer{instrument: instrument}
}

// Calculate returns the order quantity for risking the given fraction
// of equity between entry and stopLoss.
//
// risk and commissionRate are fractions (0.01 = 1%). exchangeRate
// converts the quote currency to the account currency. A non-nil
// hardLimit caps the raw size before batching. units partitions the
// position into equal tranches, and a positive unitBatchSize rounds
// each tranche down to the nearest batch multiple. The result is
// finally capped by the instrument's maximum quantity and rounded down
// to its size precision.
func (s *FixedRiskSizer) Calculate(
	entry model.Price,
	stopLoss model.Price,
	equity model.Money,
	risk decimal.Decimal,
	commissionRate decimal.Decimal,
	exchangeRate decimal.Decimal,
	hardLimit *decimal.Decimal,
	unitBatchSize decimal.Decimal,
	units int,
) model.Quantity {
	riskTicks := entry.Decimal().Sub(stopLoss.Decimal()).Abs().Div(s.instrument.TickSize)
	if !riskTicks.IsPositive() || !exchangeRate.IsPositive() {
		return model.ZeroQuantity(s.instrument.SizePrecision)
	}

	riskMoney := equity.Amount.Mul(risk)
	riskMoney = riskMoney.Sub(riskMoney.Mul(commissionRate))

	multiplier := s.instrument.Multiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}
	tickValue := s.instrument.TickSize.Mul(multiplier)

	size := riskMoney.Div(exchangeRate).Div(riskTicks.Mul(tickValue))

	if hardLimit != nil && size.GreaterThan(*hardLimit) {
		size = *hardLimit
	}

	if units > 1 {
		size = size.Div(decimal.NewFromInt(int64(units)))
	}
	if size.IsNegative() {
		size = decimal.Zero
	}
	if unitBatchSize.IsPositive() {
		size = size.Div(unitBatchSize).Floor().Mul(unitBatchSize)
	}

	if s.instrument.MaxQuantity != nil && size.GreaterThan(s.instrument.MaxQuantity.Decimal()) {
		size = s.instrument.MaxQuantity.Decimal()
	}

	return model.NewQuantity(size.RoundDown(s.instrument.SizePrecision), s.instrument.SizePrecision)
}
