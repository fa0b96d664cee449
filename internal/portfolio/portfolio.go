// Package portfolio answers the net-exposure queries the risk engine's
// REDUCING gate depends on. Exposure is derived from cached positions;
// valuation and margin are external concerns.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/tradegate/pretrade/internal/cache"
	"github.com/tradegate/pretrade/internal/model"
)

// Portfolio provides read-only exposure queries over the cache.
type Portfolio struct {
	cache *cache.Cache
}

// New creates a Portfolio over the given cache.
func New(c *cache.Cache) *Portfolio {
	return &Portfolio{cache: c}
}

// NetExposure returns the signed net quantity across all positions for
// the instrument: positive when net long, negative when net short.
func (p *Portfolio) NetExposure(id model.InstrumentID) decimal.Decimal {
	net := decimal.Zero
	for _, position := range p.cache.PositionsForInstrument(id) {
		switch position.Side {
		case model.PositionSideLong:
			net = net.Add(position.Quantity.Decimal())
		case model.PositionSideShort:
			net = net.Sub(position.Quantity.Decimal())
		}
	}
	return net
}

// IsNetLong reports whether the portfolio is net long the instrument.
func (p *Portfolio) IsNetLong(id model.InstrumentID) bool {
	return p.NetExposure(id).IsPositive()
}

// IsNetShort reports whether the portfolio is net short the instrument.
func (p *Portfolio) IsNetShort(id model.InstrumentID) bool {
	return p.NetExposure(id).IsNegative()
}
