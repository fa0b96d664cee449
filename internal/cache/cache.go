// Package cache provides the in-memory query store the risk engine
// reads: orders, instruments, positions, accounts and the latest market
// data per instrument. All lookups are synchronous; the cache performs
// no I/O and assumes the single-owner access discipline of the engine's
// command-processing path.
package cache

import (
	"fmt"

	"github.com/tradegate/pretrade/internal/model"
)

// Cache is the map-backed implementation of the data-model queries.
type Cache struct {
	orders          map[model.ClientOrderID]*model.Order
	orderPositions  map[model.ClientOrderID]model.PositionID
	instruments     map[model.InstrumentID]*model.Instrument
	positions       map[model.PositionID]*model.Position
	accountsByVenue map[model.Venue]*model.Account
	quotes          map[model.InstrumentID]*model.QuoteTick
	trades          map[model.InstrumentID]*model.TradeTick
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		orders:          make(map[model.ClientOrderID]*model.Order),
		orderPositions:  make(map[model.ClientOrderID]model.PositionID),
		instruments:     make(map[model.InstrumentID]*model.Instrument),
		positions:       make(map[model.PositionID]*model.Position),
		accountsByVenue: make(map[model.Venue]*model.Account),
		quotes:          make(map[model.InstrumentID]*model.QuoteTick),
		trades:          make(map[model.InstrumentID]*model.TradeTick),
	}
}

// AddOrder caches an order under its client order ID, associated with
// an optional position. Adding a duplicate ID is an error; callers are
// expected to check OrderExists first.
func (c *Cache) AddOrder(order *model.Order, positionID model.PositionID) error {
	if _, exists := c.orders[order.ClientOrderID]; exists {
		return fmt.Errorf("order %s already in cache", order.ClientOrderID)
	}
	c.orders[order.ClientOrderID] = order
	if positionID != "" {
		c.orderPositions[order.ClientOrderID] = positionID
	}
	return nil
}

// OrderExists reports whether an order with the given client order ID
// is cached.
func (c *Cache) OrderExists(id model.ClientOrderID) bool {
	_, ok := c.orders[id]
	return ok
}

// Order returns the cached order for the client order ID, or nil.
func (c *Cache) Order(id model.ClientOrderID) *model.Order {
	return c.orders[id]
}

// OrderCount returns the number of cached orders.
func (c *Cache) OrderCount() int { return len(c.orders) }

// AddInstrument caches an instrument definition, replacing any prior
// definition for the same ID.
func (c *Cache) AddInstrument(instrument *model.Instrument) {
	c.instruments[instrument.ID] = instrument
}

// Instrument returns the cached instrument for the ID, or nil.
func (c *Cache) Instrument(id model.InstrumentID) *model.Instrument {
	return c.instruments[id]
}

// AddPosition caches a position.
func (c *Cache) AddPosition(position *model.Position) {
	c.positions[position.ID] = position
}

// Position returns the cached position for the ID, or nil.
func (c *Cache) Position(id model.PositionID) *model.Position {
	return c.positions[id]
}

// PositionsForInstrument returns all cached positions for the
// instrument.
func (c *Cache) PositionsForInstrument(id model.InstrumentID) []*model.Position {
	var out []*model.Position
	for _, p := range c.positions {
		if p.InstrumentID == id {
			out = append(out, p)
		}
	}
	return out
}

// AddAccount caches an account keyed by its venue.
func (c *Cache) AddAccount(account *model.Account) {
	c.accountsByVenue[account.Venue] = account
}

// AccountForVenue returns the account routing to the venue, or nil when
// routing is not yet resolved.
func (c *Cache) AccountForVenue(venue model.Venue) *model.Account {
	return c.accountsByVenue[venue]
}

// AddQuoteTick stores the latest quote for an instrument.
func (c *Cache) AddQuoteTick(quote *model.QuoteTick) {
	c.quotes[quote.InstrumentID] = quote
}

// QuoteTick returns the latest quote for the instrument, or nil.
func (c *Cache) QuoteTick(id model.InstrumentID) *model.QuoteTick {
	return c.quotes[id]
}

// AddTradeTick stores the latest trade for an instrument.
func (c *Cache) AddTradeTick(trade *model.TradeTick) {
	c.trades[trade.InstrumentID] = trade
}

// TradeTick returns the latest trade for the instrument, or nil.
func (c *Cache) TradeTick(id model.InstrumentID) *model.TradeTick {
	return c.trades[id]
}
