package model

import (
	"fmt"
	"strings"
)

// TraderID identifies a trader node within the system.
type TraderID string

// StrategyID identifies a strategy instance.
type StrategyID string

// ClientOrderID is the client-assigned unique order identifier.
type ClientOrderID string

// VenueOrderID is the venue-assigned order identifier, empty until the
// venue acknowledges the order.
type VenueOrderID string

// OrderListID identifies an order list.
type OrderListID string

// PositionID identifies a position.
type PositionID string

// AccountID identifies a trading account.
type AccountID string

// Venue identifies a trading venue.
type Venue string

// InstrumentID identifies an instrument as a symbol on a venue,
// rendered as "SYMBOL.VENUE".
type InstrumentID struct {
	Symbol string
	Venue  Venue
}

// NewInstrumentID creates an InstrumentID from a symbol and venue.
func NewInstrumentID(symbol string, venue Venue) InstrumentID {
	return InstrumentID{Symbol: symbol, Venue: venue}
}

// InstrumentIDFromString parses "SYMBOL.VENUE". The venue is taken
// from the final dot so symbols may themselves contain dots.
func InstrumentIDFromString(s string) (InstrumentID, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return InstrumentID{}, fmt.Errorf("invalid instrument ID %q: expected SYMBOL.VENUE", s)
	}
	return InstrumentID{Symbol: s[:i], Venue: Venue(s[i+1:])}, nil
}

func (id InstrumentID) String() string {
	return fmt.Sprintf("%s.%s", id.Symbol, id.Venue)
}
