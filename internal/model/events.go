package model

import "github.com/google/uuid"

// Event is implemented by every event the engine produces or consumes.
type Event interface {
	EventID() uuid.UUID
	EventTimestamp() int64
}

type eventBase struct {
	ID      uuid.UUID
	TsEvent int64
	TsInit  int64
}

func (e eventBase) EventID() uuid.UUID    { return e.ID }
func (e eventBase) EventTimestamp() int64 { return e.TsEvent }

// OrderDenied is the terminal event produced when a submission fails a
// pre-trade check. The reason string is specific and attributable,
// suitable for display and audit.
type OrderDenied struct {
	eventBase
	TraderID      TraderID
	StrategyID    StrategyID
	InstrumentID  InstrumentID
	ClientOrderID ClientOrderID
	Reason        string
}

// NewOrderDenied creates an OrderDenied event for the given order.
func NewOrderDenied(order *Order, reason string, eventID uuid.UUID, tsNow int64) *OrderDenied {
	return &OrderDenied{
		eventBase:     eventBase{ID: eventID, TsEvent: tsNow, TsInit: tsNow},
		TraderID:      order.TraderID,
		StrategyID:    order.StrategyID,
		InstrumentID:  order.InstrumentID,
		ClientOrderID: order.ClientOrderID,
		Reason:        reason,
	}
}

// OrderModifyRejected is produced when a modify command fails
// validation or throttling. Unlike a denial it does not transition the
// working order, which remains live at the venue.
type OrderModifyRejected struct {
	eventBase
	TraderID      TraderID
	StrategyID    StrategyID
	InstrumentID  InstrumentID
	ClientOrderID ClientOrderID
	VenueOrderID  VenueOrderID
	Reason        string
}

// NewOrderModifyRejected creates an OrderModifyRejected event for the
// given working order.
func NewOrderModifyRejected(order *Order, reason string, eventID uuid.UUID, tsNow int64) *OrderModifyRejected {
	return &OrderModifyRejected{
		eventBase:     eventBase{ID: eventID, TsEvent: tsNow, TsInit: tsNow},
		TraderID:      order.TraderID,
		StrategyID:    order.StrategyID,
		InstrumentID:  order.InstrumentID,
		ClientOrderID: order.ClientOrderID,
		VenueOrderID:  order.VenueOrderID,
		Reason:        reason,
	}
}

// TradingStateChanged is published on every accepted trading state
// transition, carrying a snapshot of the engine configuration in force.
type TradingStateChanged struct {
	eventBase
	TraderID TraderID
	State    TradingState
	Config   map[string]string
}

// NewTradingStateChanged creates a TradingStateChanged event.
func NewTradingStateChanged(
	traderID TraderID,
	state TradingState,
	config map[string]string,
	eventID uuid.UUID,
	tsNow int64,
) *TradingStateChanged {
	return &TradingStateChanged{
		eventBase: eventBase{ID: eventID, TsEvent: tsNow, TsInit: tsNow},
		TraderID:  traderID,
		State:     state,
		Config:    config,
	}
}
