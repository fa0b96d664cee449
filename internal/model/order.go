package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Order is the entity referenced (not owned) by the risk engine. The
// engine reads its fields and performs exactly one state transition:
// Initialized -> Denied. Everything else belongs to the execution
// engine's order state machine.
type Order struct {
	TraderID      TraderID
	StrategyID    StrategyID
	InstrumentID  InstrumentID
	ClientOrderID ClientOrderID
	VenueOrderID  VenueOrderID
	OrderListID   OrderListID // empty when not part of a list

	Side             OrderSide
	Type             OrderType
	Quantity         Quantity
	Price            *Price // nil for market-family orders
	TriggerPrice     *Price // nil unless a stop/trigger type
	TimeInForce      TimeInForce
	ExpireTimeNs     int64 // only meaningful for GTD
	EmulationTrigger EmulationTrigger
	IsReduceOnly     bool

	Status OrderStatus
	InitID uuid.UUID
	TsInit int64
}

// IsBuy reports whether the order side is BUY.
func (o *Order) IsBuy() bool { return o.Side == OrderSideBuy }

// IsSell reports whether the order side is SELL.
func (o *Order) IsSell() bool { return o.Side == OrderSideSell }

// IsClosed reports whether the order has reached a terminal status.
func (o *Order) IsClosed() bool { return o.Status.IsClosed() }

// IsInList reports whether the order belongs to an order list.
func (o *Order) IsInList() bool { return o.OrderListID != "" }

// HasEmulationTrigger reports whether activation is deferred to the
// order emulator.
func (o *Order) HasEmulationTrigger() bool {
	return o.EmulationTrigger != EmulationTriggerNone
}

// Deny transitions the order from Initialized to Denied. The transition
// is legal exactly once; callers must check Status first so a second
// denial attempt is a no-op rather than an error surfaced here.
func (o *Order) Deny() error {
	if o.Status != OrderStatusInitialized {
		return fmt.Errorf("cannot deny order %s: status %s", o.ClientOrderID, o.Status)
	}
	o.Status = OrderStatusDenied
	return nil
}

// WouldReduce reports whether executing this order against a position
// of the given side and size would decrease (not increase or reverse)
// the position.
func (o *Order) WouldReduce(side PositionSide, positionQty Quantity) bool {
	switch side {
	case PositionSideLong:
		return o.IsSell() && !o.Quantity.GreaterThan(positionQty)
	case PositionSideShort:
		return o.IsBuy() && !o.Quantity.GreaterThan(positionQty)
	default:
		return false
	}
}

// OrderList is an ordered sequence of orders sharing a list identifier.
// Duplicate-ID detection over a list is all-or-nothing.
type OrderList struct {
	ID     OrderListID
	Orders []*Order
	TsInit int64
}

// First returns the first order in the list, or nil when empty.
func (l *OrderList) First() *Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}
