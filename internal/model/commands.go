package model

import "github.com/google/uuid"

// TradingCommand is the closed set of commands the risk engine accepts.
// The interface is sealed so dispatch is an exhaustive type switch over
// the variants below; there is no "unrecognized command" path for
// well-typed callers.
type TradingCommand interface {
	CommandID() uuid.UUID
	Instrument() InstrumentID
	Timestamp() int64

	tradingCommand()
}

type commandBase struct {
	TraderID     TraderID
	StrategyID   StrategyID
	InstrumentID InstrumentID
	ID           uuid.UUID
	TsInit       int64
}

func (c commandBase) CommandID() uuid.UUID     { return c.ID }
func (c commandBase) Instrument() InstrumentID { return c.InstrumentID }
func (c commandBase) Timestamp() int64         { return c.TsInit }
func (c commandBase) tradingCommand()          {}

// SubmitOrder commands submission of a single order, optionally against
// an existing position.
type SubmitOrder struct {
	commandBase
	Order      *Order
	PositionID PositionID // empty when not targeting a position
}

// NewSubmitOrder creates a SubmitOrder command for the given order.
func NewSubmitOrder(order *Order, positionID PositionID, commandID uuid.UUID, tsInit int64) *SubmitOrder {
	return &SubmitOrder{
		commandBase: commandBase{
			TraderID:     order.TraderID,
			StrategyID:   order.StrategyID,
			InstrumentID: order.InstrumentID,
			ID:           commandID,
			TsInit:       tsInit,
		},
		Order:      order,
		PositionID: positionID,
	}
}

// SubmitOrderList commands atomic submission of an order list.
type SubmitOrderList struct {
	commandBase
	List       *OrderList
	PositionID PositionID
}

// NewSubmitOrderList creates a SubmitOrderList command. The list must be
// non-empty; identity fields are taken from the first order.
func NewSubmitOrderList(list *OrderList, positionID PositionID, commandID uuid.UUID, tsInit int64) *SubmitOrderList {
	first := list.First()
	return &SubmitOrderList{
		commandBase: commandBase{
			TraderID:     first.TraderID,
			StrategyID:   first.StrategyID,
			InstrumentID: first.InstrumentID,
			ID:           commandID,
			TsInit:       tsInit,
		},
		List:       list,
		PositionID: positionID,
	}
}

// ModifyOrder commands modification of a working order's quantity,
// price and/or trigger price. Nil fields are unchanged.
type ModifyOrder struct {
	commandBase
	ClientOrderID ClientOrderID
	Quantity      *Quantity
	Price         *Price
	TriggerPrice  *Price
}

// NewModifyOrder creates a ModifyOrder command.
func NewModifyOrder(
	traderID TraderID,
	strategyID StrategyID,
	instrumentID InstrumentID,
	clientOrderID ClientOrderID,
	quantity *Quantity,
	price *Price,
	triggerPrice *Price,
	commandID uuid.UUID,
	tsInit int64,
) *ModifyOrder {
	return &ModifyOrder{
		commandBase: commandBase{
			TraderID:     traderID,
			StrategyID:   strategyID,
			InstrumentID: instrumentID,
			ID:           commandID,
			TsInit:       tsInit,
		},
		ClientOrderID: clientOrderID,
		Quantity:      quantity,
		Price:         price,
		TriggerPrice:  triggerPrice,
	}
}

// CancelOrder commands cancellation of a single working order.
type CancelOrder struct {
	commandBase
	ClientOrderID ClientOrderID
}

// NewCancelOrder creates a CancelOrder command.
func NewCancelOrder(
	traderID TraderID,
	strategyID StrategyID,
	instrumentID InstrumentID,
	clientOrderID ClientOrderID,
	commandID uuid.UUID,
	tsInit int64,
) *CancelOrder {
	return &CancelOrder{
		commandBase: commandBase{
			TraderID:     traderID,
			StrategyID:   strategyID,
			InstrumentID: instrumentID,
			ID:           commandID,
			TsInit:       tsInit,
		},
		ClientOrderID: clientOrderID,
	}
}

// CancelAllOrders commands cancellation of every working order for an
// instrument.
type CancelAllOrders struct {
	commandBase
}

// NewCancelAllOrders creates a CancelAllOrders command.
func NewCancelAllOrders(
	traderID TraderID,
	strategyID StrategyID,
	instrumentID InstrumentID,
	commandID uuid.UUID,
	tsInit int64,
) *CancelAllOrders {
	return &CancelAllOrders{
		commandBase: commandBase{
			TraderID:     traderID,
			StrategyID:   strategyID,
			InstrumentID: instrumentID,
			ID:           commandID,
			TsInit:       tsInit,
		},
	}
}
