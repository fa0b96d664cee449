package model

// OrderSide is the direction of an order.
type OrderSide int

const (
	OrderSideBuy OrderSide = iota + 1
	OrderSideSell
)

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "BUY"
	case OrderSideSell:
		return "SELL"
	default:
		return "NO_ORDER_SIDE"
	}
}

// OrderType enumerates the supported order types.
type OrderType int

const (
	OrderTypeMarket OrderType = iota + 1
	OrderTypeLimit
	OrderTypeStopMarket
	OrderTypeStopLimit
	OrderTypeMarketToLimit
	OrderTypeMarketIfTouched
	OrderTypeLimitIfTouched
	OrderTypeTrailingStopMarket
	OrderTypeTrailingStopLimit
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStopMarket:
		return "STOP_MARKET"
	case OrderTypeStopLimit:
		return "STOP_LIMIT"
	case OrderTypeMarketToLimit:
		return "MARKET_TO_LIMIT"
	case OrderTypeMarketIfTouched:
		return "MARKET_IF_TOUCHED"
	case OrderTypeLimitIfTouched:
		return "LIMIT_IF_TOUCHED"
	case OrderTypeTrailingStopMarket:
		return "TRAILING_STOP_MARKET"
	case OrderTypeTrailingStopLimit:
		return "TRAILING_STOP_LIMIT"
	default:
		return "UNKNOWN"
	}
}

// OrderStatus is the lifecycle status of an order. The risk engine only
// ever moves an order from Initialized to Denied; all other transitions
// are owned by the execution engine.
type OrderStatus int

const (
	OrderStatusInitialized OrderStatus = iota + 1
	OrderStatusDenied
	OrderStatusSubmitted
	OrderStatusAccepted
	OrderStatusPendingUpdate
	OrderStatusPendingCancel
	OrderStatusCanceled
	OrderStatusExpired
	OrderStatusRejected
	OrderStatusFilled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusInitialized:
		return "INITIALIZED"
	case OrderStatusDenied:
		return "DENIED"
	case OrderStatusSubmitted:
		return "SUBMITTED"
	case OrderStatusAccepted:
		return "ACCEPTED"
	case OrderStatusPendingUpdate:
		return "PENDING_UPDATE"
	case OrderStatusPendingCancel:
		return "PENDING_CANCEL"
	case OrderStatusCanceled:
		return "CANCELED"
	case OrderStatusExpired:
		return "EXPIRED"
	case OrderStatusRejected:
		return "REJECTED"
	case OrderStatusFilled:
		return "FILLED"
	default:
		return "UNKNOWN"
	}
}

// IsClosed reports whether the status is terminal.
func (s OrderStatus) IsClosed() bool {
	switch s {
	case OrderStatusDenied, OrderStatusCanceled, OrderStatusExpired,
		OrderStatusRejected, OrderStatusFilled:
		return true
	default:
		return false
	}
}

// TimeInForce enumerates order time-in-force values.
type TimeInForce int

const (
	TimeInForceGTC TimeInForce = iota + 1
	TimeInForceGTD
	TimeInForceIOC
	TimeInForceFOK
	TimeInForceDay
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceGTC:
		return "GTC"
	case TimeInForceGTD:
		return "GTD"
	case TimeInForceIOC:
		return "IOC"
	case TimeInForceFOK:
		return "FOK"
	case TimeInForceDay:
		return "DAY"
	default:
		return "UNKNOWN"
	}
}

// EmulationTrigger indicates whether an order's activation condition is
// evaluated by the order emulator rather than sent directly to a venue.
type EmulationTrigger int

const (
	EmulationTriggerNone EmulationTrigger = iota
	EmulationTriggerDefault
	EmulationTriggerBidAsk
	EmulationTriggerLastPrice
)

func (e EmulationTrigger) String() string {
	switch e {
	case EmulationTriggerNone:
		return "NO_TRIGGER"
	case EmulationTriggerDefault:
		return "DEFAULT"
	case EmulationTriggerBidAsk:
		return "BID_ASK"
	case EmulationTriggerLastPrice:
		return "LAST_PRICE"
	default:
		return "UNKNOWN"
	}
}

// AssetClass groups instruments for validation purposes. Options are the
// only class permitted to carry non-positive prices.
type AssetClass int

const (
	AssetClassFX AssetClass = iota + 1
	AssetClassEquity
	AssetClassCommodity
	AssetClassCrypto
	AssetClassOption
)

func (a AssetClass) String() string {
	switch a {
	case AssetClassFX:
		return "FX"
	case AssetClassEquity:
		return "EQUITY"
	case AssetClassCommodity:
		return "COMMODITY"
	case AssetClassCrypto:
		return "CRYPTO"
	case AssetClassOption:
		return "OPTION"
	default:
		return "UNKNOWN"
	}
}

// AccountType discriminates cash and margin accounts. The batched risk
// check only applies to cash accounts.
type AccountType int

const (
	AccountTypeCash AccountType = iota + 1
	AccountTypeMargin
)

func (a AccountType) String() string {
	switch a {
	case AccountTypeCash:
		return "CASH"
	case AccountTypeMargin:
		return "MARGIN"
	default:
		return "UNKNOWN"
	}
}

// TradingState is the engine-wide admission control mode.
type TradingState int

const (
	TradingStateActive TradingState = iota + 1
	TradingStateReducing
	TradingStateHalted
)

func (s TradingState) String() string {
	switch s {
	case TradingStateActive:
		return "ACTIVE"
	case TradingStateReducing:
		return "REDUCING"
	case TradingStateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// PositionSide is the direction of an open position.
type PositionSide int

const (
	PositionSideFlat PositionSide = iota
	PositionSideLong
	PositionSideShort
)

func (s PositionSide) String() string {
	switch s {
	case PositionSideFlat:
		return "FLAT"
	case PositionSideLong:
		return "LONG"
	case PositionSideShort:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}
