// Package risk implements the pre-trade risk engine: the gatekeeper
// between strategies and execution. Every trading command is validated
// against instrument, account and operator constraints, rate throttled,
// and either forwarded to execution or denied with a specific reason.
package risk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradegate/pretrade/internal/bus"
	"github.com/tradegate/pretrade/internal/cache"
	"github.com/tradegate/pretrade/internal/clock"
	"github.com/tradegate/pretrade/internal/logger"
	"github.com/tradegate/pretrade/internal/model"
	"github.com/tradegate/pretrade/internal/monitoring"
	"github.com/tradegate/pretrade/internal/portfolio"
	"github.com/tradegate/pretrade/internal/throttler"
)

// Message bus endpoints and topics the engine consumes and produces.
const (
	EndpointExecute = "RiskEngine.execute"
	EndpointProcess = "RiskEngine.process"

	endpointExecEngineExecute = "ExecEngine.execute"
	endpointExecEngineProcess = "ExecEngine.process"
	endpointEmulatorExecute   = "OrderEmulator.execute"

	TopicRiskEvents = "events.risk"
)

const (
	submitThrottlerName = "ORDER_SUBMIT_THROTTLER"
	modifyThrottlerName = "ORDER_MODIFY_THROTTLER"

	reasonSubmitRateExceeded = "Exceeded MAX_ORDER_SUBMIT_RATE"
	reasonModifyRateExceeded = "Exceeded MAX_ORDER_MODIFY_RATE"
)

// Engine is the stateful pre-trade command processor. It assumes a
// single logical owner: all Execute/Process calls arrive serialized
// through one command-processing path, so no internal locking is
// performed.
type Engine struct {
	config    Config
	clock     clock.Clock
	cache     *cache.Cache
	bus       *bus.MessageBus
	portfolio *portfolio.Portfolio
	log       *logger.Logger

	traderID model.TraderID

	throttledSubmit *throttler.Throttler[model.TradingCommand]
	throttledModify *throttler.Throttler[*model.ModifyOrder]

	maxNotionalPerOrder map[model.InstrumentID]decimal.Decimal
	tradingState        model.TradingState

	commandCount int
	eventCount   int
}

// NewEngine creates a risk engine, fails fast on configuration errors,
// and registers its command and event endpoints on the bus.
func NewEngine(
	traderID model.TraderID,
	cfg Config,
	clk clock.Clock,
	c *cache.Cache,
	b *bus.MessageBus,
	p *portfolio.Portfolio,
	log *logger.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:              cfg,
		clock:               clk,
		cache:               c,
		bus:                 b,
		portfolio:           p,
		log:                 log,
		traderID:            traderID,
		maxNotionalPerOrder: make(map[model.InstrumentID]decimal.Decimal),
		tradingState:        model.TradingStateActive,
	}

	for instrument, value := range cfg.MaxNotionalPerOrder {
		id, err := model.InstrumentIDFromString(instrument)
		if err != nil {
			return nil, fmt.Errorf("invalid instrument ID in max_notional_per_order: %w", err)
		}
		cap, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid max_notional_per_order for %s: %w", instrument, err)
		}
		e.maxNotionalPerOrder[id] = cap
	}

	submitRate, err := ParseRate(cfg.MaxOrderSubmitRate)
	if err != nil {
		return nil, err
	}
	e.throttledSubmit, err = throttler.New(
		submitThrottlerName,
		submitRate,
		clk,
		log,
		func(cmd model.TradingCommand) {
			monitoring.RecordThrottlerAdmitted(submitThrottlerName)
			e.sendToExecution(cmd)
		},
		func(cmd model.TradingCommand) {
			monitoring.RecordThrottlerRejected(submitThrottlerName)
			monitoring.RecordDenial("throttle")
			e.denyCommand(cmd, reasonSubmitRateExceeded)
		},
	)
	if err != nil {
		return nil, err
	}

	modifyRate, err := ParseRate(cfg.MaxOrderModifyRate)
	if err != nil {
		return nil, err
	}
	// A dropped modify would leave the caller's intent unresolved, so
	// the modify throttler buffers instead of dropping.
	e.throttledModify, err = throttler.New(
		modifyThrottlerName,
		modifyRate,
		clk,
		log,
		func(cmd *model.ModifyOrder) {
			monitoring.RecordThrottlerAdmitted(modifyThrottlerName)
			e.sendToExecution(cmd)
		},
		nil,
	)
	if err != nil {
		return nil, err
	}

	b.Register(EndpointExecute, func(msg interface{}) {
		cmd, ok := msg.(model.TradingCommand)
		if !ok {
			e.log.Error("cannot handle message on %s: %T is not a TradingCommand", EndpointExecute, msg)
			return
		}
		e.Execute(cmd)
	})
	b.Register(EndpointProcess, func(msg interface{}) {
		event, ok := msg.(model.Event)
		if !ok {
			e.log.Error("cannot handle message on %s: %T is not an Event", EndpointProcess, msg)
			return
		}
		e.Process(event)
	})

	monitoring.SetTradingState(e.tradingState.String())

	return e, nil
}

// -- COMMANDS ----------------------------------------------------------------

// Execute is the entry point for all trading commands. It never
// returns an error; every failure path resolves to a denial event.
func (e *Engine) Execute(cmd model.TradingCommand) {
	e.commandCount++
	if e.config.Debug {
		e.log.Debug("<-- CMD %T %s", cmd, cmd.CommandID())
	}

	switch c := cmd.(type) {
	case *model.SubmitOrder:
		monitoring.RecordCommand("submit_order")
		e.handleSubmitOrder(c)
	case *model.SubmitOrderList:
		monitoring.RecordCommand("submit_order_list")
		e.handleSubmitOrderList(c)
	case *model.ModifyOrder:
		monitoring.RecordCommand("modify_order")
		e.handleModifyOrder(c)
	case *model.CancelOrder:
		monitoring.RecordCommand("cancel_order")
		e.handleCancelOrder(c)
	case *model.CancelAllOrders:
		monitoring.RecordCommand("cancel_all_orders")
		e.handleCancelAllOrders(c)
	}
}

// Process is the entry point for inbound order and position events,
// consumed for observability only.
func (e *Engine) Process(event model.Event) {
	e.eventCount++
	monitoring.RecordEvent()
	if e.config.Debug {
		e.log.Debug("<-- EVT %T %s", event, event.EventID())
	}
}

// SetTradingState performs an administrative trading state transition,
// publishing a TradingStateChanged event on every accepted change.
func (e *Engine) SetTradingState(state model.TradingState) {
	if state == e.tradingState {
		e.log.Warning("No change to trading state: already set to %s", state)
		return
	}

	e.tradingState = state
	monitoring.SetTradingState(state.String())

	event := model.NewTradingStateChanged(
		e.traderID,
		state,
		e.config.Snapshot(),
		uuid.New(),
		e.clock.TimestampNs(),
	)
	e.bus.Publish(TopicRiskEvents, event)

	e.log.Info("Trading state set to %s", state)
}

// SetMaxNotionalPerOrder sets (or, with a nil value, clears) the
// maximum notional value per order for an instrument. A non-nil value
// must be strictly positive.
func (e *Engine) SetMaxNotionalPerOrder(id model.InstrumentID, value *decimal.Decimal) error {
	if value == nil {
		delete(e.maxNotionalPerOrder, id)
		e.log.Info("Set MAX_NOTIONAL_PER_ORDER: %s None", id)
		return nil
	}
	if !value.IsPositive() {
		return fmt.Errorf("max notional per order for %s must be positive, was %s", id, value)
	}
	e.maxNotionalPerOrder[id] = *value
	e.log.Info("Set MAX_NOTIONAL_PER_ORDER: %s %s", id, value)
	return nil
}

// -- QUERIES -----------------------------------------------------------------

// TradingState returns the current trading state.
func (e *Engine) TradingState() model.TradingState { return e.tradingState }

// MaxOrderSubmitRate returns the submit throttler's configured rate.
func (e *Engine) MaxOrderSubmitRate() (int, time.Duration) {
	return e.throttledSubmit.Limit(), e.throttledSubmit.Interval()
}

// MaxOrderModifyRate returns the modify throttler's configured rate.
func (e *Engine) MaxOrderModifyRate() (int, time.Duration) {
	return e.throttledModify.Limit(), e.throttledModify.Interval()
}

// MaxNotionalsPerOrder returns a copy of the per-instrument notional
// cap registry.
func (e *Engine) MaxNotionalsPerOrder() map[model.InstrumentID]decimal.Decimal {
	out := make(map[model.InstrumentID]decimal.Decimal, len(e.maxNotionalPerOrder))
	for id, value := range e.maxNotionalPerOrder {
		out[id] = value
	}
	return out
}

// MaxNotionalPerOrder returns the notional cap for an instrument, or
// nil when unlimited.
func (e *Engine) MaxNotionalPerOrder(id model.InstrumentID) *decimal.Decimal {
	if value, ok := e.maxNotionalPerOrder[id]; ok {
		return &value
	}
	return nil
}

// CommandCount returns the number of commands received.
func (e *Engine) CommandCount() int { return e.commandCount }

// EventCount returns the number of events received.
func (e *Engine) EventCount() int { return e.eventCount }

// -- COMMAND HANDLERS --------------------------------------------------------

func (e *Engine) handleSubmitOrder(cmd *model.SubmitOrder) {
	order := cmd.Order

	if !order.IsInList() {
		if e.cache.OrderExists(order.ClientOrderID) {
			monitoring.RecordDenial("duplicate")
			e.denyOrder(order, fmt.Sprintf("Duplicate %s", order.ClientOrderID))
			return
		}
		if err := e.cache.AddOrder(order, cmd.PositionID); err != nil {
			e.log.Error("Cannot add order to cache: %v", err)
		}
	}

	if e.config.Bypass {
		// Duplicate and position-existence checks still apply in
		// bypass mode; everything else is skipped.
		if order.IsReduceOnly && cmd.PositionID != "" && e.cache.Position(cmd.PositionID) == nil {
			e.denyOrder(order, fmt.Sprintf("Position %s not found for reduce-only order", cmd.PositionID))
			return
		}
		e.routeBypassed(cmd, order.HasEmulationTrigger())
		return
	}

	if order.IsReduceOnly && cmd.PositionID != "" {
		position := e.cache.Position(cmd.PositionID)
		if position == nil {
			e.denyOrder(order, fmt.Sprintf("Position %s not found for reduce-only order", cmd.PositionID))
			return
		}
		if !order.WouldReduce(position.Side, position.Quantity) {
			e.denyOrder(order, fmt.Sprintf("Reduce only order would increase position %s", cmd.PositionID))
			return
		}
	}

	instrument := e.cache.Instrument(order.InstrumentID)
	if instrument == nil {
		e.denyOrder(order, fmt.Sprintf("Instrument for %s not found", order.InstrumentID))
		return
	}

	if !e.checkOrder(instrument, order) {
		return // Denied
	}

	if !e.checkOrdersRisk(instrument, []*model.Order{order}) {
		return // Denied
	}

	// The emulator owns its own timing, so emulated orders skip the
	// execution gateway and its throttling.
	if order.HasEmulationTrigger() {
		e.bus.Send(endpointEmulatorExecute, cmd)
		return
	}

	e.executionGateway(instrument, cmd)
}

func (e *Engine) handleSubmitOrderList(cmd *model.SubmitOrderList) {
	list := cmd.List

	// Duplicate detection is all-or-nothing: any duplicate denies the
	// whole list before any member is cached.
	for _, order := range list.Orders {
		if e.cache.OrderExists(order.ClientOrderID) {
			monitoring.RecordDenial("duplicate")
			e.denyOrderList(list, fmt.Sprintf("Duplicate %s", order.ClientOrderID))
			return
		}
	}
	for _, order := range list.Orders {
		if err := e.cache.AddOrder(order, cmd.PositionID); err != nil {
			e.log.Error("Cannot add order to cache: %v", err)
		}
	}

	if e.config.Bypass {
		e.routeBypassed(cmd, list.First().HasEmulationTrigger())
		return
	}

	instrument := e.cache.Instrument(cmd.Instrument())
	if instrument == nil {
		e.denyOrderList(list, fmt.Sprintf("Instrument for %s not found", cmd.Instrument()))
		return
	}

	for _, order := range list.Orders {
		if !e.checkOrder(instrument, order) {
			return // Denied
		}
	}

	// A risk failure anywhere denies every order in the list that is
	// not already closed.
	if !e.checkOrdersRisk(instrument, list.Orders) {
		e.denyOrderList(list, fmt.Sprintf("OrderList %s DENIED", list.ID))
		return
	}

	if list.First().HasEmulationTrigger() {
		e.bus.Send(endpointEmulatorExecute, cmd)
		return
	}

	e.executionGateway(instrument, cmd)
}

func (e *Engine) handleModifyOrder(cmd *model.ModifyOrder) {
	order := e.cache.Order(cmd.ClientOrderID)
	if order == nil {
		e.log.Error("ModifyOrder DENIED: order with client order ID %s not found", cmd.ClientOrderID)
		return
	}

	if order.IsClosed() {
		e.rejectModifyOrder(order, fmt.Sprintf("order with client order ID %s already closed", cmd.ClientOrderID))
		return
	}
	if order.Status == model.OrderStatusPendingCancel {
		e.rejectModifyOrder(order, fmt.Sprintf("order with client order ID %s already pending cancel", cmd.ClientOrderID))
		return
	}
	if e.config.DenyModifyPendingUpdate && order.Status == model.OrderStatusPendingUpdate {
		e.rejectModifyOrder(order, fmt.Sprintf("order with client order ID %s already pending update", cmd.ClientOrderID))
		return
	}

	instrument := e.cache.Instrument(cmd.Instrument())
	if instrument == nil {
		e.rejectModifyOrder(order, fmt.Sprintf("Instrument for %s not found", cmd.Instrument()))
		return
	}

	if msg := CheckPrice(instrument, cmd.Price); msg != "" {
		e.rejectModifyOrder(order, msg)
		return
	}
	if msg := CheckTriggerPrice(instrument, cmd.TriggerPrice); msg != "" {
		e.rejectModifyOrder(order, msg)
		return
	}
	if msg := CheckQuantity(instrument, cmd.Quantity); msg != "" {
		e.rejectModifyOrder(order, msg)
		return
	}

	switch e.tradingState {
	case model.TradingStateHalted:
		monitoring.RecordDenial("trading_state")
		e.rejectModifyOrder(order, "TradingState is HALTED: cannot modify order")
		return
	case model.TradingStateReducing:
		if cmd.Quantity != nil && cmd.Quantity.GreaterThan(order.Quantity) {
			if (order.IsBuy() && e.portfolio.IsNetLong(instrument.ID)) ||
				(order.IsSell() && e.portfolio.IsNetShort(instrument.ID)) {
				monitoring.RecordDenial("trading_state")
				e.rejectModifyOrder(order, fmt.Sprintf(
					"TradingState is REDUCING and update will increase exposure %s", instrument.ID,
				))
				return
			}
		}
	}

	if order.HasEmulationTrigger() {
		e.bus.Send(endpointEmulatorExecute, cmd)
		return
	}

	e.throttledModify.Send(cmd)
}

// Cancels bypass throttling and risk checks: canceling is always safe
// to allow through.
func (e *Engine) handleCancelOrder(cmd *model.CancelOrder) {
	order := e.cache.Order(cmd.ClientOrderID)
	if order == nil {
		e.log.Error("CancelOrder rejected: order with client order ID %s not found", cmd.ClientOrderID)
		return
	}
	if order.IsClosed() {
		e.log.Warning("CancelOrder rejected: order %s already closed", cmd.ClientOrderID)
		return
	}
	if order.Status == model.OrderStatusPendingCancel {
		e.log.Warning("CancelOrder rejected: order %s already pending cancel", cmd.ClientOrderID)
		return
	}

	if order.HasEmulationTrigger() {
		e.bus.Send(endpointEmulatorExecute, cmd)
		return
	}
	e.sendToExecution(cmd)
}

func (e *Engine) handleCancelAllOrders(cmd *model.CancelAllOrders) {
	e.sendToExecution(cmd)
}

// routeBypassed forwards a submission straight to execution or the
// emulator with no further checks and no throttling.
func (e *Engine) routeBypassed(cmd model.TradingCommand, emulated bool) {
	if emulated {
		e.bus.Send(endpointEmulatorExecute, cmd)
		return
	}
	e.sendToExecution(cmd)
}

// -- PRE-TRADE CHECKS --------------------------------------------------------

func (e *Engine) checkOrder(instrument *model.Instrument, order *model.Order) bool {
	if msg := CheckGTDExpiry(order, e.clock.TimestampNs()); msg != "" {
		e.denyOrder(order, msg)
		return false
	}
	if msg := CheckPrice(instrument, order.Price); msg != "" {
		e.denyOrder(order, msg)
		return false
	}
	if msg := CheckTriggerPrice(instrument, order.TriggerPrice); msg != "" {
		e.denyOrder(order, msg)
		return false
	}
	quantity := order.Quantity
	if msg := CheckQuantity(instrument, &quantity); msg != "" {
		e.denyOrder(order, msg)
		return false
	}
	return true
}

// checkOrdersRisk runs the batched notional and balance checks over a
// submission batch (a single order, or a whole list) against the cash
// account routing to the instrument's venue.
func (e *Engine) checkOrdersRisk(instrument *model.Instrument, orders []*model.Order) bool {
	var maxNotional *model.Money
	if cap, ok := e.maxNotionalPerOrder[instrument.ID]; ok {
		m := model.NewMoney(cap, instrument.QuoteCurrency)
		maxNotional = &m
	}

	account := e.cache.AccountForVenue(instrument.ID.Venue)
	if account == nil {
		// Routing not yet resolved for this venue; the check is
		// skipped rather than failed.
		e.log.Debug("Cannot find account for venue %s", instrument.ID.Venue)
		return true
	}
	if account.IsMargin() {
		// Margin risk is controlled elsewhere.
		return true
	}

	var lastPx *model.Price
	cumBuy := decimal.Zero
	cumSell := decimal.Zero

	for _, order := range orders {
		var px *model.Price

		switch order.Type {
		case model.OrderTypeMarket, model.OrderTypeMarketToLimit:
			if lastPx == nil {
				if quote := e.cache.QuoteTick(instrument.ID); quote != nil {
					if order.IsBuy() {
						p := quote.AskPrice
						lastPx = &p
					} else {
						p := quote.BidPrice
						lastPx = &p
					}
				} else if trade := e.cache.TradeTick(instrument.ID); trade != nil {
					p := trade.Price
					lastPx = &p
				} else {
					e.log.Warning("Cannot check MARKET order risk: no prices for %s", instrument.ID)
					continue // unassessable, not denied
				}
			}
			px = lastPx
		case model.OrderTypeStopMarket, model.OrderTypeMarketIfTouched:
			px = order.TriggerPrice
		case model.OrderTypeTrailingStopMarket, model.OrderTypeTrailingStopLimit:
			if order.TriggerPrice == nil {
				e.log.Warning("Cannot check %s order risk: no trigger price was set", order.Type)
				continue // unassessable, not denied
			}
			px = order.TriggerPrice
		default:
			px = order.Price
		}

		if px == nil {
			e.log.Error("Cannot check order risk: no price available")
			continue
		}

		notional := instrument.NotionalValue(order.Quantity, *px)
		effectiveMax := maxNotional

		// A SELL on a currency pair exposes the base currency: the
		// notional collapses to the quantity via the 1/price exchange
		// rate, and the configured cap is converted to the same unit.
		if instrument.IsCurrencyPair && order.IsSell() {
			notional = instrument.BaseNotionalValue(order.Quantity)
			if maxNotional != nil {
				converted := model.NewMoney(
					maxNotional.Amount.Div(px.Decimal()),
					instrument.BaseCurrency,
				)
				effectiveMax = &converted
			}
		}

		if e.config.Debug {
			e.log.Debug("Notional: %s", notional)
		}

		if effectiveMax != nil && notional.GreaterThan(*effectiveMax) {
			monitoring.RecordDenial("notional")
			e.denyOrder(order, fmt.Sprintf(
				"NOTIONAL_EXCEEDS_MAX_PER_ORDER: max_notional=%s, notional=%s",
				effectiveMax, notional,
			))
			return false
		}

		if instrument.MinNotional != nil &&
			notional.Currency == instrument.MinNotional.Currency &&
			instrument.MinNotional.GreaterThan(notional) {
			monitoring.RecordDenial("notional")
			e.denyOrder(order, fmt.Sprintf(
				"NOTIONAL_LESS_THAN_MIN_FOR_INSTRUMENT: min_notional=%s, notional=%s",
				instrument.MinNotional, notional,
			))
			return false
		}
		if instrument.MaxNotional != nil &&
			notional.Currency == instrument.MaxNotional.Currency &&
			notional.GreaterThan(*instrument.MaxNotional) {
			monitoring.RecordDenial("notional")
			e.denyOrder(order, fmt.Sprintf(
				"NOTIONAL_GREATER_THAN_MAX_FOR_INSTRUMENT: max_notional=%s, notional=%s",
				instrument.MaxNotional, notional,
			))
			return false
		}

		free := account.BalanceFree(notional.Currency)
		if e.config.Debug {
			e.log.Debug("Free balance: %v", free)
		}

		if free != nil && notional.Amount.GreaterThan(free.Amount) {
			monitoring.RecordDenial("balance")
			e.denyOrder(order, fmt.Sprintf(
				"NOTIONAL_EXCEEDS_FREE_BALANCE: free=%s, notional=%s",
				free, notional,
			))
			return false
		}

		if order.IsBuy() {
			cumBuy = cumBuy.Add(notional.Amount)
			if e.config.Debug {
				e.log.Debug("Cumulative notional BUY: %s %s", cumBuy, notional.Currency)
			}
			if free != nil && cumBuy.GreaterThanOrEqual(free.Amount) {
				monitoring.RecordDenial("balance")
				e.denyOrder(order, fmt.Sprintf(
					"CUM_NOTIONAL_EXCEEDS_FREE_BALANCE: free=%s, cum_notional=%s %s",
					free, cumBuy, notional.Currency,
				))
				return false
			}
		} else if order.IsSell() {
			cumSell = cumSell.Add(notional.Amount)
			if e.config.Debug {
				e.log.Debug("Cumulative notional SELL: %s %s", cumSell, notional.Currency)
			}
			if free != nil && cumSell.GreaterThanOrEqual(free.Amount) {
				monitoring.RecordDenial("balance")
				e.denyOrder(order, fmt.Sprintf(
					"CUM_NOTIONAL_EXCEEDS_FREE_BALANCE: free=%s, cum_notional=%s %s",
					free, cumSell, notional.Currency,
				))
				return false
			}
		}
	}

	return true // Passed
}

// -- DENIALS -----------------------------------------------------------------

func (e *Engine) denyCommand(cmd model.TradingCommand, reason string) {
	switch c := cmd.(type) {
	case *model.SubmitOrder:
		e.denyOrder(c.Order, reason)
	case *model.SubmitOrderList:
		e.denyOrderList(c.List, reason)
	default:
		e.log.Error("Cannot deny command %T: no order to deny", cmd)
	}
}

// denyOrder logs and emits a terminal OrderDenied event. It is a no-op
// for orders no longer in Initialized status, and guarantees every
// denied order is present in the cache for later queries.
func (e *Engine) denyOrder(order *model.Order, reason string) {
	e.log.Error("SubmitOrder for %s DENIED: %s", order.ClientOrderID, reason)

	if order.Status != model.OrderStatusInitialized {
		return
	}

	if !e.cache.OrderExists(order.ClientOrderID) {
		if err := e.cache.AddOrder(order, ""); err != nil {
			e.log.Error("Cannot add order to cache: %v", err)
		}
	}

	if err := order.Deny(); err != nil {
		e.log.Error("Cannot deny order: %v", err)
		return
	}

	denied := model.NewOrderDenied(order, reason, uuid.New(), e.clock.TimestampNs())
	e.bus.Send(endpointExecEngineProcess, denied)
}

func (e *Engine) denyOrderList(list *model.OrderList, reason string) {
	for _, order := range list.Orders {
		if !order.IsClosed() {
			e.denyOrder(order, reason)
		}
	}
}

// rejectModifyOrder emits an OrderModifyRejected event. The working
// order's status is untouched; it remains live at the venue.
func (e *Engine) rejectModifyOrder(order *model.Order, reason string) {
	e.log.Error("ModifyOrder for %s REJECTED: %s", order.ClientOrderID, reason)
	monitoring.RecordDenial("modify")

	rejected := model.NewOrderModifyRejected(order, reason, uuid.New(), e.clock.TimestampNs())
	e.bus.Send(endpointExecEngineProcess, rejected)
}

// -- EGRESS ------------------------------------------------------------------

// executionGateway applies trading-state gating, then forwards the
// submission to the order-submit throttler.
func (e *Engine) executionGateway(instrument *model.Instrument, cmd model.TradingCommand) {
	switch e.tradingState {
	case model.TradingStateHalted:
		monitoring.RecordDenial("trading_state")
		e.denyCommand(cmd, "TradingState is HALTED: cannot submit order")
		return

	case model.TradingStateReducing:
		switch c := cmd.(type) {
		case *model.SubmitOrder:
			if reason := e.checkReducing(instrument, c.Order); reason != "" {
				monitoring.RecordDenial("trading_state")
				e.denyOrder(c.Order, reason)
				return
			}
		case *model.SubmitOrderList:
			for _, order := range c.List.Orders {
				if reason := e.checkReducing(instrument, order); reason != "" {
					monitoring.RecordDenial("trading_state")
					e.denyOrderList(c.List, reason)
					return
				}
			}
		}
	}

	e.throttledSubmit.Send(cmd)
}

// checkReducing returns a denial reason when the order would increase
// net exposure under the REDUCING trading state.
func (e *Engine) checkReducing(instrument *model.Instrument, order *model.Order) string {
	if order.IsBuy() && e.portfolio.IsNetLong(instrument.ID) {
		return fmt.Sprintf("BUY when TradingState is REDUCING and net LONG %s", instrument.ID)
	}
	if order.IsSell() && e.portfolio.IsNetShort(instrument.ID) {
		return fmt.Sprintf("SELL when TradingState is REDUCING and net SHORT %s", instrument.ID)
	}
	return ""
}

func (e *Engine) sendToExecution(cmd model.TradingCommand) {
	e.bus.Send(endpointExecEngineExecute, cmd)
}
