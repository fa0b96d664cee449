package cache

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/pretrade/internal/model"
)

var instrumentID = model.NewInstrumentID("BTCUSDT", "BYBIT")

func newOrder(id string) *model.Order {
	px := model.MustPriceFromString("100.00")
	return &model.Order{
		InstrumentID:  instrumentID,
		ClientOrderID: model.ClientOrderID(id),
		Side:          model.OrderSideBuy,
		Type:          model.OrderTypeLimit,
		Quantity:      model.MustQuantityFromString("1"),
		Price:         &px,
		Status:        model.OrderStatusInitialized,
	}
}

func TestCache_AddOrder(t *testing.T) {
	c := New()

	order := newOrder("O-1")
	require.NoError(t, c.AddOrder(order, "P-1"))

	assert.True(t, c.OrderExists("O-1"))
	assert.Same(t, order, c.Order("O-1"))
	assert.Equal(t, 1, c.OrderCount())
	assert.Nil(t, c.Order("O-404"))
}

func TestCache_AddOrderDuplicateFails(t *testing.T) {
	c := New()

	require.NoError(t, c.AddOrder(newOrder("O-1"), ""))
	assert.Error(t, c.AddOrder(newOrder("O-1"), ""))
	assert.Equal(t, 1, c.OrderCount())
}

func TestCache_Instruments(t *testing.T) {
	c := New()
	instrument := &model.Instrument{
		ID:       instrumentID,
		TickSize: decimal.RequireFromString("0.01"),
	}

	c.AddInstrument(instrument)

	assert.Same(t, instrument, c.Instrument(instrumentID))
	assert.Nil(t, c.Instrument(model.NewInstrumentID("ETHUSDT", "BYBIT")))
}

func TestCache_Positions(t *testing.T) {
	c := New()
	long := &model.Position{ID: "P-1", InstrumentID: instrumentID, Side: model.PositionSideLong, Quantity: model.MustQuantityFromString("2")}
	short := &model.Position{ID: "P-2", InstrumentID: instrumentID, Side: model.PositionSideShort, Quantity: model.MustQuantityFromString("1")}
	other := &model.Position{ID: "P-3", InstrumentID: model.NewInstrumentID("ETHUSDT", "BYBIT"), Side: model.PositionSideLong, Quantity: model.MustQuantityFromString("5")}

	c.AddPosition(long)
	c.AddPosition(short)
	c.AddPosition(other)

	assert.Same(t, long, c.Position("P-1"))
	assert.Nil(t, c.Position("P-404"))
	assert.Len(t, c.PositionsForInstrument(instrumentID), 2)
}

func TestCache_Accounts(t *testing.T) {
	c := New()
	account := &model.Account{ID: "BYBIT-001", Venue: "BYBIT", Type: model.AccountTypeCash}

	c.AddAccount(account)

	assert.Same(t, account, c.AccountForVenue("BYBIT"))
	assert.Nil(t, c.AccountForVenue("BINANCE"))
}

func TestCache_MarketData(t *testing.T) {
	c := New()

	assert.Nil(t, c.QuoteTick(instrumentID))
	assert.Nil(t, c.TradeTick(instrumentID))

	quote := &model.QuoteTick{
		InstrumentID: instrumentID,
		BidPrice:     model.MustPriceFromString("99.00"),
		AskPrice:     model.MustPriceFromString("100.00"),
	}
	trade := &model.TradeTick{
		InstrumentID: instrumentID,
		Price:        model.MustPriceFromString("99.50"),
	}

	c.AddQuoteTick(quote)
	c.AddTradeTick(trade)

	assert.Same(t, quote, c.QuoteTick(instrumentID))
	assert.Same(t, trade, c.TradeTick(instrumentID))

	// Latest tick replaces the previous one.
	newer := &model.QuoteTick{
		InstrumentID: instrumentID,
		BidPrice:     model.MustPriceFromString("100.00"),
		AskPrice:     model.MustPriceFromString("101.00"),
	}
	c.AddQuoteTick(newer)
	assert.Same(t, newer, c.QuoteTick(instrumentID))
}
