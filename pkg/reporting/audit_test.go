package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/pretrade/internal/bus"
	"github.com/tradegate/pretrade/internal/logger"
	"github.com/tradegate/pretrade/internal/model"
)

func newTestBus() *bus.MessageBus {
	return bus.New(logger.New("test", logger.LevelError))
}

func auditOrder() *model.Order {
	return &model.Order{
		TraderID:      "TRADER-001",
		StrategyID:    "S-MOMENTUM",
		InstrumentID:  model.InstrumentID{Symbol: "BTCUSDT", Venue: "BYBIT"},
		ClientOrderID: "O-19700101-000000-001",
		Status:        model.OrderStatusInitialized,
	}
}

func TestCollect_RecordsDenials(t *testing.T) {
	r := NewDenialAuditReporter()
	tsNow := int64(1_500_000_000)

	r.Collect(model.NewOrderDenied(auditOrder(), "Duplicate O-19700101-000000-001", uuid.New(), tsNow))

	require.Equal(t, 1, r.Count())
	rec := r.Denials()[0]
	assert.Equal(t, "DENIED", rec.Kind)
	assert.Equal(t, model.TraderID("TRADER-001"), rec.TraderID)
	assert.Equal(t, model.ClientOrderID("O-19700101-000000-001"), rec.ClientOrderID)
	assert.Equal(t, "Duplicate O-19700101-000000-001", rec.Reason)
	assert.Equal(t, time.Unix(0, tsNow).UTC(), rec.Timestamp)
}

func TestCollect_RecordsModifyRejections(t *testing.T) {
	r := NewDenialAuditReporter()

	r.Collect(model.NewOrderModifyRejected(auditOrder(), "TradingState is HALTED: cannot modify order", uuid.New(), 42))

	require.Equal(t, 1, r.Count())
	assert.Equal(t, "MODIFY_REJECTED", r.Denials()[0].Kind)
	assert.Equal(t, "TradingState is HALTED: cannot modify order", r.Denials()[0].Reason)
}

func TestCollect_IgnoresOtherMessages(t *testing.T) {
	r := NewDenialAuditReporter()

	r.Collect("not an event")
	r.Collect(nil)

	assert.Equal(t, 0, r.Count())
}

func TestAttach_TapsBusTopicsAndEndpoint(t *testing.T) {
	r := NewDenialAuditReporter()
	b := newTestBus()

	handler := r.Attach(b, "events.risk")
	b.Register("ExecEngine.process", handler)

	b.Send("ExecEngine.process", model.NewOrderDenied(auditOrder(), "quantity 0.1 invalid", uuid.New(), 1))
	b.Publish("events.risk", model.NewTradingStateChanged(
		"TRADER-001", model.TradingStateHalted, map[string]string{"bypass": "false"}, uuid.New(), 2,
	))

	require.Equal(t, 1, r.Count())
	states := r.StateChanges()
	require.Len(t, states, 1)
	assert.Equal(t, model.TradingStateHalted, states[0].State)
	assert.Equal(t, model.TraderID("TRADER-001"), states[0].TraderID)
}

func TestDenials_ReturnsCopy(t *testing.T) {
	r := NewDenialAuditReporter()
	r.Collect(model.NewOrderDenied(auditOrder(), "reason", uuid.New(), 1))

	got := r.Denials()
	got[0].Reason = "mutated"

	assert.Equal(t, "reason", r.Denials()[0].Reason)
}

func TestConsoleReporter_RendersDenialTable(t *testing.T) {
	r := NewDenialAuditReporter()
	r.Collect(model.NewOrderDenied(auditOrder(), "NOTIONAL_EXCEEDS_FREE_BALANCE: free=100.00 USDT, notional=500.00 USDT", uuid.New(), 0))

	var buf bytes.Buffer
	console := NewConsoleReporterWithWriter(&buf)
	console.RenderDenials(r.Denials())

	out := buf.String()
	assert.Contains(t, out, "DENIAL AUDIT")
	assert.Contains(t, out, "O-19700101-000000-001")
	assert.Contains(t, out, "NOTIONAL_EXCEEDS_FREE_BALANCE")
}

func TestConsoleReporter_RendersStateTable(t *testing.T) {
	r := NewDenialAuditReporter()
	b := newTestBus()
	r.Attach(b, "events.risk")
	b.Publish("events.risk", model.NewTradingStateChanged(
		"TRADER-001", model.TradingStateReducing, nil, uuid.New(), 0,
	))

	var buf bytes.Buffer
	console := NewConsoleReporterWithWriter(&buf)
	console.RenderStateChanges(r.StateChanges())

	out := buf.String()
	assert.Contains(t, out, "TRADING STATE TRANSITIONS")
	assert.Contains(t, out, "REDUCING")
}
