// Package reporting provides denial audit output: an in-memory
// collector fed from the message bus, a console table renderer, and an
// Excel workbook export.
package reporting

import (
	"time"

	"github.com/tradegate/pretrade/internal/bus"
	"github.com/tradegate/pretrade/internal/model"
)

// DenialRecord is one audited denial or modify rejection.
type DenialRecord struct {
	Kind          string
	TraderID      model.TraderID
	StrategyID    model.StrategyID
	InstrumentID  model.InstrumentID
	ClientOrderID model.ClientOrderID
	Reason        string
	Timestamp     time.Time
}

// StateChangeRecord is one audited trading state transition.
type StateChangeRecord struct {
	TraderID  model.TraderID
	State     model.TradingState
	Timestamp time.Time
}

// DenialAuditReporter accumulates denial events for later rendering.
// It is fed from the same serialized bus delivery path as the engine,
// so no locking is needed.
type DenialAuditReporter struct {
	denials      []DenialRecord
	stateChanges []StateChangeRecord
}

// NewDenialAuditReporter creates an empty reporter.
func NewDenialAuditReporter() *DenialAuditReporter {
	return &DenialAuditReporter{}
}

// Attach subscribes the reporter to risk events on the given topic and
// returns a bus handler suitable for tapping the execution event
// endpoint.
func (r *DenialAuditReporter) Attach(b *bus.MessageBus, riskTopic string) bus.Handler {
	b.Subscribe(riskTopic, func(msg interface{}) {
		if ev, ok := msg.(*model.TradingStateChanged); ok {
			r.recordStateChange(ev)
		}
	})
	return func(msg interface{}) {
		r.Collect(msg)
	}
}

// Collect records a denial-class event, ignoring everything else.
func (r *DenialAuditReporter) Collect(msg interface{}) {
	switch ev := msg.(type) {
	case *model.OrderDenied:
		r.denials = append(r.denials, DenialRecord{
			Kind:          "DENIED",
			TraderID:      ev.TraderID,
			StrategyID:    ev.StrategyID,
			InstrumentID:  ev.InstrumentID,
			ClientOrderID: ev.ClientOrderID,
			Reason:        ev.Reason,
			Timestamp:     time.Unix(0, ev.TsEvent).UTC(),
		})
	case *model.OrderModifyRejected:
		r.denials = append(r.denials, DenialRecord{
			Kind:          "MODIFY_REJECTED",
			TraderID:      ev.TraderID,
			StrategyID:    ev.StrategyID,
			InstrumentID:  ev.InstrumentID,
			ClientOrderID: ev.ClientOrderID,
			Reason:        ev.Reason,
			Timestamp:     time.Unix(0, ev.TsEvent).UTC(),
		})
	}
}

func (r *DenialAuditReporter) recordStateChange(ev *model.TradingStateChanged) {
	r.stateChanges = append(r.stateChanges, StateChangeRecord{
		TraderID:  ev.TraderID,
		State:     ev.State,
		Timestamp: time.Unix(0, ev.TsEvent).UTC(),
	})
}

// Denials returns a copy of the collected denial records.
func (r *DenialAuditReporter) Denials() []DenialRecord {
	out := make([]DenialRecord, len(r.denials))
	copy(out, r.denials)
	return out
}

// StateChanges returns a copy of the collected state transitions.
func (r *DenialAuditReporter) StateChanges() []StateChangeRecord {
	out := make([]StateChangeRecord, len(r.stateChanges))
	copy(out, r.stateChanges)
	return out
}

// Count returns the number of collected denial records.
func (r *DenialAuditReporter) Count() int { return len(r.denials) }
