package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Command flow metrics
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_engine_commands_total",
			Help: "Total number of trading commands received by the risk engine",
		},
		[]string{"type"},
	)

	eventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "risk_engine_events_total",
			Help: "Total number of events received by the risk engine",
		},
	)

	// Denial metrics
	denialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_engine_denials_total",
			Help: "Total number of denied commands",
		},
		[]string{"kind"},
	)

	// Throttler metrics
	throttlerAdmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_engine_throttler_admitted_total",
			Help: "Total number of commands admitted by a throttler",
		},
		[]string{"throttler"},
	)

	throttlerRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_engine_throttler_rejected_total",
			Help: "Total number of commands dropped or buffered by a throttler",
		},
		[]string{"throttler"},
	)

	// State metrics
	tradingState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_engine_trading_state",
			Help: "Current trading state (1 for the active state label, 0 otherwise)",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(commandsTotal)
	prometheus.MustRegister(eventsTotal)
	prometheus.MustRegister(denialsTotal)
	prometheus.MustRegister(throttlerAdmitted)
	prometheus.MustRegister(throttlerRejected)
	prometheus.MustRegister(tradingState)
}

// MetricsHandler handles the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordCommand records a received trading command by type.
func RecordCommand(commandType string) {
	commandsTotal.WithLabelValues(commandType).Inc()
}

// RecordEvent records a received event.
func RecordEvent() {
	eventsTotal.Inc()
}

// RecordDenial records a denial by kind, e.g. "duplicate", "notional",
// "trading_state", "throttle".
func RecordDenial(kind string) {
	denialsTotal.WithLabelValues(kind).Inc()
}

// RecordThrottlerAdmitted records a throttler admission.
func RecordThrottlerAdmitted(name string) {
	throttlerAdmitted.WithLabelValues(name).Inc()
}

// RecordThrottlerRejected records a throttler drop or buffer.
func RecordThrottlerRejected(name string) {
	throttlerRejected.WithLabelValues(name).Inc()
}

// SetTradingState sets the trading state gauge, clearing other states.
func SetTradingState(state string) {
	for _, s := range []string{"ACTIVE", "REDUCING", "HALTED"} {
		value := 0.0
		if s == state {
			value = 1.0
		}
		tradingState.WithLabelValues(s).Set(value)
	}
}
