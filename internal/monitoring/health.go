package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker reports liveness of the risk service over HTTP.
type HealthChecker struct {
	mu           sync.RWMutex
	lastCommand  time.Time
	tradingState string
	errors       []string
}

// HealthStatus is the JSON body served by the health endpoint.
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	LastCommand  time.Time `json:"last_command"`
	TradingState string    `json:"trading_state"`
	Uptime       string    `json:"uptime"`
	Errors       []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// SetLastCommand records the time the engine last processed a command.
func (h *HealthChecker) SetLastCommand(t time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastCommand = t
}

// SetTradingState records the engine's current trading state.
func (h *HealthChecker) SetTradingState(state string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tradingState = state
}

// RecordError appends an error for the health report.
func (h *HealthChecker) RecordError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		LastCommand:  h.lastCommand,
		TradingState: h.tradingState,
		Uptime:       time.Since(startTime).String(),
		Errors:       h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
