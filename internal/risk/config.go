package risk

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/pretrade/internal/throttler"
)

// Default throttle rates applied when the config omits them.
const (
	DefaultMaxOrderSubmitRate = "100/1s"
	DefaultMaxOrderModifyRate = "100/1s"
)

// Config is the risk engine configuration surface. Rate strings take
// the form "<limit>/<interval>", where the interval is either a Go
// duration ("1s", "250ms") or an ISO-8601 duration ("PT1S").
type Config struct {
	Bypass                  bool              `json:"bypass"`
	MaxOrderSubmitRate      string            `json:"max_order_submit_rate"`
	MaxOrderModifyRate      string            `json:"max_order_modify_rate"`
	MaxNotionalPerOrder     map[string]string `json:"max_notional_per_order"`
	DenyModifyPendingUpdate bool              `json:"deny_modify_pending_update"`
	Debug                   bool              `json:"debug"`
}

// DefaultConfig returns a Config with default rates and no notional
// caps.
func DefaultConfig() Config {
	return Config{
		MaxOrderSubmitRate:      DefaultMaxOrderSubmitRate,
		MaxOrderModifyRate:      DefaultMaxOrderModifyRate,
		DenyModifyPendingUpdate: true,
	}
}

// LoadConfig reads a Config from a JSON file, applying defaults for
// omitted rates, then validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.MaxOrderSubmitRate == "" {
		cfg.MaxOrderSubmitRate = DefaultMaxOrderSubmitRate
	}
	if cfg.MaxOrderModifyRate == "" {
		cfg.MaxOrderModifyRate = DefaultMaxOrderModifyRate
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate fails fast on malformed rates or notional caps, before the
// engine accepts any commands.
func (c Config) Validate() error {
	if _, err := ParseRate(c.MaxOrderSubmitRate); err != nil {
		return fmt.Errorf("invalid max_order_submit_rate: %w", err)
	}
	if _, err := ParseRate(c.MaxOrderModifyRate); err != nil {
		return fmt.Errorf("invalid max_order_modify_rate: %w", err)
	}
	for instrument, value := range c.MaxNotionalPerOrder {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid max_notional_per_order for %s: %w", instrument, err)
		}
		if !d.IsPositive() {
			return fmt.Errorf("invalid max_notional_per_order for %s: must be positive, was %s", instrument, value)
		}
	}
	return nil
}

// Snapshot renders the configuration as a string map, carried on
// TradingStateChanged events.
func (c Config) Snapshot() map[string]string {
	snapshot := map[string]string{
		"bypass":                     strconv.FormatBool(c.Bypass),
		"max_order_submit_rate":      c.MaxOrderSubmitRate,
		"max_order_modify_rate":      c.MaxOrderModifyRate,
		"deny_modify_pending_update": strconv.FormatBool(c.DenyModifyPendingUpdate),
	}
	for instrument, value := range c.MaxNotionalPerOrder {
		snapshot["max_notional_per_order."+instrument] = value
	}
	return snapshot
}

var (
	iso8601Duration = regexp.MustCompile(`^PT(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?$`)
	clockDuration   = regexp.MustCompile(`^(\d+):([0-5]?\d):([0-5]?\d)$`)
)

// ParseRate parses "<limit>/<interval>" into a throttler RateLimit.
func ParseRate(s string) (throttler.RateLimit, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return throttler.RateLimit{}, fmt.Errorf("rate %q: want <limit>/<interval>", s)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return throttler.RateLimit{}, fmt.Errorf("rate %q: bad limit: %w", s, err)
	}
	if limit <= 0 {
		return throttler.RateLimit{}, fmt.Errorf("rate %q: limit must be positive", s)
	}
	interval, err := parseInterval(strings.TrimSpace(parts[1]))
	if err != nil {
		return throttler.RateLimit{}, fmt.Errorf("rate %q: bad interval: %w", s, err)
	}
	if interval <= 0 {
		return throttler.RateLimit{}, fmt.Errorf("rate %q: interval must be positive", s)
	}
	return throttler.RateLimit{Limit: limit, Interval: interval}, nil
}

func parseInterval(s string) (time.Duration, error) {
	if m := clockDuration.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		return time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second, nil
	}
	if m := iso8601Duration.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		var total time.Duration
		units := []struct {
			value string
			unit  time.Duration
		}{
			{m[1], time.Hour},
			{m[2], time.Minute},
			{m[3], time.Second},
		}
		matched := false
		for _, u := range units {
			if u.value == "" {
				continue
			}
			matched = true
			f, err := strconv.ParseFloat(u.value, 64)
			if err != nil {
				return 0, err
			}
			total += time.Duration(f * float64(u.unit))
		}
		if matched {
			return total, nil
		}
	}
	return time.ParseDuration(s)
}
