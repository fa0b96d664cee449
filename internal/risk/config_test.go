package risk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		input    string
		limit    int
		interval time.Duration
	}{
		{"100/1s", 100, time.Second},
		{"5/250ms", 5, 250 * time.Millisecond},
		{"10/1m", 10, time.Minute},
		{"100/PT1S", 100, time.Second},
		{"60/PT1M", 60, time.Minute},
		{"2/PT0.5S", 2, 500 * time.Millisecond},
		{"2/00:00:01", 2, time.Second},
		{"1000/01:30:00", 1000, 90 * time.Minute},
	}

	for _, tt := range tests {
		rate, err := ParseRate(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.limit, rate.Limit, "input %q", tt.input)
		assert.Equal(t, tt.interval, rate.Interval, "input %q", tt.input)
	}
}

func TestParseRate_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"100",
		"abc/1s",
		"0/1s",
		"-5/1s",
		"100/abc",
		"100/0s",
		"100/PT",
	} {
		_, err := ParseRate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Bypass)
	assert.Equal(t, "100/1s", cfg.MaxOrderSubmitRate)
	assert.Equal(t, "100/1s", cfg.MaxOrderModifyRate)
	assert.True(t, cfg.DenyModifyPendingUpdate)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate_RejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxOrderSubmitRate = "nope"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxNotionalPerOrder = map[string]string{"BTCUSDT.BYBIT": "-100"}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxNotionalPerOrder = map[string]string{"BTCUSDT.BYBIT": "abc"}
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.json")
	body := `{
		"bypass": true,
		"max_order_submit_rate": "50/1s",
		"max_notional_per_order": {"BTCUSDT.BYBIT": "250000"},
		"debug": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Bypass)
	assert.Equal(t, "50/1s", cfg.MaxOrderSubmitRate)
	assert.Equal(t, "100/1s", cfg.MaxOrderModifyRate) // default applied
	assert.Equal(t, "250000", cfg.MaxNotionalPerOrder["BTCUSDT.BYBIT"])
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/risk.json")
	assert.Error(t, err)
}

func TestConfigSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNotionalPerOrder = map[string]string{"BTCUSDT.BYBIT": "1000"}

	snapshot := cfg.Snapshot()

	assert.Equal(t, "false", snapshot["bypass"])
	assert.Equal(t, "100/1s", snapshot["max_order_submit_rate"])
	assert.Equal(t, "1000", snapshot["max_notional_per_order.BTCUSDT.BYBIT"])
}
