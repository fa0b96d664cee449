package throttler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/pretrade/internal/clock"
	"github.com/tradegate/pretrade/internal/logger"
)

const second = int64(time.Second)

type harness struct {
	clock     *clock.TestClock
	throttler *Throttler[string]
	sent      []string
	dropped   []string
}

func newBufferedHarness(t *testing.T, limit int, interval time.Duration) *harness {
	t.Helper()
	h := &harness{clock: clock.NewTestClock()}
	var err error
	h.throttler, err = New(
		"BUFFER",
		RateLimit{Limit: limit, Interval: interval},
		h.clock,
		logger.New("test", logger.LevelError),
		func(item string) { h.sent = append(h.sent, item) },
		nil,
	)
	require.NoError(t, err)
	return h
}

func newDroppingHarness(t *testing.T, limit int, interval time.Duration) *harness {
	t.Helper()
	h := &harness{clock: clock.NewTestClock()}
	var err error
	h.throttler, err = New(
		"DROPPER",
		RateLimit{Limit: limit, Interval: interval},
		h.clock,
		logger.New("test", logger.LevelError),
		func(item string) { h.sent = append(h.sent, item) },
		func(item string) { h.dropped = append(h.dropped, item) },
	)
	require.NoError(t, err)
	return h
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	clk := clock.NewTestClock()
	log := logger.New("test", logger.LevelError)
	send := func(string) {}

	_, err := New("T", RateLimit{Limit: 0, Interval: time.Second}, clk, log, send, nil)
	assert.Error(t, err)

	_, err = New("T", RateLimit{Limit: 1, Interval: 0}, clk, log, send, nil)
	assert.Error(t, err)

	_, err = New[string]("T", RateLimit{Limit: 1, Interval: time.Second}, clk, log, nil, nil)
	assert.Error(t, err)
}

func TestSend_BelowLimitSendsImmediately(t *testing.T) {
	h := newBufferedHarness(t, 5, time.Second)

	h.throttler.Send("a")
	h.throttler.Send("b")

	assert.Equal(t, []string{"a", "b"}, h.sent)
	assert.Equal(t, 2, h.throttler.RecvCount())
	assert.Equal(t, 2, h.throttler.SentCount())
	assert.Equal(t, 0, h.throttler.QSize())
	assert.False(t, h.throttler.IsLimiting())
	assert.InDelta(t, 0.4, h.throttler.Used(), 1e-9)
}

func TestSend_AtLimitBuffersExcess(t *testing.T) {
	h := newBufferedHarness(t, 5, time.Second)

	for _, item := range []string{"1", "2", "3", "4", "5", "6"} {
		h.throttler.Send(item)
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, h.sent)
	assert.Equal(t, 1, h.throttler.QSize())
	assert.True(t, h.throttler.IsLimiting())
	assert.Equal(t, 6, h.throttler.RecvCount())
	assert.Equal(t, 5, h.throttler.SentCount())
	assert.Equal(t, []string{"BUFFER"}, h.clock.TimerNames())
	assert.InDelta(t, 1.0, h.throttler.Used(), 1e-9)
}

func TestSend_BufferedItemsReplayInOrderAfterInterval(t *testing.T) {
	h := newBufferedHarness(t, 5, time.Second)

	for _, item := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		h.throttler.Send(item)
	}
	require.Equal(t, 2, h.throttler.QSize())

	h.clock.Advance(second)

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, h.sent)
	assert.Equal(t, 0, h.throttler.QSize())
	assert.False(t, h.throttler.IsLimiting())
	assert.Equal(t, 7, h.throttler.SentCount())
}

func TestSend_ReplayStopsWhenWindowRefills(t *testing.T) {
	h := newBufferedHarness(t, 2, time.Second)

	h.throttler.Send("1")
	h.clock.Advance(second / 2)
	h.throttler.Send("2")
	h.throttler.Send("3")
	h.throttler.Send("4")
	require.Equal(t, []string{"1", "2"}, h.sent)
	require.Equal(t, 2, h.throttler.QSize())

	// At t=1s only the first admission has left the window, so exactly
	// one buffered item is replayed and the timer is re-armed.
	h.clock.Advance(second / 2)
	assert.Equal(t, []string{"1", "2", "3"}, h.sent)
	assert.Equal(t, 1, h.throttler.QSize())
	assert.True(t, h.throttler.IsLimiting())

	h.clock.Advance(second / 2)
	assert.Equal(t, []string{"1", "2", "3", "4"}, h.sent)
	assert.Equal(t, 0, h.throttler.QSize())
	assert.False(t, h.throttler.IsLimiting())
}

func TestSend_WhileLimitingBuffersWithoutNewTimer(t *testing.T) {
	h := newBufferedHarness(t, 1, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	h.throttler.Send("3")

	assert.Equal(t, []string{"1"}, h.sent)
	assert.Equal(t, 2, h.throttler.QSize())
	assert.Equal(t, []string{"BUFFER"}, h.clock.TimerNames())
}

func TestSend_DropModeDropsExcess(t *testing.T) {
	h := newDroppingHarness(t, 2, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	h.throttler.Send("3")

	assert.Equal(t, []string{"1", "2"}, h.sent)
	assert.Equal(t, []string{"3"}, h.dropped)
	assert.Equal(t, 0, h.throttler.QSize())
	assert.True(t, h.throttler.IsLimiting())
}

func TestSend_DropModeAdmitsAgainAfterInterval(t *testing.T) {
	h := newDroppingHarness(t, 2, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	h.throttler.Send("3")
	require.Equal(t, []string{"3"}, h.dropped)

	h.clock.Advance(second)
	assert.False(t, h.throttler.IsLimiting())

	h.throttler.Send("4")
	assert.Equal(t, []string{"1", "2", "4"}, h.sent)
	assert.Equal(t, []string{"3"}, h.dropped)
}

func TestSend_DropModeDropsAllWhileLimiting(t *testing.T) {
	h := newDroppingHarness(t, 1, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	h.throttler.Send("3")

	assert.Equal(t, []string{"1"}, h.sent)
	assert.Equal(t, []string{"2", "3"}, h.dropped)
}

func TestUsed_DecaysAsWindowSlides(t *testing.T) {
	h := newBufferedHarness(t, 4, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	assert.InDelta(t, 0.5, h.throttler.Used(), 1e-9)

	h.clock.Advance(second + 1)
	assert.InDelta(t, 0.0, h.throttler.Used(), 1e-9)
}

func TestReset_ClearsState(t *testing.T) {
	h := newBufferedHarness(t, 1, time.Second)

	h.throttler.Send("1")
	h.throttler.Send("2")
	require.Equal(t, 1, h.throttler.QSize())

	h.throttler.Reset()

	assert.Equal(t, 0, h.throttler.QSize())
	assert.Equal(t, 0, h.throttler.RecvCount())
	assert.Equal(t, 0, h.throttler.SentCount())
	assert.False(t, h.throttler.IsLimiting())
	assert.InDelta(t, 0.0, h.throttler.Used(), 1e-9)
}
