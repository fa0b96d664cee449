// Package throttler provides a generic token-bucket rate limiter over a
// trailing time window. It knows nothing about trading semantics: every
// accepted item is handed to the configured send action, every rejected
// item to the drop action when one is configured, otherwise it is
// buffered FIFO and replayed once the window permits.
package throttler

import (
	"fmt"
	"time"

	"github.com/tradegate/pretrade/internal/clock"
	"github.com/tradegate/pretrade/internal/logger"
)

// RateLimit is a throttling limit per interval.
type RateLimit struct {
	Limit    int
	Interval time.Duration
}

// Throttler admits at most limit items within any trailing interval.
// It is not safe for concurrent use; all calls must come from the
// single logical owner of the processing path.
type Throttler[T any] struct {
	name     string
	limit    int
	interval time.Duration
	clock    clock.Clock
	log      *logger.Logger

	outputSend func(T)
	outputDrop func(T) // nil enables buffering instead of dropping

	// timestamps holds admission times, most recent first, capped at
	// limit entries.
	timestamps []int64
	buffer     []T
	isLimiting bool

	recvCount int
	sentCount int
}

// New creates a Throttler. The send action is required; a nil drop
// action selects buffering for rejected items. A non-positive limit or
// interval is a construction-time error.
func New[T any](
	name string,
	rate RateLimit,
	clk clock.Clock,
	log *logger.Logger,
	outputSend func(T),
	outputDrop func(T),
) (*Throttler[T], error) {
	if rate.Limit <= 0 {
		return nil, fmt.Errorf("throttler %s: limit must be positive, was %d", name, rate.Limit)
	}
	if rate.Interval <= 0 {
		return nil, fmt.Errorf("throttler %s: interval must be positive, was %s", name, rate.Interval)
	}
	if outputSend == nil {
		return nil, fmt.Errorf("throttler %s: output send action is required", name)
	}
	return &Throttler[T]{
		name:       name,
		limit:      rate.Limit,
		interval:   rate.Interval,
		clock:      clk,
		log:        log,
		outputSend: outputSend,
		outputDrop: outputDrop,
		timestamps: make([]int64, 0, rate.Limit),
	}, nil
}

// Limit returns the configured admission limit.
func (t *Throttler[T]) Limit() int { return t.limit }

// Interval returns the configured window interval.
func (t *Throttler[T]) Interval() time.Duration { return t.interval }

// RecvCount returns the number of items received.
func (t *Throttler[T]) RecvCount() int { return t.recvCount }

// SentCount returns the number of items admitted and sent.
func (t *Throttler[T]) SentCount() int { return t.sentCount }

// QSize returns the number of buffered items awaiting capacity.
func (t *Throttler[T]) QSize() int { return len(t.buffer) }

// IsLimiting reports whether the throttler is currently limiting.
func (t *Throttler[T]) IsLimiting() bool { return t.isLimiting }

// Used returns the fraction of the rate limit consumed in the current
// interval, in [0, 1].
func (t *Throttler[T]) Used() float64 {
	if len(t.timestamps) == 0 {
		return 0
	}
	intervalStart := t.clock.TimestampNs() - t.interval.Nanoseconds()
	inWindow := 0
	for _, ts := range t.timestamps {
		if ts <= intervalStart {
			break
		}
		inWindow++
	}
	return float64(inWindow) / float64(t.limit)
}

// Send admits the item when the trailing window has capacity, otherwise
// drops it (when a drop action is configured) or buffers it for replay
// in arrival order.
func (t *Throttler[T]) Send(item T) {
	t.recvCount++
	if t.isLimiting || t.deltaNext() > 0 {
		t.limitItem(item)
	} else {
		t.sendItem(item)
	}
}

// deltaNext returns the nanoseconds until the next admission is
// possible; zero means the window has capacity now.
func (t *Throttler[T]) deltaNext() int64 {
	if len(t.timestamps) < t.limit {
		return 0
	}
	oldest := t.timestamps[t.limit-1]
	elapsed := t.clock.TimestampNs() - oldest
	if remaining := t.interval.Nanoseconds() - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

func (t *Throttler[T]) sendItem(item T) {
	now := t.clock.TimestampNs()
	if len(t.timestamps) >= t.limit {
		t.timestamps = t.timestamps[:t.limit-1]
	}
	t.timestamps = append([]int64{now}, t.timestamps...)
	t.sentCount++
	t.outputSend(item)
}

func (t *Throttler[T]) limitItem(item T) {
	var callback func()
	if t.outputDrop == nil {
		t.buffer = append(t.buffer, item)
		t.log.Debug("%s buffering (qsize=%d)", t.name, len(t.buffer))
		callback = t.processBuffer
	} else {
		t.log.Debug("%s dropping", t.name)
		t.outputDrop(item)
		callback = t.resume
	}
	if !t.isLimiting {
		t.log.Debug("%s limiting", t.name)
		t.setTimer(callback)
		t.isLimiting = true
	}
}

func (t *Throttler[T]) setTimer(callback func()) {
	t.clock.CancelTimer(t.name)
	t.clock.SetTimer(t.name, t.clock.TimestampNs()+t.deltaNext(), callback)
}

// processBuffer replays buffered items in arrival order until the
// window fills again, re-arming the timer while items remain.
func (t *Throttler[T]) processBuffer() {
	for len(t.buffer) > 0 {
		if t.deltaNext() > 0 {
			t.isLimiting = true
			t.setTimer(t.processBuffer)
			return
		}
		item := t.buffer[0]
		t.buffer = t.buffer[1:]
		t.sendItem(item)
	}
	t.isLimiting = false
}

func (t *Throttler[T]) resume() {
	t.isLimiting = false
}

// Reset clears all internal state.
func (t *Throttler[T]) Reset() {
	t.buffer = nil
	t.timestamps = t.timestamps[:0]
	t.recvCount = 0
	t.sentCount = 0
	t.isLimiting = false
}
