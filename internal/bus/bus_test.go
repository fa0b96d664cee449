package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradegate/pretrade/internal/logger"
)

func newTestBus() *MessageBus {
	return New(logger.New("test", logger.LevelError))
}

func TestSend_DeliversToRegisteredEndpoint(t *testing.T) {
	b := newTestBus()
	var received []interface{}
	b.Register("RiskEngine.execute", func(msg interface{}) {
		received = append(received, msg)
	})

	b.Send("RiskEngine.execute", "command")

	assert.Equal(t, []interface{}{"command"}, received)
	assert.Equal(t, 1, b.SentCount())
}

func TestSend_UnknownEndpointDropsMessage(t *testing.T) {
	b := newTestBus()

	b.Send("nowhere", "command")

	assert.Equal(t, 0, b.SentCount())
}

func TestRegister_ReplacesPreviousHandler(t *testing.T) {
	b := newTestBus()
	var first, second int
	b.Register("endpoint", func(msg interface{}) { first++ })
	b.Register("endpoint", func(msg interface{}) { second++ })

	b.Send("endpoint", "x")

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestDeregister(t *testing.T) {
	b := newTestBus()
	var calls int
	b.Register("endpoint", func(msg interface{}) { calls++ })
	b.Deregister("endpoint")

	b.Send("endpoint", "x")

	assert.Equal(t, 0, calls)
}

func TestPublish_FansOutInSubscriptionOrder(t *testing.T) {
	b := newTestBus()
	var order []string
	b.Subscribe("events.risk", func(msg interface{}) { order = append(order, "a") })
	b.Subscribe("events.risk", func(msg interface{}) { order = append(order, "b") })

	b.Publish("events.risk", "event")

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, b.PubCount())
}

func TestPublish_NoSubscribersIsNotAnError(t *testing.T) {
	b := newTestBus()

	b.Publish("events.risk", "event")

	assert.Equal(t, 1, b.PubCount())
}
