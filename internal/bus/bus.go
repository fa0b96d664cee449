// Package bus provides the in-process message bus the risk engine
// consumes: point-to-point named endpoints for commands and events, and
// fan-out topics for published notifications. Delivery is synchronous;
// ordering follows the single-owner processing model of the engine.
package bus

import "github.com/tradegate/pretrade/internal/logger"

// Handler receives a message sent to an endpoint or published to a
// topic.
type Handler func(msg interface{})

// MessageBus routes messages to registered endpoints and topic
// subscribers.
type MessageBus struct {
	endpoints map[string]Handler
	topics    map[string][]Handler
	log       *logger.Logger
	sentCount int
	pubCount  int
}

// New creates an empty MessageBus.
func New(log *logger.Logger) *MessageBus {
	return &MessageBus{
		endpoints: make(map[string]Handler),
		topics:    make(map[string][]Handler),
		log:       log,
	}
}

// Register binds a handler to a named endpoint, replacing any previous
// registration.
func (b *MessageBus) Register(endpoint string, handler Handler) {
	b.endpoints[endpoint] = handler
}

// Deregister removes an endpoint registration.
func (b *MessageBus) Deregister(endpoint string) {
	delete(b.endpoints, endpoint)
}

// Send delivers msg to the named endpoint. A send to an unregistered
// endpoint logs an error and drops the message.
func (b *MessageBus) Send(endpoint string, msg interface{}) {
	handler, ok := b.endpoints[endpoint]
	if !ok {
		b.log.Error("no endpoint registered for %s, dropping message", endpoint)
		return
	}
	b.sentCount++
	handler(msg)
}

// Subscribe adds a handler for a topic.
func (b *MessageBus) Subscribe(topic string, handler Handler) {
	b.topics[topic] = append(b.topics[topic], handler)
}

// Publish delivers msg to every subscriber of topic, in subscription
// order. Publishing to a topic with no subscribers is not an error.
func (b *MessageBus) Publish(topic string, msg interface{}) {
	b.pubCount++
	for _, handler := range b.topics[topic] {
		handler(msg)
	}
}

// SentCount returns the number of endpoint sends delivered.
func (b *MessageBus) SentCount() int { return b.sentCount }

// PubCount returns the number of topic publishes performed.
func (b *MessageBus) PubCount() int { return b.pubCount }
