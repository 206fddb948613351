package bus

import (
	"time"

	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
)

// EventBus is a thread-safe, in-process pub/sub bus for transition lifecycle
// events.
//
// Key characteristics:
// - Type-based fan-out: handlers subscribe by EventType, or to every type.
// - Synchronous delivery: Publish calls handlers in the caller goroutine, in
// subscription order.
// - Error aggregation: handler errors are joined and returned from Publish.
// - Optional observability: metrics are produced only when observers are registered.
type EventBus interface {
	// Publish delivers the event synchronously to all active subscribers of
	// event.Type. If one or more handlers return an error, a joined error is
	// returned.
	Publish(event Event) error
	// PublishBatch publishes events in order and aggregates errors across them.
	PublishBatch(events ...Event) error

	// Subscribe registers a handler for one event type.
	Subscribe(eventType EventType, handler EventHandler) Subscription
	// SubscribeAll registers a handler for every event type.
	SubscribeAll(handler EventHandler) Subscription
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription)

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of accumulated metrics. Metrics are only
	// collected while at least one observer is registered.
	GetMetrics() EventBusMetrics
}

type EventType string

const (
	TransitionBegan      EventType = "transition.began"
	TransitionRedirected EventType = "transition.redirected"
	TransitionSettled    EventType = "transition.settled"
	TransitionTornDown   EventType = "transition.torn_down"
)

// Event describes one step in the life of a transition. Direction is the
// direction in effect when the event was published; for TransitionSettled it
// is the direction the transition settled in.
type Event struct {
	Type       EventType
	Transition string
	Kind       string
	Direction  direction.Direction
	Position   geometry.Point
	Timestamp  time.Time
}

// EventHandler is invoked per delivered event. Returned errors are joined and
// returned from Publish.
type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	// EventType is empty for subscriptions to every type.
	EventType() EventType
	IsActive() bool
	Cancel()
}

// EventBusObserver is notified about deliveries and errors. Observers should
// return quickly.
type EventBusObserver interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
