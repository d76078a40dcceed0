package eventbus

// Event is an arbitrary payload carried on the bus. Subscribers type-switch
// on the concrete event types they care about.
type Event interface{}

// EventBus is the publish/subscribe surface handed to the solver and its
// observers.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus. It is a thin wrapper over TypedBus so the
// untyped and typed buses share one delivery implementation.
type Bus struct {
	inner *TypedBus[Event]
}

// New creates a new Bus.
func New() *Bus {
	return &Bus{inner: NewTyped[Event]()}
}

// Publish delivers the event to all subscribers without blocking.
func (b *Bus) Publish(e Event) { b.inner.Publish(e) }

// Subscribe registers a subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan Event { return b.inner.Subscribe() }

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) { b.inner.Unsubscribe(sub) }

// Close closes all subscriber channels and stops delivery.
func (b *Bus) Close() { b.inner.Close() }
