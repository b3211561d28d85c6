package events

// EventCollector buffers the domain events an aggregate raises until the
// application layer drains them for publishing. Embed it by value.
type EventCollector struct {
	pending []DomainEvent
}

// Record appends events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Events returns a copy of the pending events.
func (c *EventCollector) Events() []DomainEvent {
	if len(c.pending) == 0 {
		return nil
	}
	out := make([]DomainEvent, len(c.pending))
	copy(out, c.pending)
	return out
}

// ClearEvents hands over the pending events and empties the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}

// Raised returns the pending events of concrete type T, oldest first, without
// draining the buffer.
func Raised[T DomainEvent](c *EventCollector) []T {
	var out []T
	for _, evt := range c.pending {
		if typed, ok := evt.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
