package bridge

import (
	"encoding/json"
	"fmt"

	"commander/log"
)

// Registry routes incoming events to per-topic handlers. Each topic is
// attached exactly once at startup; subscriptions live for the process
// lifetime. The registry holds no domain state.
//
// Subscribe runs before the read loop starts and Dispatch only ever runs on
// that loop, so no locking is needed.
type Registry struct {
	handlers map[string]func(json.RawMessage)
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]func(json.RawMessage))}
}

// Subscribe attaches the handler for a topic. Re-subscribing a topic is a
// wiring bug, not a reconfiguration: last-registration-wins is refused.
func (r *Registry) Subscribe(topic string, handler func(json.RawMessage)) error {
	if topic == "" || handler == nil {
		return fmt.Errorf("subscribe %q: empty topic or nil handler", topic)
	}
	if _, dup := r.handlers[topic]; dup {
		return fmt.Errorf("subscribe %q: topic already has a handler", topic)
	}
	r.handlers[topic] = handler
	return nil
}

// Dispatch delivers one event to its topic handler. A panic inside a
// handler is recovered and logged so the remaining subscriptions stay live;
// an event with no subscription is dropped.
func (r *Registry) Dispatch(ev Event) {
	h, ok := r.handlers[ev.Topic]
	if !ok {
		log.EventDropped(ev.Topic, "no subscription")
		return
	}
	defer func() {
		if p := recover(); p != nil {
			log.EventDropped(ev.Topic, fmt.Sprintf("handler panic: %v", p))
		}
	}()
	h(ev.Payload)
}
