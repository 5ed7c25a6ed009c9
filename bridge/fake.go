package bridge

import (
	"context"
	"encoding/json"
	"sync"
)

// Fake is an in-process backend for tests and the -fake demo mode: canned
// command responses plus a hand-cranked event stream.
type Fake struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage
	failures  map[string]error
	calls     []FakeCall
	events    chan Event
}

type FakeCall struct {
	Name string
	Args json.RawMessage
}

func NewFake() *Fake {
	return &Fake{
		responses: make(map[string]json.RawMessage),
		failures:  make(map[string]error),
		events:    make(chan Event, 64),
	}
}

// Respond sets the canned result for a command. Unset commands return null.
func (f *Fake) Respond(name string, result any) {
	b, err := json.Marshal(result)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.responses[name] = b
	delete(f.failures, name)
	f.mu.Unlock()
}

// Fail makes a command return the given error.
func (f *Fake) Fail(name string, err error) {
	f.mu.Lock()
	f.failures[name] = err
	f.mu.Unlock()
}

func (f *Fake) Invoke(_ context.Context, name string, args any) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		rawArgs, _ = json.Marshal(args)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, FakeCall{Name: name, Args: rawArgs})
	if err := f.failures[name]; err != nil {
		return nil, err
	}
	if resp, ok := f.responses[name]; ok {
		return resp, nil
	}
	return json.RawMessage("null"), nil
}

// Emit queues an event as the backend would.
func (f *Fake) Emit(topic string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	f.events <- Event{Topic: topic, Payload: b}
}

func (f *Fake) Events() <-chan Event {
	return f.events
}

// Calls returns every recorded invocation of the named command.
func (f *Fake) Calls(name string) []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []FakeCall
	for _, c := range f.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
