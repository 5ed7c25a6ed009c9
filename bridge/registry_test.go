package bridge

import (
	"encoding/json"
	"testing"
)

func TestSubscribeAndDispatch(t *testing.T) {
	r := NewRegistry()
	var got string
	if err := r.Subscribe("recording-start", func(p json.RawMessage) {
		got = string(p)
	}); err != nil {
		t.Fatal(err)
	}

	r.Dispatch(Event{Topic: "recording-start", Payload: json.RawMessage("true")})
	if got != "true" {
		t.Errorf("handler saw %q, want true", got)
	}
}

func TestSubscribeDuplicateTopicRefused(t *testing.T) {
	r := NewRegistry()
	noop := func(json.RawMessage) {}
	if err := r.Subscribe("audio-level", noop); err != nil {
		t.Fatal(err)
	}
	if err := r.Subscribe("audio-level", noop); err == nil {
		t.Error("second Subscribe for the same topic should fail")
	}
}

func TestSubscribeRejectsEmptyTopicAndNilHandler(t *testing.T) {
	r := NewRegistry()
	if err := r.Subscribe("", func(json.RawMessage) {}); err == nil {
		t.Error("empty topic accepted")
	}
	if err := r.Subscribe("x", nil); err == nil {
		t.Error("nil handler accepted")
	}
}

func TestDispatchUnknownTopicDropped(t *testing.T) {
	r := NewRegistry()
	// must not panic
	r.Dispatch(Event{Topic: "nobody-home", Payload: json.RawMessage("1")})
}

// A panicking handler must not take down the registry or starve the
// remaining subscriptions.
func TestDispatchRecoversHandlerPanic(t *testing.T) {
	r := NewRegistry()
	if err := r.Subscribe("bad", func(json.RawMessage) {
		panic("boom")
	}); err != nil {
		t.Fatal(err)
	}
	delivered := false
	if err := r.Subscribe("good", func(json.RawMessage) {
		delivered = true
	}); err != nil {
		t.Fatal(err)
	}

	r.Dispatch(Event{Topic: "bad"})
	r.Dispatch(Event{Topic: "good"})
	if !delivered {
		t.Error("panic in one handler blocked delivery to another")
	}
	// the panicking topic stays subscribed and keeps being contained
	r.Dispatch(Event{Topic: "bad"})
}
