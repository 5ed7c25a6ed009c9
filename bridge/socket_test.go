package bridge

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"
)

// fakeBackendServer answers ping/echo commands and pushes a few events,
// exercising both channels over one real socket.
func fakeBackendServer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commander.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		enc := json.NewEncoder(conn)
		dec := json.NewDecoder(conn)
		ok, notOK := true, false
		for {
			var f frame
			if err := dec.Decode(&f); err != nil {
				return
			}
			switch f.Name {
			case "ping":
				enc.Encode(frame{ID: f.ID, OK: &ok, Result: json.RawMessage(`"pong"`)})
			case "echo":
				enc.Encode(frame{ID: f.ID, OK: &ok, Result: f.Args})
			case "hang":
				// never respond
			case "emit-three":
				enc.Encode(frame{ID: f.ID, OK: &ok})
				for _, topic := range []string{"recording-start", "recording-stop", "transcription-complete"} {
					enc.Encode(frame{Topic: topic, Payload: json.RawMessage("true")})
				}
			default:
				enc.Encode(frame{ID: f.ID, OK: &notOK, Error: "unknown command"})
			}
		}
	}()
	return path
}

func dialTest(t *testing.T) *Client {
	t.Helper()
	c, err := Dial(fakeBackendServer(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestInvokeRoundTrip(t *testing.T) {
	c := dialTest(t)
	res, err := c.Invoke(context.Background(), "ping", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(res) != `"pong"` {
		t.Errorf("result = %s, want \"pong\"", res)
	}
}

func TestInvokeCarriesArgs(t *testing.T) {
	c := dialTest(t)
	res, err := c.Invoke(context.Background(), "echo", map[string]string{"id": "large-v3-turbo"})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(res, &got); err != nil {
		t.Fatal(err)
	}
	if got["id"] != "large-v3-turbo" {
		t.Errorf("args round trip = %v", got)
	}
}

func TestInvokeBackendError(t *testing.T) {
	c := dialTest(t)
	_, err := c.Invoke(context.Background(), "does-not-exist", nil)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestInvokeContextExpiry(t *testing.T) {
	c := dialTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Invoke(ctx, "hang", nil); err == nil {
		t.Error("expected error when the backend never responds")
	}
}

func TestEventsDeliveredInOrder(t *testing.T) {
	c := dialTest(t)
	if _, err := c.Invoke(context.Background(), "emit-three", nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"recording-start", "recording-stop", "transcription-complete"}
	for _, topic := range want {
		select {
		case ev := <-c.Events():
			if ev.Topic != topic {
				t.Errorf("got topic %q, want %q", ev.Topic, topic)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", topic)
		}
	}
}

func TestDialMissingSocket(t *testing.T) {
	if _, err := Dial(filepath.Join(t.TempDir(), "absent.sock")); err == nil {
		t.Error("expected error dialing a missing socket")
	}
}
