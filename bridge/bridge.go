// Package bridge carries the two channels between this client and the
// Commander backend process: a request/response command channel and a
// fire-and-forget event channel, both as JSON lines over a Unix socket.
package bridge

import (
	"context"
	"encoding/json"
)

// DefaultSocketPath is where the backend listens unless configured otherwise.
const DefaultSocketPath = "/tmp/commander.sock"

// Event is one backend notification on a named topic.
type Event struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Invoker issues a named backend command and awaits its typed result.
type Invoker interface {
	Invoke(ctx context.Context, name string, args any) (json.RawMessage, error)
}

// frame is the single wire shape for both channels. A frame with a Topic is
// an event; a frame with an ID is a command request or its response.
type frame struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	OK      *bool           `json:"ok,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
