package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"commander/log"
)

// Client speaks the JSONL protocol over a Unix socket. One goroutine reads
// frames and demultiplexes them: responses are matched to pending calls by
// id, events are delivered in arrival order on Events().
type Client struct {
	conn net.Conn

	wmu sync.Mutex
	enc *json.Encoder

	pmu     sync.Mutex
	pending map[string]chan frame

	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the backend socket and starts the read loop.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("backend socket %s: %w", path, err)
	}
	c := &Client{
		conn:    conn,
		enc:     json.NewEncoder(conn),
		pending: make(map[string]chan frame),
		events:  make(chan Event, 256),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Events yields backend events in the order the channel delivered them.
// The channel closes when the connection goes down.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Invoke sends a command and blocks until its response, ctx expiry, or
// connection loss. In-flight commands cannot be cancelled backend-side;
// cancellation only abandons the wait.
func (c *Client) Invoke(ctx context.Context, name string, args any) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("%s: encode args: %w", name, err)
		}
		rawArgs = b
	}

	id := uuid.NewString()
	ch := make(chan frame, 1)
	c.pmu.Lock()
	c.pending[id] = ch
	c.pmu.Unlock()
	defer func() {
		c.pmu.Lock()
		delete(c.pending, id)
		c.pmu.Unlock()
	}()

	c.wmu.Lock()
	err := c.enc.Encode(frame{ID: id, Name: name, Args: rawArgs})
	c.wmu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: send: %w", name, err)
	}

	select {
	case resp := <-ch:
		if resp.OK == nil || !*resp.OK {
			return nil, fmt.Errorf("%s: %s", name, resp.Error)
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", name, ctx.Err())
	case <-c.closed:
		return nil, fmt.Errorf("%s: connection closed", name)
	}
}

func (c *Client) readLoop() {
	defer func() {
		c.closeOnce.Do(func() { close(c.closed) })
		close(c.events)
	}()

	dec := json.NewDecoder(c.conn)
	for {
		var f frame
		if err := dec.Decode(&f); err != nil {
			log.Warnf("bridge read: %v", err)
			return
		}
		switch {
		case f.Topic != "":
			select {
			case c.events <- Event{Topic: f.Topic, Payload: f.Payload}:
			case <-c.closed:
				return
			}
		case f.ID != "":
			c.pmu.Lock()
			ch, ok := c.pending[f.ID]
			c.pmu.Unlock()
			if ok {
				ch <- f
			} else {
				log.Warnf("bridge: response for unknown id %s", f.ID)
			}
		default:
			log.Warn("bridge: frame with neither topic nor id")
		}
	}
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return c.conn.Close()
}
