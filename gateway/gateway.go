// Package gateway is the typed face of the backend command channel. Every
// operation is a thin request/response wrapper; failures come back as
// errors for inline display, never as process faults.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"commander/bridge"
	"commander/catalog"
	"commander/log"
	"commander/shortcut"
)

// ErrCooldown marks a trigger swallowed by the duplicate-action guard.
var ErrCooldown = errors.New("action ignored during cooldown")

const (
	defaultTimeout  = 10 * time.Second
	defaultCooldown = 400 * time.Millisecond
)

// Client wraps a bridge invoker. Trigger-style commands (toggle, download,
// open-settings) are guarded by a per-action cooldown window instead of
// cancelling in-flight requests.
type Client struct {
	inv      bridge.Invoker
	timeout  time.Duration
	cooldown time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

func New(inv bridge.Invoker) *Client {
	return &Client{
		inv:      inv,
		timeout:  defaultTimeout,
		cooldown: defaultCooldown,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

func (c *Client) guard(action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.last[action]; ok && c.now().Sub(t) < c.cooldown {
		return ErrCooldown
	}
	c.last[action] = c.now()
	return nil
}

func (c *Client) call(ctx context.Context, name string, args, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res, err := c.inv.Invoke(ctx, name, args)
	if err != nil {
		log.CommandFailed(name, err)
		return err
	}
	log.CommandRoundTrip(name, time.Since(start))

	if out == nil || len(res) == 0 || string(res) == "null" {
		return nil
	}
	if err := json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", name, err)
	}
	return nil
}

// ToggleRecording starts or stops a recording; the backend answers with a
// human-readable confirmation.
func (c *Client) ToggleRecording(ctx context.Context) (string, error) {
	if err := c.guard("toggle-recording"); err != nil {
		return "", err
	}
	var msg string
	err := c.call(ctx, "toggle-recording", nil, &msg)
	return msg, err
}

func (c *Client) QueryAccessibilityTrust(ctx context.Context) (bool, error) {
	var trusted bool
	err := c.call(ctx, "query-accessibility-trust", nil, &trusted)
	return trusted, err
}

func (c *Client) OpenAccessibilitySettings(ctx context.Context) error {
	if err := c.guard("open-accessibility-settings"); err != nil {
		return err
	}
	return c.call(ctx, "open-accessibility-settings", nil, nil)
}

func (c *Client) DefaultLanguage(ctx context.Context) (string, error) {
	var lang string
	err := c.call(ctx, "get-default-language", nil, &lang)
	return lang, err
}

func (c *Client) SaveDefaultLanguage(ctx context.Context, lang string) error {
	return c.call(ctx, "save-default-language", map[string]string{"language": lang}, nil)
}

func (c *Client) DefaultPrompt(ctx context.Context) (string, error) {
	var prompt string
	err := c.call(ctx, "get-default-prompt", nil, &prompt)
	return prompt, err
}

func (c *Client) SaveDefaultPrompt(ctx context.Context, prompt string) error {
	return c.call(ctx, "save-default-prompt", map[string]string{"prompt": prompt}, nil)
}

func (c *Client) ListAudioInputDevices(ctx context.Context) ([]string, error) {
	var devices []string
	err := c.call(ctx, "list-audio-input-devices", nil, &devices)
	return devices, err
}

func (c *Client) SelectedAudioInputDevice(ctx context.Context) (string, error) {
	var name string
	err := c.call(ctx, "get-selected-audio-input-device", nil, &name)
	return name, err
}

func (c *Client) SaveSelectedAudioInputDevice(ctx context.Context, name string) error {
	return c.call(ctx, "save-selected-audio-input-device", map[string]string{"name": name}, nil)
}

func (c *Client) ApplySelectedAudioInputDevice(ctx context.Context) error {
	return c.call(ctx, "apply-selected-audio-input-device", nil, nil)
}

func (c *Client) AutoPasteEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := c.call(ctx, "get-auto-paste-enabled", nil, &enabled)
	return enabled, err
}

func (c *Client) SaveAutoPasteEnabled(ctx context.Context, enabled bool) error {
	return c.call(ctx, "save-auto-paste-enabled", map[string]bool{"enabled": enabled}, nil)
}

func (c *Client) HoldToRecordEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := c.call(ctx, "get-hold-to-record-enabled", nil, &enabled)
	return enabled, err
}

func (c *Client) SaveHoldToRecordEnabled(ctx context.Context, enabled bool) error {
	return c.call(ctx, "save-hold-to-record-enabled", map[string]bool{"enabled": enabled}, nil)
}

// CurrentShortcut loads the persisted shortcut, normalized to canonical
// modifier order.
func (c *Client) CurrentShortcut(ctx context.Context) (shortcut.Spec, error) {
	var spec shortcut.Spec
	if err := c.call(ctx, "get-current-shortcut", nil, &spec); err != nil {
		return shortcut.Spec{}, err
	}
	return spec.Normalize(), nil
}

// SaveCustomShortcut persists the spec. An invalid spec (no key) is
// rejected locally before any command is issued.
func (c *Client) SaveCustomShortcut(ctx context.Context, spec shortcut.Spec) error {
	if !spec.Valid() {
		return errors.New("shortcut needs a key, not just modifiers")
	}
	return c.call(ctx, "save-custom-shortcut", spec.Normalize(), nil)
}

// ModelsStatus fetches the full catalog snapshot.
func (c *Client) ModelsStatus(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	err := c.call(ctx, "get-models-status", nil, &snap)
	return snap, err
}

func (c *Client) SelectModel(ctx context.Context, id string) error {
	return c.call(ctx, "select-model", map[string]string{"id": id}, nil)
}

func (c *Client) DownloadModel(ctx context.Context, id string) error {
	if err := c.guard("download-model"); err != nil {
		return err
	}
	return c.call(ctx, "download-model", map[string]string{"id": id}, nil)
}

// Ping verifies the command channel end to end.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "ping", nil, nil)
}
