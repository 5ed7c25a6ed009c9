// Package tray mirrors the reconciled status for the menu-bar surface:
// tooltip text, recording indicator, and the record/stop action wired back
// into the UI. The OS icon itself lives with the backend; this package owns
// the client-side state the surface reflects.
package tray

import (
	"sync"

	"commander/status"
)

const appName = "Commander"

var (
	mu        sync.Mutex
	view      status.View
	errText   string
	recordFn  func()
	stopFn    func()
	quitCh    = make(chan struct{})
	closeOnce sync.Once
)

func OnRecord(start, stop func()) {
	mu.Lock()
	recordFn = start
	stopFn = stop
	mu.Unlock()
}

// SetStatus reflects the reconciler's current view.
func SetStatus(v status.View) {
	mu.Lock()
	view = v
	if v.Status != status.Error {
		errText = ""
	}
	mu.Unlock()
}

// SetError pins an error message into the tooltip until the next status.
func SetError(msg string) {
	mu.Lock()
	errText = msg
	mu.Unlock()
}

func Recording() bool {
	mu.Lock()
	defer mu.Unlock()
	return view.Status == status.Recording
}

// Tooltip is what the menu-bar surface (and the terminal title) shows.
func Tooltip() string {
	mu.Lock()
	defer mu.Unlock()
	if errText != "" {
		return appName + " – " + errText
	}
	switch view.Status {
	case status.Recording:
		return appName + " – Recording…"
	case status.Transcribing:
		return appName + " – Transcribing…"
	case status.Error:
		return appName + " – " + view.Label
	default:
		return appName
	}
}

// Record triggers the registered record/stop action for the current state.
func Record() {
	mu.Lock()
	fn := recordFn
	if view.Status == status.Recording {
		fn = stopFn
	}
	mu.Unlock()
	if fn != nil {
		fn()
	}
}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}

func QuitChan() <-chan struct{} {
	return quitCh
}
