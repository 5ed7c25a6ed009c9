//go:build !darwin

// Package login manages starting the client automatically at login.
// Only macOS LaunchAgents are supported; the backend owns autostart
// elsewhere.
package login

import "errors"

var ErrUnsupported = errors.New("launch at login is only supported on macOS")

func Enabled() bool { return false }

func Enable() error { return ErrUnsupported }

func Disable() error { return ErrUnsupported }
