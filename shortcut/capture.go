package shortcut

import (
	"runtime"
)

type captureState int

const (
	stateIdle captureState = iota
	stateCapturing
)

// KeyEvent is one raw keydown observed while the shortcut field has focus.
// Key is the non-modifier key identifier, or "" when only a modifier went
// down.
type KeyEvent struct {
	Meta  bool
	Ctrl  bool
	Shift bool
	Alt   bool
	Key   string
}

// Capture turns raw keydowns into a staged Spec. Focus starts a capture and
// clears any previously staged, unsaved spec; each valid keydown fully
// replaces the staged spec; losing focus without a valid key discards it.
// Saving is the caller's explicit action, gated on CanSave.
type Capture struct {
	platform string
	state    captureState
	staged   Spec
}

func NewCapture() *Capture {
	return NewCaptureFor(runtime.GOOS)
}

// NewCaptureFor pins the platform, which decides whether the primary
// accelerator modifier (meta/ctrl) captures as Super or Control.
func NewCaptureFor(platform string) *Capture {
	return &Capture{platform: platform}
}

func (c *Capture) Capturing() bool {
	return c.state == stateCapturing
}

// Focus enters capture mode, dropping whatever was staged before.
func (c *Capture) Focus() {
	c.state = stateCapturing
	c.staged = Spec{}
}

// Keydown applies one raw keydown. It reports whether the staged spec was
// replaced; a modifier-only or unrecognized key leaves the capture open and
// the previous staged spec intact.
func (c *Capture) Keydown(ev KeyEvent) bool {
	if c.state != stateCapturing {
		return false
	}
	if ev.Key == "" || IsModifierName(ev.Key) {
		return false
	}
	key, ok := NormalizeKey(ev.Key)
	if !ok {
		return false
	}

	var mods []Modifier
	if ev.Meta || ev.Ctrl {
		if c.platform == "darwin" {
			mods = append(mods, ModSuper)
		} else {
			mods = append(mods, ModControl)
		}
	}
	if ev.Shift {
		mods = append(mods, ModShift)
	}
	if ev.Alt {
		mods = append(mods, ModAlt)
	}

	c.staged = Spec{Modifiers: mods, Key: key}.Normalize()
	return true
}

// Blur ends the capture. The staged spec is returned only if a key was
// captured; otherwise the display reverts to empty.
func (c *Capture) Blur() (Spec, bool) {
	c.state = stateIdle
	if !c.staged.Valid() {
		c.staged = Spec{}
		return Spec{}, false
	}
	return c.staged, true
}

func (c *Capture) Staged() (Spec, bool) {
	return c.staged, c.staged.Valid()
}

// CanSave reports whether a non-modifier key has been captured.
func (c *Capture) CanSave() bool {
	return c.staged.Valid()
}

// Display renders the staged spec with the same mapping used for loaded
// shortcuts, keeping the editor and the current-shortcut line consistent.
func (c *Capture) Display() string {
	return c.staged.Display(c.platform)
}
