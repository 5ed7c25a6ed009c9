package shortcut

import (
	"testing"
)

func TestCaptureReplacesOnEachKeydown(t *testing.T) {
	c := NewCaptureFor("linux")
	c.Focus()

	if !c.Keydown(KeyEvent{Ctrl: true, Key: "a"}) {
		t.Fatal("first keydown not staged")
	}
	if !c.Keydown(KeyEvent{Shift: true, Key: " "}) {
		t.Fatal("second keydown not staged")
	}

	s, ok := c.Staged()
	if !ok {
		t.Fatal("expected staged spec")
	}
	if s.Key != "SPACE" {
		t.Errorf("key = %q, want SPACE", s.Key)
	}
	if len(s.Modifiers) != 1 || s.Modifiers[0] != ModShift {
		t.Errorf("modifiers = %v, want [Shift] only (not additive)", s.Modifiers)
	}
}

func TestCaptureModifierOnlyIgnored(t *testing.T) {
	c := NewCaptureFor("linux")
	c.Focus()

	for _, ev := range []KeyEvent{
		{Ctrl: true},
		{Ctrl: true, Shift: true},
		{Ctrl: true, Shift: true, Key: "shift"},
	} {
		if c.Keydown(ev) {
			t.Errorf("modifier-only keydown %+v staged a spec", ev)
		}
	}
	if c.CanSave() {
		t.Error("CanSave true with no key captured")
	}
	if !c.Capturing() {
		t.Error("capture should remain open after modifier-only keydowns")
	}
}

// The resulting modifier set must not depend on press order: modifier-only
// keydowns along the way are discarded and only the flags on the terminal
// keydown count.
func TestCapturePressOrderIndependent(t *testing.T) {
	final := KeyEvent{Ctrl: true, Shift: true, Alt: true, Key: "p"}

	sequences := [][]KeyEvent{
		{{Ctrl: true}, {Ctrl: true, Shift: true}, final},
		{{Shift: true}, {Shift: true, Alt: true}, final},
		{final},
	}

	var displays []string
	for _, seq := range sequences {
		c := NewCaptureFor("linux")
		c.Focus()
		for _, ev := range seq {
			c.Keydown(ev)
		}
		s, ok := c.Staged()
		if !ok {
			t.Fatal("expected staged spec")
		}
		if s.Key != "P" {
			t.Errorf("key = %q, want P", s.Key)
		}
		displays = append(displays, c.Display())
	}
	for i := 1; i < len(displays); i++ {
		if displays[i] != displays[0] {
			t.Errorf("display[%d] = %q, want %q", i, displays[i], displays[0])
		}
	}
}

func TestCapturePrimaryModifierPerPlatform(t *testing.T) {
	for _, tt := range []struct {
		platform string
		want     Modifier
	}{
		{"darwin", ModSuper},
		{"linux", ModControl},
		{"windows", ModControl},
	} {
		t.Run(tt.platform, func(t *testing.T) {
			c := NewCaptureFor(tt.platform)
			c.Focus()
			c.Keydown(KeyEvent{Meta: true, Key: "k"})
			s, _ := c.Staged()
			if len(s.Modifiers) != 1 || s.Modifiers[0] != tt.want {
				t.Errorf("modifiers = %v, want [%s]", s.Modifiers, tt.want)
			}
		})
	}
}

func TestCaptureFocusClearsStaged(t *testing.T) {
	c := NewCaptureFor("linux")
	c.Focus()
	c.Keydown(KeyEvent{Ctrl: true, Key: "x"})
	c.Focus()
	if _, ok := c.Staged(); ok {
		t.Error("Focus should clear the previously staged spec")
	}
	if c.Display() != "" {
		t.Errorf("display = %q, want empty after re-focus", c.Display())
	}
}

func TestCaptureBlurWithoutKeyReverts(t *testing.T) {
	c := NewCaptureFor("linux")
	c.Focus()
	c.Keydown(KeyEvent{Ctrl: true}) // never a valid terminal state

	s, ok := c.Blur()
	if ok {
		t.Errorf("Blur returned spec %v, want none", s)
	}
	if c.Display() != "" {
		t.Errorf("display = %q, want empty after blur", c.Display())
	}
	if c.Capturing() {
		t.Error("capture should be closed after blur")
	}
}

func TestCaptureBlurKeepsValidSpec(t *testing.T) {
	c := NewCaptureFor("linux")
	c.Focus()
	c.Keydown(KeyEvent{Ctrl: true, Shift: true, Key: "f9"})

	s, ok := c.Blur()
	if !ok {
		t.Fatal("expected spec from Blur")
	}
	if s.Key != "F9" {
		t.Errorf("key = %q, want F9", s.Key)
	}
	if !c.CanSave() {
		t.Error("staged spec should survive blur for retryable save")
	}
}

func TestCaptureIgnoredWhenIdle(t *testing.T) {
	c := NewCaptureFor("linux")
	if c.Keydown(KeyEvent{Key: "a"}) {
		t.Error("keydown staged a spec without focus")
	}
}
