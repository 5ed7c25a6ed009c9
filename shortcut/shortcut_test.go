package shortcut

import (
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	for _, tt := range []struct {
		raw   string
		want  string
		valid bool
	}{
		{" ", "SPACE", true},
		{"space", "SPACE", true},
		{"enter", "ENTER", true},
		{"return", "ENTER", true},
		{"tab", "TAB", true},
		{"esc", "ESC", true},
		{"escape", "ESC", true},
		{"f1", "F1", true},
		{"F9", "F9", true},
		{"F24", "F24", true},
		{"F25", "", false},
		{"a", "A", true},
		{"Z", "Z", true},
		{"7", "7", true},
		{";", ";", true},
		{"", "", false},
		{"backspace", "", false},
		{"arrowup", "", false},
	} {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeKey(tt.raw)
			if ok != tt.valid {
				t.Fatalf("NormalizeKey(%q) valid = %v, want %v", tt.raw, ok, tt.valid)
			}
			if got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDedupesAndOrders(t *testing.T) {
	s := Spec{
		Modifiers: []Modifier{"shift", "Super", "cmd", "Control", "shift"},
		Key:       "F9",
	}
	n := s.Normalize()
	want := []Modifier{ModSuper, ModControl, ModShift}
	if len(n.Modifiers) != len(want) {
		t.Fatalf("got %v, want %v", n.Modifiers, want)
	}
	for i := range want {
		if n.Modifiers[i] != want[i] {
			t.Errorf("modifier[%d] = %q, want %q", i, n.Modifiers[i], want[i])
		}
	}
}

func TestNormalizeDropsUnknown(t *testing.T) {
	n := Spec{Modifiers: []Modifier{"hyper", "shift"}, Key: "A"}.Normalize()
	if len(n.Modifiers) != 1 || n.Modifiers[0] != ModShift {
		t.Errorf("got %v, want [Shift]", n.Modifiers)
	}
}

func TestDefault(t *testing.T) {
	mac := Default("darwin")
	if mac.Key != "F9" || mac.Modifiers[0] != ModSuper || mac.Modifiers[1] != ModShift {
		t.Errorf("darwin default = %v", mac)
	}
	linux := Default("linux")
	if linux.Key != "F9" || linux.Modifiers[0] != ModControl || linux.Modifiers[1] != ModShift {
		t.Errorf("linux default = %v", linux)
	}
}

func TestDisplay(t *testing.T) {
	s := Spec{Modifiers: []Modifier{ModSuper, ModShift}, Key: "F9"}
	if got := s.Display("darwin"); got != "⌘⇧F9" {
		t.Errorf("darwin display = %q", got)
	}
	if got := s.Display("linux"); got != "Super+Shift+F9" {
		t.Errorf("linux display = %q", got)
	}
	if got := (Spec{}).Display("darwin"); got != "" {
		t.Errorf("invalid spec display = %q, want empty", got)
	}
}

// A saved spec loaded from the backend must render identically to the same
// spec captured interactively.
func TestDisplayLoadedMatchesCaptured(t *testing.T) {
	c := NewCaptureFor("darwin")
	c.Focus()
	c.Keydown(KeyEvent{Meta: true, Shift: true, Key: "f9"})
	captured, ok := c.Staged()
	if !ok {
		t.Fatal("expected staged spec")
	}

	loaded := Spec{Modifiers: []Modifier{"cmd", "shift"}, Key: "F9"}
	if captured.Display("darwin") != loaded.Display("darwin") {
		t.Errorf("captured %q != loaded %q",
			captured.Display("darwin"), loaded.Display("darwin"))
	}
}
