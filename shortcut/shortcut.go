// Package shortcut models the global-shortcut specification: a platform-neutral
// modifier set plus one key, stored through the backend and rendered with
// platform glyphs only at display time.
package shortcut

import (
	"strings"
)

// Modifier is a platform-neutral modifier name as persisted by the backend.
type Modifier string

const (
	ModSuper   Modifier = "Super"
	ModControl Modifier = "Control"
	ModShift   Modifier = "Shift"
	ModAlt     Modifier = "Alt"
)

// canonicalOrder fixes both storage and display order.
var canonicalOrder = [...]Modifier{ModSuper, ModControl, ModShift, ModAlt}

// Spec is the portable shortcut representation. The zero value is invalid:
// a spec can only be saved once Key is non-empty.
type Spec struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       string     `json:"key"`
}

func (s Spec) Valid() bool {
	return s.Key != ""
}

// ParseModifier folds the aliases the backend accepts in persisted configs
// ("cmd", "meta", "option", ...) into canonical names.
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(name) {
	case "cmd", "super", "meta", "win":
		return ModSuper, true
	case "ctrl", "control":
		return ModControl, true
	case "shift":
		return ModShift, true
	case "alt", "option":
		return ModAlt, true
	}
	return "", false
}

// Normalize returns a copy with modifiers deduplicated and in canonical
// order. Unrecognized modifier names are dropped.
func (s Spec) Normalize() Spec {
	var have [len(canonicalOrder)]bool
	for _, m := range s.Modifiers {
		if canon, ok := ParseModifier(string(m)); ok {
			for i, c := range canonicalOrder {
				if c == canon {
					have[i] = true
				}
			}
		}
	}
	out := Spec{Key: s.Key}
	for i, c := range canonicalOrder {
		if have[i] {
			out.Modifiers = append(out.Modifiers, c)
		}
	}
	return out
}

// Default is the shortcut the backend falls back to when nothing is saved.
func Default(platform string) Spec {
	if platform == "darwin" {
		return Spec{Modifiers: []Modifier{ModSuper, ModShift}, Key: "F9"}
	}
	return Spec{Modifiers: []Modifier{ModControl, ModShift}, Key: "F9"}
}

var glyphs = map[Modifier]string{
	ModSuper:   "⌘",
	ModControl: "⌃",
	ModShift:   "⇧",
	ModAlt:     "⌥",
}

var words = map[Modifier]string{
	ModSuper:   "Super",
	ModControl: "Ctrl",
	ModShift:   "Shift",
	ModAlt:     "Alt",
}

// Display renders the spec for the given platform. It is a pure function of
// the spec, so a loaded shortcut and a freshly captured one render the same.
func (s Spec) Display(platform string) string {
	if !s.Valid() {
		return ""
	}
	n := s.Normalize()
	var b strings.Builder
	if platform == "darwin" {
		for _, m := range n.Modifiers {
			b.WriteString(glyphs[m])
		}
		b.WriteString(n.Key)
		return b.String()
	}
	for _, m := range n.Modifiers {
		b.WriteString(words[m])
		b.WriteString("+")
	}
	b.WriteString(n.Key)
	return b.String()
}
