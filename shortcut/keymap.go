package shortcut

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// keyNames is the explicit mapping from raw key identifiers to canonical
// key names. Anything not covered falls through to the rules below.
// ENTER and ESC stay in the table even though the interactive editor
// reserves them as its own controls: specs carrying them can still come
// in from a backend-persisted configuration and must normalize the same
// way as everything else.
var keyNames = map[string]string{
	" ":      "SPACE",
	"space":  "SPACE",
	"enter":  "ENTER",
	"return": "ENTER",
	"tab":    "TAB",
	"esc":    "ESC",
	"escape": "ESC",
}

var fnKeyPattern = regexp.MustCompile(`^[Ff]([1-9]|1[0-9]|2[0-4])$`)

// NormalizeKey maps a raw key identifier to its canonical name.
// Fallback rules, in order: named keys via the table; function keys F1-F24
// pass through upper-cased; any single printable rune is upper-cased.
// Everything else (bare modifiers, navigation keys, empty input) is not a
// valid terminal key and returns false.
func NormalizeKey(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if name, ok := keyNames[strings.ToLower(raw)]; ok {
		return name, true
	}
	if fnKeyPattern.MatchString(raw) {
		return strings.ToUpper(raw), true
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			return strings.ToUpper(raw), true
		}
	}
	return "", false
}

// IsModifierName reports whether a raw key identifier is itself a modifier
// key (a keydown carrying only these never completes a capture).
func IsModifierName(raw string) bool {
	switch strings.ToLower(raw) {
	case "shift", "control", "ctrl", "alt", "option", "meta", "super", "cmd", "command", "win":
		return true
	}
	return false
}
