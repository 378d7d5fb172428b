// Package output renders command results for terminals, pipes and
// machines.
//
// Auto mode picks styled text when stdout is a terminal and markdown
// otherwise, so piping a command into a file or another tool yields
// plain, readable output.
package output

import (
	"fmt"
	"strings"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Modes lists every accepted mode, for flag completion.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// ParseMode parses a mode name. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	default:
		return "", fmt.Errorf("invalid output mode %q (want one of %s)", s, strings.Join(Modes, ", "))
	}
}

// Color controls ANSI styling independently of the mode.
type Color string

// Color settings.
const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// ParseColor parses a color setting. The empty string is ColorAuto.
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	default:
		return "", fmt.Errorf("invalid color setting %q (want auto, always or never)", s)
	}
}
