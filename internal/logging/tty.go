package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/platdetect/internal/errors"
)

// ColorMode selects when terminal output is colored.
type ColorMode string

const (
	// ColorAuto colors terminals unless the environment opts out.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors any writer, including pipes and files.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// NoColorEnv disables color for platdetect only, leaving NO_COLOR for
// other tools.
const NoColorEnv = "PLATDETECT_NO_COLOR"

// ParseColorMode parses a --color value. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Newf("invalid color mode %q (want auto, always or never)", s)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether w gets color in ColorAuto mode.
func SupportsColor(w io.Writer) bool {
	return ColorEnabled(w, ColorAuto)
}

// ColorEnabled reports whether output to w is colored under mode.
//
// ColorAlways and ColorNever are absolute. ColorAuto requires a terminal and
// is disabled by NO_COLOR, PLATDETECT_NO_COLOR or TERM=dumb.
func ColorEnabled(w io.Writer, mode ColorMode) bool {
	return colorEnabled(mode, IsTTY(w))
}

func colorEnabled(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v, ok := os.LookupEnv(NoColorEnv); ok && v != "" && v != "0" && v != "false" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
