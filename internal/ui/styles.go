package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // gray
	colorOK     = 108 // green
	colorWarn   = 179 // amber
	colorFail   = 167 // red
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in gray.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderOK marks a successful step.
func RenderOK(s string) string { return paint(colorOK, s) }

// RenderWarn marks a warning or skipped step.
func RenderWarn(s string) string { return paint(colorWarn, s) }

// RenderFail marks a failed step.
func RenderFail(s string) string { return paint(colorFail, s) }

// RenderStatus colors an HTTP status code by class.
func RenderStatus(code int) string {
	s := fmt.Sprintf("%d", code)
	switch {
	case code >= 200 && code < 300:
		return RenderOK(s)
	case code == 0 || code >= 500:
		return RenderFail(s)
	default:
		return RenderWarn(s)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// SetColor enables or disables color output globally.
func SetColor(on bool) {
	noColor = !on
}
