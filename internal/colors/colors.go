// Package colors is the terminal palette shared by the diagnostic emitter and the CLI.
package colors

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// COLOR is a named terminal style
type COLOR struct {
	style *color.Color
}

func newColor(attrs ...color.Attribute) COLOR {
	return COLOR{style: color.New(attrs...)}
}

var (
	RED    = newColor(color.FgRed)
	GREEN  = newColor(color.FgGreen)
	YELLOW = newColor(color.FgYellow)
	BLUE   = newColor(color.FgBlue)
	PURPLE = newColor(color.FgMagenta)
	CYAN   = newColor(color.FgCyan)
	GREY   = newColor(color.FgHiBlack)
	WHITE  = newColor(color.FgWhite)

	BOLD_RED    = newColor(color.FgRed, color.Bold)
	BOLD_YELLOW = newColor(color.FgYellow, color.Bold)
	BOLD_CYAN   = newColor(color.FgCyan, color.Bold)
	BOLD_PURPLE = newColor(color.FgMagenta, color.Bold)
	BOLD_GREEN  = newColor(color.FgGreen, color.Bold)
)

// Mode selects when styles are applied
type Mode string

const (
	AUTO   Mode = "auto"
	ALWAYS Mode = "always"
	NEVER  Mode = "never"
)

// Configure applies a colour mode process-wide.
// AUTO leaves fatih/color's terminal detection in charge.
func Configure(mode Mode) {
	switch mode {
	case ALWAYS:
		color.NoColor = false
	case NEVER:
		color.NoColor = true
	}
}

// Enabled reports whether styles are currently emitted
func Enabled() bool {
	return !color.NoColor
}

func (c COLOR) Fprint(w io.Writer, a ...any) {
	c.style.Fprint(w, a...)
}

func (c COLOR) Fprintf(w io.Writer, format string, a ...any) {
	c.style.Fprintf(w, format, a...)
}

func (c COLOR) Fprintln(w io.Writer, a ...any) {
	c.style.Fprintln(w, a...)
}

// Sprint returns the styled text
func (c COLOR) Sprint(a ...any) string {
	return c.style.Sprint(a...)
}

func (c COLOR) Print(a ...any) {
	c.Fprint(os.Stderr, a...)
}

func (c COLOR) Printf(format string, a ...any) {
	c.Fprintf(os.Stderr, format, a...)
}

func (c COLOR) Println(a ...any) {
	c.Fprintln(os.Stderr, a...)
}
