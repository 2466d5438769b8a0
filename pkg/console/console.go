// Package console renders (text, color) pairs for terminal output.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const reset = "\x1b[0m"

// ANSI foreground codes by color name.
var codes = map[string]string{
	"black":   "30",
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"white":   "37",
	"gray":    "90",
	"grey":    "90",
}

// IsColor reports whether name is a known color.
func IsColor(name string) bool {
	_, ok := codes[strings.ToLower(name)]
	return ok
}

// Colorize wraps text in the ANSI sequence for color. Unknown colors leave the
// text unchanged.
func Colorize(text, color string) string {
	code, ok := codes[strings.ToLower(color)]
	if !ok {
		return text
	}
	return "\x1b[" + code + "m" + text + reset
}

// Styled is a line of text with an optional color name.
type Styled struct {
	Text  string
	Color string
}

// Render returns the text, colorized when color output is enabled.
func (s Styled) Render(color bool) string {
	if !color || s.Color == "" {
		return s.Text
	}
	return Colorize(s.Text, s.Color)
}

// Mode selects when color is rendered.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode validates a --color value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	case "":
		return ModeAuto, nil
	}
	return "", fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", s)
}

// Enabled reports whether color should be rendered on w. In auto mode color is
// used only when w is a terminal.
func (m Mode) Enabled(w io.Writer) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer serialises lines written by concurrently running scripts.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer for w, deciding color support once.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	return &Printer{out: w, color: mode.Enabled(w)}
}

// Color reports whether the printer renders color.
func (p *Printer) Color() bool {
	return p.color
}

// Println writes s followed by a newline.
func (p *Printer) Println(s Styled) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, s.Render(p.color)+"\n")
	return err
}
