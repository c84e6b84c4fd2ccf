// Package report renders runner events for a human operator or for a
// machine caller.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewStyles.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Ayu palette, shared with the rest of our terminal tooling.
var (
	colorPass  = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn  = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail  = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
)

// Styles colors status lines. Script content is never passed through it.
type Styles struct {
	enabled bool
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

// ValidateColorMode reports whether mode is a color mode NewStyles accepts.
func ValidateColorMode(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever, "":
		return nil
	}
	return fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
}

// NewStyles returns styles for w. In auto mode color is only used when w is
// a terminal and NO_COLOR is unset.
func NewStyles(w io.Writer, mode string) (Styles, error) {
	if err := ValidateColorMode(mode); err != nil {
		return Styles{}, err
	}

	var enabled bool
	switch mode {
	case ColorAuto, "":
		enabled = isTerminal(w) && os.Getenv("NO_COLOR") == ""
	case ColorAlways:
		enabled = true
	case ColorNever:
		enabled = false
	}

	if !enabled {
		return Styles{}, nil
	}

	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways && r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.ANSI256)
	}

	return Styles{
		enabled: true,
		success: r.NewStyle().Foreground(colorPass).Bold(true),
		warning: r.NewStyle().Foreground(colorWarn).Bold(true),
		failure: r.NewStyle().Foreground(colorFail).Bold(true),
		dim:     r.NewStyle().Foreground(colorMuted),
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// Success styles a positive outcome.
func (s Styles) Success(text string) string { return s.render(s.success, text) }

// Warning styles a skipped script.
func (s Styles) Warning(text string) string { return s.render(s.warning, text) }

// Failure styles an error.
func (s Styles) Failure(text string) string { return s.render(s.failure, text) }

// Dim styles secondary information.
func (s Styles) Dim(text string) string { return s.render(s.dim, text) }
