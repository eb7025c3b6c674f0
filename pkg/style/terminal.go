package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// IsColorTerminal reports whether w is a terminal that should receive
// colored output. NO_COLOR always disables color.
func IsColorTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Configure switches lipgloss and pterm to plain output when w cannot show
// colors, so redirected output stays free of escape codes.
func Configure(w io.Writer) {
	if IsColorTerminal(w) {
		return
	}
	DisableColor()
}

// DisableColor forces plain output for every style
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}
