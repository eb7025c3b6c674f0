package style

import (
	"fmt"
	"io"

	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/pterm/pterm"
)

// Progress prints one line per processed file
type Progress struct {
	out io.Writer
}

// NewProgress writes progress lines to out
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// File prints the outcome of one file
func (p *Progress) File(result types.FileResult) {
	if p == nil || p.out == nil {
		return
	}
	var line string
	switch result.Status {
	case types.FileStatusMoved:
		line = pterm.Success.Sprintf("%s → %s", result.Name, result.Route.Key())
		if result.Renamed {
			line += MutedStyle.Render(" (renombrado)")
		}
	case types.FileStatusPlanned:
		line = pterm.Info.Sprintf("%s → %s", result.Name, result.Route.Key())
	case types.FileStatusFailed:
		line = pterm.Error.Sprintf("%s: %s", result.Name, result.Error)
	default:
		line = result.Name
	}
	_, _ = fmt.Fprintln(p.out, line)
}
