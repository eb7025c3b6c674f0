package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/ordena/pkg/history"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/rs/zerolog"
)

// Recorder indexes finished runs
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Options configures a Reporter
type Options struct {
	// ReportsDir receives the JSON artifact
	ReportsDir string

	// Out receives the console summary. Defaults to stdout.
	Out io.Writer

	// History, when set, is appended to after every run
	History Recorder

	// ShowPlan prints the per-file table in dry-run
	ShowPlan bool
}

// Reporter emits the artifact, the summary and the history entry of a run
type Reporter struct {
	opts     Options
	logger   zerolog.Logger
	lastPath string
}

// New creates a reporter
func New(opts Options) *Reporter {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Reporter{
		opts:   opts,
		logger: logging.GetLogger("report"),
	}
}

// Emit persists and prints stats. It never fails: a report that cannot be
// written is logged and the summary is still printed.
func (r *Reporter) Emit(stats *types.RunStatistics) {
	r.lastPath = ""

	path, err := WriteArtifact(r.opts.ReportsDir, stats)
	if err != nil {
		r.logger.Error().Err(err).
			Str("dir", r.opts.ReportsDir).
			Msg("Could not persist report, console summary only")
	} else {
		r.lastPath = path
		r.logger.Info().Str("path", path).Msg("Report written")
	}

	if r.opts.ShowPlan && stats.Mode.IsDryRun() {
		if table := PlanTable(stats); table != "" {
			_, _ = fmt.Fprintln(r.opts.Out, table)
			_, _ = fmt.Fprintln(r.opts.Out)
		}
	}

	_, _ = fmt.Fprint(r.opts.Out, Summary(stats))
	if r.lastPath != "" {
		_, _ = fmt.Fprintf(r.opts.Out, "\nReporte guardado: %s\n", r.lastPath)
	}

	if r.opts.History != nil {
		if err := r.opts.History.Record(context.Background(), history.EntryFromStats(stats, r.lastPath)); err != nil {
			r.logger.Warn().Err(err).Str("run_id", stats.ID).Msg("Could not record run history")
		}
	}
}

// LastReportPath returns the artifact written by the latest Emit, or "" if
// it could not be written
func (r *Reporter) LastReportPath() string {
	return r.lastPath
}
