package organizer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/ordena/pkg/classifier"
	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/filesystem"
	"github.com/arthur-debert/ordena/pkg/lock"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/mover"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/provision"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Phase names a step of a run
type Phase string

const (
	PhaseInit         Phase = "INIT"
	PhaseProvisioning Phase = "PROVISIONING"
	PhaseScanning     Phase = "SCANNING"
	PhaseProcessing   Phase = "PROCESSING"
	PhaseReporting    Phase = "REPORTING"
	PhaseDone         Phase = "DONE"
)

// Reporter receives the statistics of every run that reaches REPORTING
type Reporter interface {
	Emit(stats *types.RunStatistics)
}

// Options configures an Organizer
type Options struct {
	// Source is the directory to organize
	Source string

	// Taxonomy routes extensions to locations
	Taxonomy *taxonomy.Taxonomy

	// Mode selects dry-run or execute
	Mode types.Mode

	// ReportsDir receives the run log. Reports themselves are written by
	// the Reporter.
	ReportsDir string

	// RunLog enables organizacion_<timestamp>.log in ReportsDir
	RunLog bool

	// Lock takes an advisory lock on Source for the duration of the run
	Lock bool

	// MaxCollisionAttempts bounds destination name disambiguation
	MaxCollisionAttempts int

	// Mover overrides the strategy derived from Mode
	Mover mover.Mover

	// Reporter receives the finished statistics; nil skips reporting
	Reporter Reporter

	// FileSystem is used for scanning and collision checks. Defaults to
	// the OS filesystem.
	FileSystem types.FS

	// OnFile is called after each file is processed
	OnFile func(types.FileResult)

	// Now and NewID are injectable for tests
	Now   func() time.Time
	NewID func() string
}

// Organizer runs organize passes
type Organizer struct {
	opts       Options
	paths      paths.Paths
	classifier *classifier.Classifier
	mover      mover.Mover
	fs         types.FS
	logger     zerolog.Logger
}

// New validates options and builds an Organizer. The source directory itself
// is only checked when Run starts.
func New(opts Options) (*Organizer, error) {
	if opts.Taxonomy == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a taxonomy is required")
	}
	if opts.Mode == "" {
		opts.Mode = types.ModeExecute
	}
	if opts.Mode != types.ModeExecute && opts.Mode != types.ModeDryRun {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown mode %q", opts.Mode)
	}
	if opts.Mover == nil {
		opts.Mover = mover.New(opts.Mode)
	}
	if opts.Mover.Mode() != opts.Mode {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"mover runs in %s mode but the run is %s", opts.Mover.Mode(), opts.Mode)
	}
	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	p, err := paths.New(opts.Source, opts.ReportsDir)
	if err != nil {
		return nil, err
	}

	return &Organizer{
		opts:       opts,
		paths:      p,
		classifier: classifier.New(opts.Taxonomy),
		mover:      opts.Mover,
		fs:         opts.FileSystem,
		logger:     logging.GetLogger("organizer"),
	}, nil
}

// Paths returns the layout the organizer works with
func (o *Organizer) Paths() paths.Paths {
	return o.paths
}

// Run performs one organize pass. The returned error is non-nil only for
// run-fatal failures, in which case no statistics are reported.
func (o *Organizer) Run() (*types.RunStatistics, error) {
	r := &run{
		org:    o,
		stats:  types.NewRunStatistics(o.opts.NewID(), o.opts.Mode, o.paths.SourceRoot(), o.opts.Now()),
		runLog: &logging.RunLog{Logger: zerolog.Nop()},
	}
	r.logger = o.logger.With().
		Str("run_id", r.stats.ID).
		Str("mode", string(o.opts.Mode)).
		Logger()
	defer r.close()

	for _, step := range []struct {
		phase Phase
		fn    func() error
	}{
		{PhaseInit, r.init},
		{PhaseProvisioning, r.provision},
		{PhaseScanning, r.scan},
		{PhaseProcessing, r.process},
	} {
		r.phase = step.phase
		if err := step.fn(); err != nil {
			r.logger.Error().Err(err).Str("phase", string(r.phase)).Msg("Run aborted")
			r.runLog.Logger.Error().Err(err).Str("phase", string(r.phase)).Msg("run aborted")
			return nil, err
		}
	}

	r.phase = PhaseReporting
	r.stats.Finish(o.opts.Now())
	r.runLog.Logger.Info().
		Int("archivos_procesados", r.stats.FilesSeen).
		Int("archivos_movidos", r.stats.FilesMoved).
		Int("errores", r.stats.Errors).
		Int("colisiones", r.stats.Collisions).
		Msg("run finished")
	r.logger.Info().
		Int("seen", r.stats.FilesSeen).
		Int("moved", r.stats.FilesMoved).
		Int("errors", r.stats.Errors).
		Int64("duration_ms", r.stats.DurationMs).
		Msg("Run finished")

	if o.opts.Reporter != nil {
		o.opts.Reporter.Emit(r.stats)
	}
	r.phase = PhaseDone
	return r.stats, nil
}

// run holds the state of one pass
type run struct {
	org    *Organizer
	phase  Phase
	stats  *types.RunStatistics
	lock   *lock.RunLock
	runLog *logging.RunLog
	files  []fs.FileInfo
	logger zerolog.Logger

	// chosen once per run from the mode
	place  placement
	record recorder
	event  string
}

// placement picks the destination path of a file inside dir
type placement func(dir, name string) (dest string, renamed bool, err error)

// recorder tallies a successfully handled file
type recorder func(name string, route types.Route, dest string, size int64, renamed bool)

// unresolved places a file at its nominal destination without looking at
// what already exists there
func unresolved(dir, name string) (string, bool, error) {
	return filepath.Join(dir, name), false, nil
}

func (r *run) init() error {
	root := r.org.paths.SourceRoot()
	info, err := r.org.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrSourceNotFound, "source directory %s does not exist", root).
				WithDetail("source", root)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access source directory %s", root).
			WithDetail("source", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrSourceNotDir, "%s is not a directory", root).
			WithDetail("source", root)
	}

	if r.org.opts.Lock {
		l, err := lock.Acquire(r.org.paths.LockPath(), root)
		if err != nil {
			return err
		}
		r.lock = l
	}

	if r.org.opts.RunLog {
		runLog, err := logging.NewRunLog(r.org.paths.ReportsDir(), r.stats.Timestamp, r.stats.ID)
		if err != nil {
			r.logger.Warn().Err(err).Msg("Could not open run log, continuing without it")
		}
		r.runLog = runLog
		r.runLog.Logger.Info().
			Str("source", root).
			Str("mode", string(r.stats.Mode)).
			Msg("run started")
	}

	r.chooseStrategy()
	return nil
}

// chooseStrategy binds the mode-dependent steps of file processing. Dry-run
// records nominal destinations; execute resolves collisions and counts
// moves.
func (r *run) chooseStrategy() {
	if r.stats.Mode.IsDryRun() {
		r.place = unresolved
		r.record = func(name string, route types.Route, dest string, _ int64, _ bool) {
			r.stats.RecordPlanned(name, route, dest)
		}
		r.event = "file planned"
		return
	}

	resolver := paths.NewResolver(r.org.fs, r.stats.Timestamp, r.org.opts.MaxCollisionAttempts).
		WithLogger(r.logger)
	r.place = resolver.ResolveDestination
	r.record = r.stats.RecordMoved
	r.event = "file moved"
}

func (r *run) provision() error {
	done := logging.LogOperationStart(r.logger, "provision")
	defer done()
	return provision.New(r.org.paths, r.org.mover).EnsureAll(r.org.opts.Taxonomy)
}

func (r *run) scan() error {
	root := r.org.paths.SourceRoot()
	entries, err := r.org.fs.ReadDir(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", root).
			WithDetail("source", root)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// vanished between listing and inspection
			r.logger.Debug().Err(err).Str("file", entry.Name()).Msg("Skipping unreadable entry")
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if r.runLog.Path != "" && filepath.Join(root, entry.Name()) == r.runLog.Path {
			continue
		}
		r.files = append(r.files, info)
	}
	sort.Slice(r.files, func(i, j int) bool {
		return r.files[i].Name() < r.files[j].Name()
	})

	r.logger.Info().Int("files", len(r.files)).Msg("Scanned source directory")
	return nil
}

func (r *run) process() error {
	for _, info := range r.files {
		r.processFile(info)
		if cb := r.org.opts.OnFile; cb != nil {
			cb(r.stats.Files[len(r.stats.Files)-1])
		}
	}
	return nil
}

// processFile handles one file. It never returns an error: failures are
// recorded in the statistics and the run moves on.
func (r *run) processFile(info fs.FileInfo) {
	name := info.Name()
	route := r.org.classifier.Classify(name)
	src := filepath.Join(r.org.paths.SourceRoot(), name)

	dest, renamed, err := r.place(r.org.paths.LocationDir(route), name)
	if err != nil {
		r.fail(name, route, err)
		return
	}
	if err := r.org.mover.Move(src, dest); err != nil {
		r.fail(name, route, err)
		return
	}
	r.record(name, route, dest, info.Size(), renamed)

	if renamed {
		r.runLog.Logger.Warn().
			Str("file", name).
			Str("renamed_to", filepath.Base(dest)).
			Msg("collision resolved")
	}
	r.logger.Debug().Str("file", name).Str("destination", dest).Msg(r.event)
	r.runLog.Logger.Info().
		Str("file", name).
		Str("location", route.Key()).
		Str("destination", dest).
		Int64("size", info.Size()).
		Msg(r.event)
}

func (r *run) fail(name string, route types.Route, err error) {
	r.stats.RecordFailed(name, route, err)
	r.logger.Error().Err(err).Str("file", name).Str("location", route.Key()).Msg("Failed to relocate file")
	r.runLog.Logger.Error().Err(err).Str("file", name).Str("location", route.Key()).Msg("move failed")
}

func (r *run) close() {
	if err := r.runLog.Close(); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to close run log")
	}
	if err := r.lock.Release(); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to release run lock")
	}
}
