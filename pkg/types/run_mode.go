package types

// Mode indicates whether a run mutates the filesystem
type Mode string

const (
	// ModeDryRun simulates a run: routes are computed and reported, nothing moves
	ModeDryRun Mode = "dry-run"

	// ModeExecute performs the moves
	ModeExecute Mode = "ejecucion"
)

// IsDryRun reports whether the mode never mutates the filesystem
func (m Mode) IsDryRun() bool {
	return m == ModeDryRun
}

// ModeFor maps the CLI dry-run flag to a Mode
func ModeFor(dryRun bool) Mode {
	if dryRun {
		return ModeDryRun
	}
	return ModeExecute
}
