package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for ordena
	EnvConfigDir = "ORDENA_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for ordena
	EnvStateDir = "ORDENA_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for ordena-specific files
	AppDirName = "ordena"

	// DefaultReportsDir is where run artifacts accumulate when not configured
	DefaultReportsDir = "logs"

	// LocksDir is the state subdirectory holding per-source run locks
	LocksDir = "locks"

	// HistoryDBName is the run history database file name
	HistoryDBName = "history.db"

	// LogFileName is the name of the application log file
	LogFileName = "ordena.log"
)

// Paths provides centralized path management for ordena
type Paths interface {
	types.Pather
	SourceRoot() string
	LocationDir(route types.Route) string
	LocationPath(route types.Route, filename string) string
	CategoryDir(category string) string
	LockPath() string
	HistoryDBPath() string
	LogFilePath() string
}

// paths implements Paths
type paths struct {
	sourceRoot string
	reportsDir string
	xdgConfig  string
	xdgState   string
}

// New creates a Paths instance for organizing sourceRoot. An empty reportsDir
// uses DefaultReportsDir; relative report paths are resolved against the
// current working directory.
func New(sourceRoot, reportsDir string) (Paths, error) {
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source directory is required")
	}

	root, err := NormalizePath(sourceRoot)
	if err != nil {
		return nil, err
	}

	if reportsDir == "" {
		reportsDir = DefaultReportsDir
	}
	reports, err := NormalizePath(reportsDir)
	if err != nil {
		return nil, err
	}

	p := &paths{sourceRoot: root, reportsDir: reports}
	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}
}

// ConfigDir returns the config directory without requiring a source root
func ConfigDir() string {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		return expandHome(configDir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the state directory without requiring a source root
func StateDir() string {
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		return expandHome(stateDir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the application log file path without requiring a source root
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// NormalizePath expands home, makes the path absolute and cleans it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// SourceRoot returns the directory being organized
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// CategoryDir returns the directory for a top-level category
func (p *paths) CategoryDir(category string) string {
	return filepath.Join(p.sourceRoot, category)
}

// LocationDir returns the directory files on route are moved into
func (p *paths) LocationDir(route types.Route) string {
	if route.Subcategory == "" {
		return p.CategoryDir(route.Category)
	}
	return filepath.Join(p.sourceRoot, route.Category, route.Subcategory)
}

// LocationPath returns the unresolved destination of filename on route
func (p *paths) LocationPath(route types.Route, filename string) string {
	return filepath.Join(p.LocationDir(route), filename)
}

// ReportsDir returns the directory where run artifacts accumulate
func (p *paths) ReportsDir() string {
	return p.reportsDir
}

// ConfigDir returns the XDG config directory for ordena
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for ordena
func (p *paths) StateDir() string {
	return p.xdgState
}

// LockPath returns the advisory lock file guarding this source root.
// The name is derived from the root so distinct roots never share a lock.
func (p *paths) LockPath() string {
	sum := sha256.Sum256([]byte(p.sourceRoot))
	return filepath.Join(p.xdgState, LocksDir, hex.EncodeToString(sum[:8])+".lock")
}

// HistoryDBPath returns the run history database path
func (p *paths) HistoryDBPath() string {
	return filepath.Join(p.xdgState, HistoryDBName)
}

// LogFilePath returns the application log file path
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
