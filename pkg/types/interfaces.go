package types

import (
	"io/fs"
)

// FS is the filesystem interface required for ordena operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides application paths for ordena operations
type Pather interface {
	// ReportsDir returns the directory where run artifacts accumulate
	ReportsDir() string

	// ConfigDir returns the XDG config directory for ordena
	ConfigDir() string

	// StateDir returns the XDG state directory for ordena
	StateDir() string
}
