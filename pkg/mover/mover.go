package mover

import (
	"github.com/arthur-debert/ordena/pkg/types"
)

// DirPerm is the permission used for category directories
const DirPerm = 0755

// Mover is the single mutation point of a run
type Mover interface {
	// Mode reports which run mode this strategy implements
	Mode() types.Mode

	// EnsureDir makes sure path exists as a directory. Existing directories
	// are left alone.
	EnsureDir(path string) error

	// Move relocates src to dst. dst must not exist; a Mover never
	// overwrites.
	Move(src, dst string) error
}

// New returns the strategy for mode
func New(mode types.Mode) Mover {
	if mode.IsDryRun() {
		return NewSimulated()
	}
	return NewReal()
}
