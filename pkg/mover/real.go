package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Real executes mutations as synthfs operations on the OS filesystem.
// Each request runs as its own pipeline so a failed move never affects
// other files.
type Real struct {
	logger     zerolog.Logger
	filesystem filesystem.FullFileSystem
	seq        atomic.Uint64
}

// NewReal creates an executing mover
func NewReal() *Real {
	osfs := filesystem.NewOSFileSystem("/")
	return &Real{
		logger:     logging.GetLogger("mover.real"),
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// Mode implements Mover
func (r *Real) Mode() types.Mode {
	return types.ModeExecute
}

// EnsureDir implements Mover
func (r *Real) EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return errors.Newf(errors.ErrDirCreate, "%s exists and is not a directory", path).
			WithDetail("path", path)
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot inspect %s", path).
			WithDetail("path", path)
	}

	sfs := synthfs.New()
	op := sfs.CreateDirWithID(r.nextID("mkdir", path), path, DirPerm)
	if err := r.run(op); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path).
			WithDetail("path", path)
	}
	r.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// Move implements Mover
func (r *Real) Move(src, dst string) error {
	sfs := synthfs.New()
	op := sfs.CustomOperationWithID(r.nextID("move", src), func(ctx context.Context, fs filesystem.FileSystem) error {
		return moveFile(src, dst)
	})
	if err := r.run(op); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to move %s", filepath.Base(src)).
			WithDetail("source", src).
			WithDetail("destination", dst)
	}
	return nil
}

func (r *Real) run(op synthfs.Operation) error {
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	_, err := synthfs.RunWithOptions(context.Background(), r.filesystem, options, op)
	return err
}

func (r *Real) nextID(kind, path string) string {
	return fmt.Sprintf("%s_%s_%d", kind, filepath.Base(path), r.seq.Add(1))
}
