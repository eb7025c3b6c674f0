// pkg/mover/mover_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test simulated and real mutation strategies

package mover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/mover"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsStrategy(t *testing.T) {
	assert.Equal(t, types.ModeDryRun, mover.New(types.ModeDryRun).Mode())
	assert.Equal(t, types.ModeExecute, mover.New(types.ModeExecute).Mode())
	assert.IsType(t, &mover.Simulated{}, mover.New(types.ModeDryRun))
	assert.IsType(t, &mover.Real{}, mover.New(types.ModeExecute))
}

func TestSimulated_TouchesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0644))

	m := mover.NewSimulated()
	dir := filepath.Join(root, "Documentos", "PDFs")
	require.NoError(t, m.EnsureDir(dir))
	require.NoError(t, m.Move(src, filepath.Join(dir, "a.pdf")))

	assert.NoDirExists(t, dir)
	assert.FileExists(t, src)
	assert.Equal(t, []string{dir}, m.Dirs())
	assert.Equal(t, []mover.PlannedMove{{Source: src, Destination: filepath.Join(dir, "a.pdf")}}, m.Moves())
}

func TestReal_EnsureDir(t *testing.T) {
	root := t.TempDir()
	m := mover.NewReal()

	parent := filepath.Join(root, "Imagenes")
	child := filepath.Join(parent, "Fotos")

	require.NoError(t, m.EnsureDir(parent))
	require.NoError(t, m.EnsureDir(child))
	assert.DirExists(t, child)

	// idempotent, and never touches content
	marker := filepath.Join(child, "keep.jpg")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))
	require.NoError(t, m.EnsureDir(child))
	assert.FileExists(t, marker)
}

func TestReal_EnsureDirOverFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Otros")
	require.NoError(t, os.WriteFile(path, []byte("not a dir"), 0644))

	err := mover.NewReal().EnsureDir(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
}

func TestReal_Move(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "song.mp3")
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0600))
	dstDir := filepath.Join(root, "Multimedia", "Audio")
	require.NoError(t, os.MkdirAll(dstDir, 0755))
	dst := filepath.Join(dstDir, "song.mp3")

	require.NoError(t, mover.NewReal().Move(src, dst))

	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))
}

func TestReal_MoveNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	dst := filepath.Join(root, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

	err := mover.NewReal().Move(src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileMove))

	data, _ := os.ReadFile(dst)
	assert.Equal(t, "old", string(data))
	assert.FileExists(t, src)
}

func TestReal_MoveMissingSource(t *testing.T) {
	root := t.TempDir()
	err := mover.NewReal().Move(filepath.Join(root, "gone.txt"), filepath.Join(root, "x.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileMove))
}
