package testutil_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_MemoryOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFiles(map[string]string{"a.pdf": "pdf"}).
		WithFileTree(testutil.FileTree{"sub": testutil.FileTree{"b.txt": "txt"}})

	assert.Equal(t, "pdf", env.ReadFile("a.pdf"))
	assert.True(t, env.Exists("sub", "b.txt"))
	assert.Equal(t, []string{"a.pdf", "sub/", "sub/b.txt"}, env.Snapshot())
	assert.Equal(t, env.StateDir, os.Getenv(paths.EnvStateDir))
}

func TestTestEnvironment_Isolated(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFiles(map[string]string{"photo.jpg": "jpg"})

	data, err := os.ReadFile(env.Path("photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))
	assert.Equal(t, env.SourceRoot, env.Paths.SourceRoot())
	assert.Equal(t, env.ReportsDir, env.Paths.ReportsDir())
	assert.DirExists(t, env.StateDir)
}

func TestErrorFS(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFiles(map[string]string{"x.bin": "x"})

	efs := testutil.NewErrorFS(env.FS).FailOn("Lstat", env.Path("x.bin"), os.ErrPermission)

	_, err := efs.Lstat(env.Path("x.bin"))
	assert.ErrorIs(t, err, os.ErrPermission)
	_, err = efs.Stat(env.Path("x.bin"))
	assert.NoError(t, err)
}
