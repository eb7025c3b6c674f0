// pkg/provision/provision_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs), mock mover
// PURPOSE: Test category tree provisioning in both run modes

package provision_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/mover"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/provision"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/testutil"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleTaxonomy() *taxonomy.Taxonomy {
	return taxonomy.MustNew([]taxonomy.Entry{
		{Category: "Imagenes", Subcategory: "Fotos", Extensions: []string{".jpg"}},
		{Category: "Imagenes", Subcategory: "Graficos", Extensions: []string{".png"}},
		{Category: "Musica", Extensions: []string{".mp3"}},
	})
}

func newPaths(t *testing.T, root string) paths.Paths {
	t.Helper()
	p, err := paths.New(root, filepath.Join(t.TempDir(), "logs"))
	require.NoError(t, err)
	return p
}

func TestEnsureAll_Execute(t *testing.T) {
	root := t.TempDir()
	prov := provision.New(newPaths(t, root), mover.NewReal())

	require.NoError(t, prov.EnsureAll(sampleTaxonomy()))

	assert.DirExists(t, filepath.Join(root, "Imagenes", "Fotos"))
	assert.DirExists(t, filepath.Join(root, "Imagenes", "Graficos"))
	assert.DirExists(t, filepath.Join(root, "Musica"))
	assert.DirExists(t, filepath.Join(root, types.FallbackCategory))
}

func TestEnsureAll_Idempotent(t *testing.T) {
	root := t.TempDir()
	p := newPaths(t, root)

	require.NoError(t, provision.New(p, mover.NewReal()).EnsureAll(sampleTaxonomy()))
	existing := filepath.Join(root, "Imagenes", "Fotos", "old.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	require.NoError(t, provision.New(p, mover.NewReal()).EnsureAll(sampleTaxonomy()))
	assert.FileExists(t, existing)
}

func TestEnsureAll_DryRunCreatesNothing(t *testing.T) {
	root := t.TempDir()
	sim := mover.NewSimulated()

	require.NoError(t, provision.New(newPaths(t, root), sim).EnsureAll(sampleTaxonomy()))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// parents are requested before children, each once
	assert.Equal(t, []string{
		filepath.Join(root, "Imagenes"),
		filepath.Join(root, "Imagenes", "Fotos"),
		filepath.Join(root, "Imagenes", "Graficos"),
		filepath.Join(root, "Musica"),
		filepath.Join(root, "Otros"),
	}, sim.Dirs())
}

func TestEnsureAll_Failure(t *testing.T) {
	root := t.TempDir()
	m := &testutil.MockMover{}
	m.On("Mode").Return(types.ModeExecute).Maybe()
	m.On("EnsureDir", mock.Anything).Return(stderrors.New("read-only filesystem"))

	err := provision.New(newPaths(t, root), m).EnsureAll(sampleTaxonomy())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	m.AssertNumberOfCalls(t, "EnsureDir", 1)
}
