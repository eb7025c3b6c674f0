// cmd/ordena/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs), cobra
// PURPOSE: Test the CLI commands end to end

package ordena

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func reportFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "reporte_jerarquico_*.json"))
	require.NoError(t, err)
	return matches
}

func TestOrganize_Execute(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFiles(map[string]string{
		"photo.JPG":   "jpg",
		"report.pdf":  "pdf",
		"notes.txt":   "txt",
		"unknown.xyz": "xyz",
	})

	out, err := execute(t, "organize", env.SourceRoot, "--reports-dir", env.ReportsDir)
	require.NoError(t, err)

	assert.Equal(t, "jpg", env.ReadFile("Imagenes", "Fotos", "photo.JPG"))
	assert.Equal(t, "xyz", env.ReadFile("Otros", "unknown.xyz"))
	assert.Contains(t, out, "Archivos movidos: 4")
	assert.Contains(t, out, "Errores: 0")
	assert.Contains(t, out, "Reporte guardado:")
	assert.Contains(t, out, "photo.JPG → Imagenes/Fotos")
	assert.Len(t, reportFiles(t, env.ReportsDir), 1)
	assert.NotEmpty(t, env.Snapshot())
}

func TestOrganize_DryRunWithCarpetaFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFiles(map[string]string{"photo.jpg": "jpg", "song.mp3": "mp3"})
	before := env.Snapshot()

	out, err := execute(t, "organize", "-c", env.SourceRoot, "-d", "--reports-dir", env.ReportsDir)
	require.NoError(t, err)

	assert.Equal(t, before, env.Snapshot())
	assert.Contains(t, out, "[DRY-RUN]")
	assert.Contains(t, out, "Archivo")
	assert.Contains(t, out, "Imagenes/Fotos/")
	assert.NotContains(t, out, "Archivos movidos")

	reports := reportFiles(t, env.ReportsDir)
	require.Len(t, reports, 1)
	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"modo": "dry-run"`)
}

func TestOrganize_MissingSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	_, err := execute(t, "organize", env.Path("nope"), "--reports-dir", env.ReportsDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
	assert.Empty(t, reportFiles(t, env.ReportsDir))
	assert.NoFileExists(t, filepath.Join(env.StateDir, "history.db"), "an aborted run indexes nothing")
}

func TestOrganize_LogsToStateDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	_, err := execute(t, "organize", env.SourceRoot, "--dry-run", "--reports-dir", env.ReportsDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.StateDir, "ordena.log"))
	assert.FileExists(t, filepath.Join(env.StateDir, "history.db"))
}

func TestOrganize_SourceArguments(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	_, err := execute(t, "organize")
	assert.EqualError(t, err, MsgErrNoSource)

	_, err = execute(t, "organize", env.SourceRoot, "--carpeta", env.SourceRoot)
	assert.EqualError(t, err, MsgErrTwoSources)
}

func TestHistory_ListsRuns(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistory)

	env.WithFiles(map[string]string{"a.pdf": "x"})
	_, err = execute(t, "organize", env.SourceRoot, "--reports-dir", env.ReportsDir)
	require.NoError(t, err)

	out, err = execute(t, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "ejecucion")
	assert.Contains(t, out, env.SourceRoot)
}

func TestHistory_Disabled(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, "config.toml"),
		[]byte("[history]\nenabled = false\n"), 0644))

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, MsgHistoryDisabled)
}

func TestCategories_Formats(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Imagenes/Fotos")
	assert.Contains(t, out, ".jpg")
	assert.Contains(t, out, "Otros")

	out, err = execute(t, "categories", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Documentos")
	assert.Contains(t, out, "- **PDFs**: `.pdf`")

	out, err = execute(t, "categories", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "categories:")
	assert.Contains(t, out, "name: Multimedia")

	_, err = execute(t, "categories", "--format", "xml")
	assert.Error(t, err)
}

func TestCategories_UserTaxonomy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	cfgPath := filepath.Join(env.ConfigDir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
categories:
  - name: Code
    subcategories:
      - name: Go
        extensions: [".go"]
`), 0644))

	out, err := execute(t, "--config", cfgPath, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Code/Go")
	assert.NotContains(t, out, "Imagenes")
}

func TestConfig_PrintsEffectiveConfig(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("ORDENA_COLLISION_MAX_ATTEMPTS", "7")

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[reports]")
	assert.Contains(t, out, "max_attempts = 7")
}

func TestVersionAndCompletion(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ordena version "))

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "ordena")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestRoot_NoCommand(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t)
	assert.Error(t, err)
	assert.Contains(t, out, "organize")
}

func TestHelpTopics(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "taxonomy")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "help", "collisions")
	require.NoError(t, err)
	assert.Contains(t, out, "informe_20240115_093000.pdf")

	out, err = execute(t, "help", "organize")
	require.NoError(t, err)
	assert.Contains(t, out, "--carpeta")
}

func TestHelpText_SingleLanguage(t *testing.T) {
	root := NewRootCmd()
	cmds := append([]*cobra.Command{root}, root.Commands()...)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Short, c.Name())
		for _, r := range c.Short + c.Long {
			if r > unicode.MaxASCII {
				t.Errorf("%s help text is not plain English: %q", c.Name(), c.Short)
				break
			}
		}
	}
}
