// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/ordena/pkg/filesystem"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a source directory to organize plus isolated
// reports, state and config directories
type TestEnvironment struct {
	SourceRoot string
	ReportsDir string
	StateDir   string
	ConfigDir  string

	FS    types.FS
	Paths paths.Paths

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. The ordena state and
// config directories are redirected into the environment for the duration
// of the test.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.SourceRoot = "/virtual/descargas"
		env.ReportsDir = "/virtual/logs"
		env.StateDir = "/virtual/state"
		env.ConfigDir = "/virtual/config"
		env.FS = filesystem.NewMemory()
		if err := env.FS.MkdirAll(env.SourceRoot, 0755); err != nil {
			t.Fatalf("Failed to create source root: %v", err)
		}
	case EnvIsolated:
		tempDir := t.TempDir()
		env.SourceRoot = filepath.Join(tempDir, "descargas")
		env.ReportsDir = filepath.Join(tempDir, "logs")
		env.StateDir = filepath.Join(tempDir, "state")
		env.ConfigDir = filepath.Join(tempDir, "config")
		env.FS = filesystem.NewOS()
		for _, dir := range []string{env.SourceRoot, env.StateDir, env.ConfigDir} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create %s: %v", dir, err)
			}
		}
	}

	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)

	p, err := paths.New(env.SourceRoot, env.ReportsDir)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// WithFiles creates flat files in the source root
func (env *TestEnvironment) WithFiles(files map[string]string) *TestEnvironment {
	env.t.Helper()
	tree := FileTree{}
	for name, content := range files {
		tree[name] = content
	}
	createFileTree(env.t, env.FS, env.SourceRoot, tree)
	return env
}

// WithFileTree creates a complete file tree structure under the source root
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.SourceRoot, tree)
	return env
}

// Path joins elements onto the source root
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.SourceRoot}, elem...)...)
}

// ReadFile returns the content of a file relative to the source root
func (env *TestEnvironment) ReadFile(elem ...string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(elem...))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", env.Path(elem...), err)
	}
	return string(data)
}

// Exists reports whether a path relative to the source root exists
func (env *TestEnvironment) Exists(elem ...string) bool {
	_, err := env.FS.Stat(env.Path(elem...))
	return err == nil
}

// Snapshot lists every path under the source root, relative and sorted.
// Directories end with a slash.
func (env *TestEnvironment) Snapshot() []string {
	env.t.Helper()
	var out []string
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := env.FS.ReadDir(dir)
		if err != nil {
			env.t.Fatalf("Failed to read %s: %v", dir, err)
		}
		for _, e := range entries {
			name := filepath.Join(rel, e.Name())
			if e.IsDir() {
				out = append(out, name+"/")
				walk(filepath.Join(dir, e.Name()), name)
				continue
			}
			out = append(out, name)
		}
	}
	walk(env.SourceRoot, "")
	sort.Strings(out)
	return out
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
