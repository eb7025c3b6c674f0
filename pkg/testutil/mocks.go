package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockMover is a testify mock of mover.Mover
type MockMover struct {
	mock.Mock
}

func (m *MockMover) Mode() types.Mode {
	args := m.Called()
	return args.Get(0).(types.Mode)
}

func (m *MockMover) EnsureDir(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockMover) Move(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}

// ErrorFS wraps a types.FS and fails selected operations on selected paths
type ErrorFS struct {
	types.FS

	mu     sync.Mutex
	errors map[string]map[string]error
}

// NewErrorFS wraps base
func NewErrorFS(base types.FS) *ErrorFS {
	return &ErrorFS{FS: base, errors: make(map[string]map[string]error)}
}

// FailOn makes op ("Stat", "Lstat", "ReadDir", ...) on path return err
func (e *ErrorFS) FailOn(op, path string, err error) *ErrorFS {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.errors[op] == nil {
		e.errors[op] = make(map[string]error)
	}
	e.errors[op][path] = err
	return e
}

func (e *ErrorFS) injected(op, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors[op][path]
}

func (e *ErrorFS) Stat(name string) (fs.FileInfo, error) {
	if err := e.injected("Stat", name); err != nil {
		return nil, err
	}
	return e.FS.Stat(name)
}

func (e *ErrorFS) Lstat(name string) (fs.FileInfo, error) {
	if err := e.injected("Lstat", name); err != nil {
		return nil, err
	}
	return e.FS.Lstat(name)
}

func (e *ErrorFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := e.injected("ReadDir", name); err != nil {
		return nil, err
	}
	return e.FS.ReadDir(name)
}
