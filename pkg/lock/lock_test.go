// pkg/lock/lock_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test advisory run lock acquisition and contention

package lock_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", "abc.lock")

	l, err := lock.Acquire(path, "/src")
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())
	assert.FileExists(t, path)

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())

	again, err := lock.Acquire(path, "/src")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestAcquire_Contention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.lock")

	held, err := lock.Acquire(path, "/src")
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	_, err = lock.Acquire(path, "/src")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceLocked))
	assert.Equal(t, "/src", errors.GetErrorDetails(err)["source"])
}

func TestRelease_Nil(t *testing.T) {
	var l *lock.RunLock
	assert.NoError(t, l.Release())
}
