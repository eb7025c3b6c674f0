package history

import (
	"context"
	"sync"
)

// Lazy is a recorder that opens the store at path on the first Record, so
// runs that abort before reporting leave no database behind.
type Lazy struct {
	path string

	mu      sync.Mutex
	store   *Store
	openErr error
}

// NewLazy returns a recorder for the database at path without touching disk
func NewLazy(path string) *Lazy {
	return &Lazy{path: path}
}

// Record opens the store if needed and indexes e. A failed open is remembered
// and returned by every later call.
func (l *Lazy) Record(ctx context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil && l.openErr == nil {
		l.store, l.openErr = Open(l.path)
	}
	if l.openErr != nil {
		return l.openErr
	}
	return l.store.Record(ctx, e)
}

// Close closes the store if it was ever opened
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		return nil
	}
	err := l.store.Close()
	l.store = nil
	return err
}
