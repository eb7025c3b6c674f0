package mover

import (
	"sync"

	"github.com/arthur-debert/ordena/pkg/types"
)

// PlannedMove is a move a Simulated mover accepted
type PlannedMove struct {
	Source      string
	Destination string
}

// Simulated records requests without touching the filesystem
type Simulated struct {
	mu    sync.Mutex
	dirs  []string
	moves []PlannedMove
}

// NewSimulated creates a dry-run mover
func NewSimulated() *Simulated {
	return &Simulated{}
}

// Mode implements Mover
func (s *Simulated) Mode() types.Mode {
	return types.ModeDryRun
}

// EnsureDir implements Mover
func (s *Simulated) EnsureDir(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs = append(s.dirs, path)
	return nil
}

// Move implements Mover
func (s *Simulated) Move(src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, PlannedMove{Source: src, Destination: dst})
	return nil
}

// Dirs returns the directories requested so far
func (s *Simulated) Dirs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dirs...)
}

// Moves returns the moves requested so far
func (s *Simulated) Moves() []PlannedMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PlannedMove(nil), s.moves...)
}
