// Package mover performs (or simulates) the filesystem mutations of a run.
//
// Two strategies implement Mover. Simulated accepts every request and touches
// nothing, which is what dry-run uses. Real executes directory creation and
// file moves as synthfs operations against the OS filesystem. Because both
// strategies sit behind one interface, the organizer runs identical logic in
// both modes and only this seam differs.
package mover
