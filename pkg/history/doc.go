// Package history indexes finished runs in a SQLite database so past runs
// can be listed without parsing every report artifact.
//
// The index is a convenience. Report files in the reports directory remain
// the source of truth, and failures here never fail a run.
package history
