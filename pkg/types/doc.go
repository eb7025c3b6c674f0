// Package types defines the core types and interfaces shared across ordena.
// This includes the Route a file is classified into, the per-run
// RunStatistics aggregate, and the FS interface used for filesystem access.
package types
