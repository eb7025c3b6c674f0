// Package testutil provides utilities for testing ordena components.
//
// Key components:
//   - TestEnvironment: isolated source root, reports dir and state dir
//   - FileTree: declarative source directory setup
//   - MockMover: testify mock for injecting move and mkdir failures
//   - ErrorFS: types.FS wrapper failing chosen operations on chosen paths
//
// Usage guidelines:
//   - Classification, taxonomy and resolver tests use EnvMemoryOnly
//   - Organizer and mover tests use EnvIsolated since real moves go
//     through the OS filesystem
//   - All test data should be defined inline, not in external files
package testutil
