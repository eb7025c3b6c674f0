// Package organizer runs one organize pass over a source directory.
//
// A run is a single sequential pass through fixed phases:
//
//	INIT → PROVISIONING → SCANNING → PROCESSING(file_i) → REPORTING → DONE
//
// INIT validates the source directory and takes the run lock. PROVISIONING
// creates every taxonomy location. SCANNING lists the direct children of the
// source that are regular files, sorted by name. PROCESSING classifies each
// file and moves it, isolating failures to that file. REPORTING hands the
// finished statistics to the Reporter.
//
// Failures before PROCESSING are fatal and leave no report behind. Failures
// during PROCESSING are counted and the run continues, so in execute mode
// every scanned file is either moved or counted as an error.
//
// Dry-run follows the same path with a simulated mover. It records the
// unresolved destination of each file and never resolves collisions.
package organizer
