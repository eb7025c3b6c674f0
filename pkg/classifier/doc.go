// Package classifier maps file names to taxonomy routes.
//
// Classification looks only at the final extension of the name, compared
// case-insensitively. Content, size and timestamps are ignored, and hidden
// files without a further dot have no extension and land in the fallback.
package classifier
