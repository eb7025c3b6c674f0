// Package taxonomy holds the static category → subcategory → extensions
// mapping used to route files.
//
// A Taxonomy is an ordered list of records checked in declared order, so the
// first declared match wins. Construction validates that no extension is
// claimed by two records; a valid taxonomy therefore never depends on that
// tie-break. Files matching no record fall back to the implicit "Otros"
// category, which is never declared and has no subcategory.
//
// A Taxonomy is immutable after New returns and is safe to share.
package taxonomy
