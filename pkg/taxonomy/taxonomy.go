package taxonomy

import (
	"strings"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/types"
)

// Entry declares the extensions routed to one (category, subcategory) pair.
// An empty Subcategory routes files directly into the category directory.
type Entry struct {
	Category    string
	Subcategory string
	Extensions  []string
}

// Route returns the destination this entry routes to
func (e Entry) Route() types.Route {
	return types.Route{Category: e.Category, Subcategory: e.Subcategory}
}

// record is the validated, normalized form of an Entry
type record struct {
	route      types.Route
	extensions map[string]struct{}
	ordered    []string
}

// Taxonomy resolves extensions to routes
type Taxonomy struct {
	records []record
}

// NormalizeExtension lowercases ext and ensures a single leading dot.
// An empty input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// New validates entries and builds a Taxonomy preserving their order
func New(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{records: make([]record, 0, len(entries))}
	owners := make(map[string]types.Route)
	seen := make(map[string]struct{})

	for i, entry := range entries {
		category := strings.TrimSpace(entry.Category)
		subcategory := strings.TrimSpace(entry.Subcategory)

		if category == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "taxonomy entry %d has an empty category", i).
				WithDetail("index", i)
		}
		if category == types.FallbackCategory {
			return nil, errors.Newf(errors.ErrConfigValid,
				"category %q is reserved for unrecognized files and cannot be declared", types.FallbackCategory)
		}
		if strings.ContainsAny(category, `/\`) || strings.ContainsAny(subcategory, `/\`) {
			return nil, errors.Newf(errors.ErrConfigValid,
				"taxonomy names cannot contain path separators: %q/%q", category, subcategory)
		}

		route := types.Route{Category: category, Subcategory: subcategory}
		if _, dup := seen[route.Key()]; dup {
			return nil, errors.Newf(errors.ErrConfigValid, "location %q is declared twice", route.Key()).
				WithDetail("location", route.Key())
		}
		seen[route.Key()] = struct{}{}

		rec := record{route: route, extensions: make(map[string]struct{}, len(entry.Extensions))}
		for _, raw := range entry.Extensions {
			ext := NormalizeExtension(raw)
			if ext == "" || ext == "." {
				return nil, errors.Newf(errors.ErrConfigValid, "location %q declares an empty extension", route.Key())
			}
			if owner, taken := owners[ext]; taken {
				if owner == route {
					continue
				}
				return nil, errors.Newf(errors.ErrTaxonomyOverlap,
					"extension %q is declared by both %q and %q", ext, owner.Key(), route.Key()).
					WithDetail("extension", ext).
					WithDetail("first", owner.Key()).
					WithDetail("second", route.Key())
			}
			owners[ext] = route
			rec.extensions[ext] = struct{}{}
			rec.ordered = append(rec.ordered, ext)
		}
		t.records = append(t.records, rec)
	}

	return t, nil
}

// MustNew is like New but panics on invalid entries. Intended for tests and
// package-level fixtures.
func MustNew(entries []Entry) *Taxonomy {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the route for an extension. Lookup walks the records in
// declared order; unmatched extensions get the fallback route.
func (t *Taxonomy) Resolve(extension string) types.Route {
	ext := NormalizeExtension(extension)
	if ext == "" || ext == "." {
		return types.FallbackRoute()
	}
	for _, rec := range t.records {
		if _, ok := rec.extensions[ext]; ok {
			return rec.route
		}
	}
	return types.FallbackRoute()
}

// Locations returns every declared route in order, followed by the fallback
func (t *Taxonomy) Locations() []types.Route {
	routes := make([]types.Route, 0, len(t.records)+1)
	for _, rec := range t.records {
		routes = append(routes, rec.route)
	}
	return append(routes, types.FallbackRoute())
}

// Entries returns a copy of the normalized entries in declared order
func (t *Taxonomy) Entries() []Entry {
	entries := make([]Entry, 0, len(t.records))
	for _, rec := range t.records {
		exts := make([]string, len(rec.ordered))
		copy(exts, rec.ordered)
		entries = append(entries, Entry{
			Category:    rec.route.Category,
			Subcategory: rec.route.Subcategory,
			Extensions:  exts,
		})
	}
	return entries
}

// Categories returns the distinct declared categories in first-seen order
func (t *Taxonomy) Categories() []string {
	var categories []string
	seen := make(map[string]struct{})
	for _, rec := range t.records {
		if _, ok := seen[rec.route.Category]; ok {
			continue
		}
		seen[rec.route.Category] = struct{}{}
		categories = append(categories, rec.route.Category)
	}
	return categories
}
