package types

import "strings"

// FallbackCategory is the implicit category for files no taxonomy entry matches.
// It never has a subcategory.
const FallbackCategory = "Otros"

// Route is the two-level destination a file is classified into.
// An empty Subcategory means the file goes directly under Category.
type Route struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}

// FallbackRoute returns the route used for unrecognized extensions
func FallbackRoute() Route {
	return Route{Category: FallbackCategory}
}

// HasSubcategory reports whether the route is two levels deep
func (r Route) HasSubcategory() bool {
	return r.Subcategory != ""
}

// IsFallback reports whether this is the uncategorized route
func (r Route) IsFallback() bool {
	return r.Category == FallbackCategory && r.Subcategory == ""
}

// Key returns the statistics key for the route: "Categoria" or
// "Categoria/Subcategoria". Downstream consumers parse this format.
func (r Route) Key() string {
	if r.Subcategory == "" {
		return r.Category
	}
	return r.Category + "/" + r.Subcategory
}

// String implements fmt.Stringer
func (r Route) String() string {
	return r.Key()
}

// ParseRouteKey is the inverse of Route.Key
func ParseRouteKey(key string) Route {
	category, subcategory, _ := strings.Cut(key, "/")
	return Route{Category: category, Subcategory: subcategory}
}
