package classifier

import (
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/types"
)

// Classifier routes file names through a taxonomy
type Classifier struct {
	tax *taxonomy.Taxonomy
}

// New creates a classifier for tax
func New(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{tax: tax}
}

// Classify returns the route for filename. It is total: names without a
// known extension get the fallback route.
func (c *Classifier) Classify(filename string) types.Route {
	return c.tax.Resolve(Extension(filename))
}

// Extension returns the lowercased classification extension of filename,
// including the leading dot, or "" when there is none.
func Extension(filename string) string {
	_, ext := paths.SplitName(filename)
	if ext == "." {
		return ""
	}
	return taxonomy.NormalizeExtension(ext)
}
