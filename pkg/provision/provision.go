// Package provision creates the category directory tree before files move.
package provision

import (
	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/mover"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/rs/zerolog"
)

// Provisioner ensures every taxonomy location exists under the source root.
// All requests go through the Mover, so dry-run provisioning is a no-op.
type Provisioner struct {
	paths  paths.Paths
	mover  mover.Mover
	logger zerolog.Logger
	done   map[string]struct{}
}

// New creates a provisioner for the given root layout
func New(p paths.Paths, m mover.Mover) *Provisioner {
	return &Provisioner{
		paths:  p,
		mover:  m,
		logger: logging.GetLogger("provision"),
		done:   make(map[string]struct{}),
	}
}

// Ensure creates the directory for route, parent category first
func (p *Provisioner) Ensure(route types.Route) error {
	if err := p.ensureDir(p.paths.CategoryDir(route.Category)); err != nil {
		return err
	}
	if route.HasSubcategory() {
		return p.ensureDir(p.paths.LocationDir(route))
	}
	return nil
}

// EnsureAll provisions every location of tax, including the fallback.
// It stops at the first failure.
func (p *Provisioner) EnsureAll(tax *taxonomy.Taxonomy) error {
	locations := tax.Locations()
	for _, route := range locations {
		if err := p.Ensure(route); err != nil {
			return err
		}
	}
	p.logger.Debug().
		Int("locations", len(locations)).
		Str("mode", string(p.mover.Mode())).
		Msg("Provisioned category tree")
	return nil
}

func (p *Provisioner) ensureDir(dir string) error {
	if _, ok := p.done[dir]; ok {
		return nil
	}
	if err := p.mover.EnsureDir(dir); err != nil {
		if errors.IsErrorCode(err, errors.ErrDirCreate) {
			return err
		}
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to provision %s", dir).
			WithDetail("path", dir)
	}
	p.done[dir] = struct{}{}
	return nil
}
