package config

import (
	"strings"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective ordena configuration
type Config struct {
	Reports    Reports    `koanf:"reports" toml:"reports" yaml:"reports"`
	Collision  Collision  `koanf:"collision" toml:"collision" yaml:"collision"`
	History    History    `koanf:"history" toml:"history" yaml:"history"`
	Lock       Lock       `koanf:"lock" toml:"lock" yaml:"lock"`
	Categories []Category `koanf:"categories" toml:"categories" yaml:"categories"`
}

// Reports controls where run artifacts are written
type Reports struct {
	Dir    string `koanf:"dir" toml:"dir" yaml:"dir"`
	RunLog bool   `koanf:"run_log" toml:"run_log" yaml:"run_log"`
}

// Collision bounds destination name disambiguation
type Collision struct {
	MaxAttempts int `koanf:"max_attempts" toml:"max_attempts" yaml:"max_attempts"`
}

// History toggles the SQLite run index
type History struct {
	Enabled bool `koanf:"enabled" toml:"enabled" yaml:"enabled"`
}

// Lock toggles the per-source advisory run lock
type Lock struct {
	Enabled bool `koanf:"enabled" toml:"enabled" yaml:"enabled"`
}

// Category is a top-level taxonomy node. Extensions listed directly on the
// category route files into the category directory itself.
type Category struct {
	Name          string        `koanf:"name" toml:"name" yaml:"name"`
	Extensions    []string      `koanf:"extensions" toml:"extensions,omitempty" yaml:"extensions,omitempty"`
	Subcategories []Subcategory `koanf:"subcategories" toml:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// Subcategory is a second-level taxonomy node
type Subcategory struct {
	Name       string   `koanf:"name" toml:"name" yaml:"name"`
	Extensions []string `koanf:"extensions" toml:"extensions" yaml:"extensions"`
}

// Entries flattens the categories into taxonomy entries in declared order
func (c *Config) Entries() []taxonomy.Entry {
	var entries []taxonomy.Entry
	for _, cat := range c.Categories {
		if len(cat.Extensions) > 0 {
			entries = append(entries, taxonomy.Entry{
				Category:   cat.Name,
				Extensions: cat.Extensions,
			})
		}
		for _, sub := range cat.Subcategories {
			entries = append(entries, taxonomy.Entry{
				Category:    cat.Name,
				Subcategory: sub.Name,
				Extensions:  sub.Extensions,
			})
		}
	}
	return entries
}

// BuildTaxonomy validates the categories and builds the taxonomy
func (c *Config) BuildTaxonomy() (*taxonomy.Taxonomy, error) {
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, errors.New(errors.ErrConfigValid, "category with empty name")
		}
		for _, sub := range cat.Subcategories {
			if strings.TrimSpace(sub.Name) == "" {
				return nil, errors.Newf(errors.ErrConfigValid,
					"category %q has a subcategory with empty name", cat.Name).
					WithDetail("category", cat.Name)
			}
		}
	}
	return taxonomy.New(c.Entries())
}

// Validate checks settings the organizer relies on, including the taxonomy
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Reports.Dir) == "" {
		return errors.New(errors.ErrConfigValid, "reports.dir must not be empty")
	}
	if c.Collision.MaxAttempts <= 0 {
		return errors.Newf(errors.ErrConfigValid,
			"collision.max_attempts must be positive, got %d", c.Collision.MaxAttempts).
			WithDetail("max_attempts", c.Collision.MaxAttempts)
	}
	_, err := c.BuildTaxonomy()
	return err
}

// ToTOML renders the configuration as TOML
func (c *Config) ToTOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
