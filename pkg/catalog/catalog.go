package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/controlplane-com/log-index-templates/pkg/schema"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Category is one log category and the index patterns its template matches
type Category struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Overlays []string `yaml:"overlays,omitempty"`
}

// Catalog is the ordered list of categories to generate templates for
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and parses a YAML catalog from the given path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks that the catalog is usable.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog error: no categories defined")
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("catalog error: category %d has empty name", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("catalog error: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true

		if len(cat.Patterns) == 0 {
			return fmt.Errorf("catalog error: category %q has no index patterns", cat.Name)
		}
		for _, p := range cat.Patterns {
			if p == "" {
				return fmt.Errorf("catalog error: category %q has an empty index pattern", cat.Name)
			}
		}

		for _, o := range cat.Overlays {
			if _, err := schema.Overlay(o); err != nil {
				return fmt.Errorf("catalog error: category %q: %w", cat.Name, err)
			}
		}
	}

	return nil
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Layers returns the field tables for the category, Common first and then
// each overlay in order.
func (cat Category) Layers() ([]schema.Table, error) {
	layers := []schema.Table{schema.Common}
	for _, name := range cat.Overlays {
		t, err := schema.Overlay(name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, t)
	}
	return layers, nil
}
