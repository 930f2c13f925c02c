package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/controlplane-com/log-index-templates/pkg/catalog"
	"github.com/controlplane-com/log-index-templates/pkg/schema"
	"github.com/controlplane-com/log-index-templates/pkg/template"
)

// Generator writes index templates below an output root, one directory per variant
type Generator struct {
	root     string
	variants []template.Variant
}

// Result lists the files written by a run
type Result struct {
	Categories int
	Files      []string
}

// New creates a Generator. The variant directories must already exist
// under root; the generator never creates them.
func New(root string, variants []template.Variant) *Generator {
	return &Generator{root: root, variants: variants}
}

// Path returns the output path of a template for a variant
func (g *Generator) Path(v template.Variant, name string) string {
	return filepath.Join(g.root, v.Dir, name+".json")
}

// Render builds and encodes the template for every variant, in variant order
func (g *Generator) Render(spec *template.Spec) ([][]byte, error) {
	out := make([][]byte, 0, len(g.variants))
	for _, v := range g.variants {
		data, err := template.Marshal(template.Build(spec, v))
		if err != nil {
			return nil, fmt.Errorf("template %s (%s): %w", spec.Name, v.Name, err)
		}
		out = append(out, data)
	}
	return out, nil
}

// BuildTemplate merges the field layers and writes <name>.json into each
// variant directory.
func (g *Generator) BuildTemplate(name string, patterns []string, layers ...schema.Table) ([]string, error) {
	spec, err := template.NewSpec(name, patterns, layers...)
	if err != nil {
		return nil, err
	}

	rendered, err := g.Render(spec)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(g.variants))
	for i, v := range g.variants {
		path := g.Path(v, name)
		if err := os.WriteFile(path, rendered[i], 0644); err != nil {
			return paths, fmt.Errorf("failed to write template %s: %w", path, err)
		}
		slog.Debug("wrote template", "template", name, "variant", v.Name, "path", path)
		paths = append(paths, path)
	}

	return paths, nil
}

// Preflight verifies that every variant directory exists
func (g *Generator) Preflight() error {
	for _, v := range g.variants {
		dir := filepath.Join(g.root, v.Dir)
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("output directory %s does not exist", dir)
		}
		if err != nil {
			return fmt.Errorf("failed to stat output directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output path %s is not a directory", dir)
		}
	}
	return nil
}

// Run writes the templates for every category in order, stopping at the first error
func (g *Generator) Run(categories []catalog.Category) (*Result, error) {
	if err := g.Preflight(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, cat := range categories {
		layers, err := cat.Layers()
		if err != nil {
			return result, fmt.Errorf("category %s: %w", cat.Name, err)
		}

		paths, err := g.BuildTemplate(cat.Name, cat.Patterns, layers...)
		result.Files = append(result.Files, paths...)
		if err != nil {
			return result, err
		}
		result.Categories++

		slog.Info("generated template", "template", cat.Name, "patterns", cat.Patterns, "overlays", cat.Overlays)
	}

	return result, nil
}

// Check renders every category in memory and returns the paths of files
// that are missing or differ from what Run would write.
func (g *Generator) Check(categories []catalog.Category) ([]string, error) {
	var stale []string
	for _, cat := range categories {
		layers, err := cat.Layers()
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cat.Name, err)
		}

		spec, err := template.NewSpec(cat.Name, cat.Patterns, layers...)
		if err != nil {
			return nil, err
		}

		rendered, err := g.Render(spec)
		if err != nil {
			return nil, err
		}

		for i, v := range g.variants {
			path := g.Path(v, cat.Name)
			current, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("template missing", "path", path)
				stale = append(stale, path)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read template %s: %w", path, err)
			}
			if !bytes.Equal(current, rendered[i]) {
				slog.Debug("template out of date", "path", path)
				stale = append(stale, path)
			}
		}
	}
	return stale, nil
}
