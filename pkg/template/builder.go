package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/controlplane-com/log-index-templates/pkg/schema"
)

// Variants returns the three template flavours in generation order:
// typed with _doc nesting, typeless, and typeless with fewer shards.
func Variants() []Variant {
	return []Variant{
		{Name: "legacy", Dir: "templates", Typed: true, Shards: DefaultShards},
		{Name: "typeless", Dir: "templates-nomt", Shards: DefaultShards},
		{Name: "typeless-shim", Dir: "templates-nomt-shim", Shards: ShimShards},
	}
}

// NewSpec merges the field layers (later layers win) into a template spec.
func NewSpec(name string, patterns []string, layers ...schema.Table) (*Spec, error) {
	if name == "" {
		return nil, fmt.Errorf("template name is empty")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("template %s: no index patterns", name)
	}

	properties := schema.Merge(layers...)
	if len(properties) == 0 {
		return nil, fmt.Errorf("template %s: no fields", name)
	}
	if err := properties.Validate(); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	return &Spec{
		Name:          name,
		IndexPatterns: append([]string(nil), patterns...),
		Properties:    properties,
	}, nil
}

// Build assembles the template document for one variant
func Build(spec *Spec, v Variant) *Document {
	doc := &Document{
		IndexPatterns: spec.IndexPatterns,
		Settings: Settings{
			Index: IndexSettings{
				Codec:            DefaultCodec,
				Routing:          Routing{Allocation: Allocation{Exclude: map[string]string{"disktype": ExcludedDiskType}}},
				RefreshInterval:  DefaultRefreshInterval,
				NumberOfShards:   strconv.Itoa(v.Shards),
				Translog:         Translog{SyncInterval: DefaultSyncInterval, Durability: DefaultDurability},
				NumberOfReplicas: strconv.Itoa(DefaultReplicas),
			},
		},
		Aliases: map[string]any{},
	}

	if v.Typed {
		doc.Mappings.Doc = &TypeMapping{Properties: spec.Properties}
	} else {
		doc.Mappings.Properties = spec.Properties
	}

	return doc
}

// Marshal encodes a document with two-space indentation. Map keys are
// sorted, so the output is stable across runs.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	// Encode terminates with a newline; the files are written without one
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal parses a previously emitted template
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &doc, nil
}

// Properties returns the field mapping regardless of nesting
func (d *Document) Properties() schema.Table {
	if d.Mappings.Doc != nil {
		return d.Mappings.Doc.Properties
	}
	return d.Mappings.Properties
}
