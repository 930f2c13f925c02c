package template

import "github.com/controlplane-com/log-index-templates/pkg/schema"

// Document is an index template as accepted by the template API.
// Field order here is the key order of the emitted JSON.
type Document struct {
	IndexPatterns []string          `json:"index_patterns"`
	Settings      Settings          `json:"settings"`
	Mappings      Mappings          `json:"mappings"`
	Aliases       map[string]any    `json:"aliases"`
}

// Settings wraps the index-level settings block
type Settings struct {
	Index IndexSettings `json:"index"`
}

// IndexSettings holds the per-index settings shared by every category
type IndexSettings struct {
	Codec            string   `json:"codec"`
	Routing          Routing  `json:"routing"`
	RefreshInterval  string   `json:"refresh_interval"`
	NumberOfShards   string   `json:"number_of_shards"`
	Translog         Translog `json:"translog"`
	NumberOfReplicas string   `json:"number_of_replicas"`
}

type Routing struct {
	Allocation Allocation `json:"allocation"`
}

type Allocation struct {
	Exclude map[string]string `json:"exclude"`
}

type Translog struct {
	SyncInterval string `json:"sync_interval"`
	Durability   string `json:"durability"`
}

// Mappings is either nested under a mapping type (Doc) or typeless
// (Properties directly). Exactly one of the two is set.
type Mappings struct {
	Doc        *TypeMapping `json:"_doc,omitempty"`
	Properties schema.Table `json:"properties,omitempty"`
}

// TypeMapping is the body of a mapping type
type TypeMapping struct {
	Properties schema.Table `json:"properties"`
}

// Spec is everything that varies between categories
type Spec struct {
	Name          string
	IndexPatterns []string
	Properties    schema.Table
}

// Variant is one structural flavour of the emitted templates
type Variant struct {
	Name   string
	Dir    string // output directory, relative to the output root
	Typed  bool   // nest mappings under the _doc type
	Shards int
}

// Settings shared by every template
const (
	DefaultCodec           = "best_compression"
	DefaultRefreshInterval = "10s"
	DefaultReplicas        = 0
	DefaultSyncInterval    = "10s"
	DefaultDurability      = "async"
	DefaultShards          = 6
	ShimShards             = 3

	// ExcludedDiskType keeps template indices off nodes tagged disktype=hdd
	ExcludedDiskType = "hdd"
)
