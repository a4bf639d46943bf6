// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the fixed intermediate record model shared by all
// conversion stages. Records are populated once at extraction time and are
// read-only from then on; downstream stages never touch loader internals.
package types

// Metadata holds document-level properties. All fields are optional and
// default to the empty string when the source document omits them.
type Metadata struct {
	// Title is the document title from the package core properties.
	Title string `json:"title" yaml:"title,omitempty"`

	// Creator is the document author.
	Creator string `json:"creator" yaml:"creator,omitempty"`

	// Company is the company name from the extended properties.
	Company string `json:"company" yaml:"company,omitempty"`
}

// IsEmpty reports whether no metadata field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.Creator == "" && m.Company == ""
}

// Shape is a flat, depth-tagged record for one diagram element. Pages hold
// shapes as a document-ordered arena (a parent always precedes its
// children); nesting is expressed through ParentID rather than owning
// pointers, so traversals never recurse over the source tree.
type Shape struct {
	// ID is unique within the page's flattened shape set. Shapes the
	// loader reports without an id get a synthetic sequential one.
	ID string `json:"id" yaml:"id"`

	// ParentID is the id of the enclosing shape, empty for top-level shapes.
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	// Depth is the 1-based nesting level (top-level shapes are depth 1).
	Depth int `json:"depth" yaml:"depth"`

	// Name is the shape's name as reported by the loader.
	Name string `json:"name" yaml:"name"`

	// Type is the master name when the shape references a master, or the
	// loader's raw shape type otherwise.
	Type string `json:"type" yaml:"type"`

	// Text is the shape's visible text, empty when unreadable or absent.
	Text string `json:"text" yaml:"text"`

	// HasImage reports an embedded picture on the shape or on an ancestor.
	HasImage bool `json:"has_image" yaml:"has_image"`
}

// Connector is an explicit directed link between two shapes on one page.
// Endpoint ids are not guaranteed to resolve; dangling references stay in
// the model and are skipped where they cannot be rendered.
type Connector struct {
	// FromID is the source shape id.
	FromID string `json:"from" yaml:"from"`

	// ToID is the target shape id.
	ToID string `json:"to" yaml:"to"`

	// Label is the connector's text, empty when the connector is unlabeled.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Page holds one page's extracted content.
type Page struct {
	// Name is the page name, never empty (the extractor synthesizes
	// "Page-N" when the loader reports none).
	Name string `json:"name" yaml:"name"`

	// Shapes is the flattened shape arena in document order.
	Shapes []Shape `json:"shapes" yaml:"shapes"`

	// Connectors lists the page's explicit connectors in document order.
	Connectors []Connector `json:"connectors" yaml:"connectors"`

	// ImageCount is the number of shapes carrying their own embedded image.
	ImageCount int `json:"image_count" yaml:"image_count"`
}

// ShapeIDs returns the page's shape ids in document order.
func (p Page) ShapeIDs() []string {
	ids := make([]string, len(p.Shapes))
	for i, s := range p.Shapes {
		ids[i] = s.ID
	}
	return ids
}

// Document is the in-memory snapshot of one converted file. It is built
// once per run and discarded afterwards; renderers derive every output
// from it without re-reading the source.
type Document struct {
	// FileName is the base name of the source file.
	FileName string `json:"file_name" yaml:"file_name"`

	// Metadata holds the document properties.
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// Pages lists the document's pages in package order.
	Pages []Page `json:"pages" yaml:"pages"`

	// TotalImages is the sum of per-page image counts.
	TotalImages int `json:"total_images" yaml:"total_images"`
}
