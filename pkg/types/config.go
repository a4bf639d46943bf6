// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Format selects the conversion output form.
type Format string

const (
	// FormatMarkdown emits Markdown with embedded Mermaid diagrams.
	FormatMarkdown Format = "markdown"
	// FormatJSON emits the full Document tree as indented JSON.
	FormatJSON Format = "json"
	// FormatBoth emits both outputs from the same Document snapshot.
	FormatBoth Format = "both"
)

// ParseFormat validates a format selector from the CLI or config file.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatJSON, FormatBoth:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (expected markdown, json, or both)", s)
}

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	// Format is the output form (default markdown).
	Format Format `json:"format" yaml:"format"`

	// OutputPath is the destination file; empty means standard output.
	// In combined mode it is the base path for the .md/.json pair.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// MaxDepth bounds shape-tree traversal; shapes nested deeper are
	// omitted (default 5).
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// InferThreshold is the explicit-connector count below which
	// hierarchy inference runs for a page (default 2).
	InferThreshold int `json:"infer_threshold" yaml:"infer_threshold"`
}

// DefaultConvertConfig returns the configuration used when no config file
// or flags override it.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Format:         FormatMarkdown,
		MaxDepth:       5,
		InferThreshold: 2,
	}
}
