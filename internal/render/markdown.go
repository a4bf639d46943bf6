// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes a Document snapshot into its output forms.
// Both renderers are pure functions of the snapshot; the source file is
// never consulted.
package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/visio2md/internal/diagram"
	"github.com/pdiddy/visio2md/pkg/types"
)

// Markdown renders the document as Markdown with an embedded Mermaid
// diagram per page. inferThreshold is passed through to the diagram layer.
func Markdown(doc *types.Document, inferThreshold int) string {
	var b strings.Builder

	if !doc.Metadata.IsEmpty() {
		b.WriteString(frontmatter(doc.Metadata))
	}

	fmt.Fprintf(&b, "# %s\n\n", doc.FileName)
	fmt.Fprintf(&b, "**Total images**: %d\n\n", doc.TotalImages)
	fmt.Fprintf(&b, "## Pages (%d total)\n", len(doc.Pages))

	for i, page := range doc.Pages {
		fmt.Fprintf(&b, "\n### Page %d: %s\n", i+1, page.Name)
		writePage(&b, page, inferThreshold)
	}

	return b.String()
}

// frontmatter emits the document metadata as a YAML frontmatter block.
func frontmatter(md types.Metadata) string {
	data, err := yaml.Marshal(md)
	if err != nil {
		// Metadata is three plain strings; marshaling cannot realistically
		// fail, but a missing header beats a failed conversion.
		return ""
	}
	return "---\n" + string(data) + "---\n\n"
}

func writePage(b *strings.Builder, page types.Page, inferThreshold int) {
	if len(page.Shapes) == 0 {
		b.WriteString("\n*No shapes found on this page*\n")
		return
	}

	if page.ImageCount > 0 {
		fmt.Fprintf(b, "\n**Images on this page**: %d\n", page.ImageCount)
	}

	if block := diagram.Render(page, inferThreshold); block != "" {
		b.WriteString("\n#### Diagram\n\n")
		b.WriteString(block)
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "\n#### Shapes (%d total)\n\n", len(page.Shapes))
	b.WriteString("| ID | Name | Type | Text | Image |\n")
	b.WriteString("|----|------|------|------|-------|\n")
	for _, s := range page.Shapes {
		image := ""
		if s.HasImage {
			image = "yes"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			cell(s.ID), cell(s.Name), cell(s.Type), cell(s.Text), image)
	}

	if len(page.Connectors) > 0 {
		fmt.Fprintf(b, "\n#### Connections (%d total)\n\n", len(page.Connectors))
		for _, c := range page.Connectors {
			if c.Label != "" {
				fmt.Fprintf(b, "- %s → %s (%s)\n", cell(c.FromID), cell(c.ToID), cell(c.Label))
			} else {
				fmt.Fprintf(b, "- %s → %s\n", cell(c.FromID), cell(c.ToID))
			}
		}
	}
}

// cell collapses a value to a single line safe inside a Markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
