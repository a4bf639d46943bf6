// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diagram

import (
	"strings"

	"github.com/pdiddy/visio2md/pkg/types"
)

// imageMarker is appended to the label of image-bearing nodes. It is
// cosmetic only and never part of node identity.
const imageMarker = " \U0001F4F7"

// maxNodeIDLen bounds sanitized node identifiers.
const maxNodeIDLen = 50

// Render emits a Mermaid "graph TD" block for the page: every extracted
// shape as a node in extraction order, then the combined edge set. Edges
// whose endpoints do not resolve to shapes on the page are skipped. A page
// with no shapes renders to the empty string, letting the caller omit the
// diagram block entirely.
func Render(page types.Page, inferThreshold int) string {
	if len(page.Shapes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("```mermaid\n")
	b.WriteString("graph TD\n")

	nodeIDs := make(map[string]string, len(page.Shapes))
	for _, s := range page.Shapes {
		id := nodeID(s.ID)
		nodeIDs[s.ID] = id

		label := nodeLabel(s)
		if s.HasImage {
			label += imageMarker
		}
		b.WriteString("    " + id + "[\"" + label + "\"]\n")
	}

	edges := Combine(page, inferThreshold)
	wroteHeader := false
	for _, e := range edges {
		from, okFrom := nodeIDs[e.From]
		to, okTo := nodeIDs[e.To]
		if !okFrom || !okTo {
			continue
		}
		if !wroteHeader {
			b.WriteString("\n")
			wroteHeader = true
		}
		if e.Label != "" {
			b.WriteString("    " + from + " -->|" + sanitizeLabel(e.Label) + "| " + to + "\n")
		} else {
			b.WriteString("    " + from + " --> " + to + "\n")
		}
	}

	b.WriteString("```")
	return b.String()
}

// nodeID derives a stable Mermaid identifier from a shape id: alphanumeric
// runes pass through, everything else becomes an underscore.
func nodeID(shapeID string) string {
	var b strings.Builder
	b.WriteByte('n')
	for _, r := range shapeID {
		if b.Len() >= maxNodeIDLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// nodeLabel picks the display text for a shape: text, then name, then id.
func nodeLabel(s types.Shape) string {
	for _, candidate := range []string{s.Text, s.Name} {
		if label := sanitizeLabel(candidate); label != "" {
			return label
		}
	}
	return sanitizeLabel(s.ID)
}

// sanitizeLabel collapses a label to a single line and neutralizes the
// characters that break Mermaid node declarations.
func sanitizeLabel(text string) string {
	text = strings.ReplaceAll(text, `"`, "'")
	text = strings.ReplaceAll(text, "|", "/")
	return strings.Join(strings.Fields(text), " ")
}
