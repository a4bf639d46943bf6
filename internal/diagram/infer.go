// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagram derives a directed-graph description from an extracted
// page: explicit connectors, supplementary edges inferred from shape
// nesting and order, and a Mermaid rendering of the combined set.
package diagram

import "github.com/pdiddy/visio2md/pkg/types"

// Edge is one directed edge of the page graph.
type Edge struct {
	From     string
	To       string
	Label    string
	Inferred bool
}

// pairKey identifies an ordered edge for deduplication.
func pairKey(from, to string) string {
	return from + "\x00" + to
}

// Infer synthesizes edges from shape structure when a page's explicit
// connectors are too sparse to draw a useful diagram (fewer than
// threshold). Shapes are visited in document order: a shape with children
// contributes a parent→child edge per direct child; a childless shape that
// follows a sibling under the same parent contributes a sequence edge from
// that sibling. No inferred edge duplicates an explicit ordered pair.
// These edges exist for rendering only — they are never persisted as
// connection data.
func Infer(page types.Page, threshold int) []Edge {
	if len(page.Connectors) >= threshold {
		return nil
	}

	covered := make(map[string]bool, len(page.Connectors))
	for _, c := range page.Connectors {
		covered[pairKey(c.FromID, c.ToID)] = true
	}

	children := make(map[string][]string, len(page.Shapes))
	for _, s := range page.Shapes {
		if s.ParentID != "" {
			children[s.ParentID] = append(children[s.ParentID], s.ID)
		}
	}

	var edges []Edge
	add := func(from, to string) {
		key := pairKey(from, to)
		if covered[key] {
			return
		}
		covered[key] = true
		edges = append(edges, Edge{From: from, To: to, Inferred: true})
	}

	// lastSibling tracks the most recent sibling seen under each parent
	// ("" keys the top level).
	lastSibling := make(map[string]string)

	for _, s := range page.Shapes {
		if kids := children[s.ID]; len(kids) > 0 {
			for _, child := range kids {
				add(s.ID, child)
			}
		} else if prev, ok := lastSibling[s.ParentID]; ok {
			add(prev, s.ID)
		}
		lastSibling[s.ParentID] = s.ID
	}

	return edges
}

// Combine returns the page's full edge set for rendering: explicit
// connectors first in document order, then inferred edges. Duplicate
// ordered pairs collapse to the first occurrence, so an explicit edge
// always wins over anything inferred for the same pair.
func Combine(page types.Page, threshold int) []Edge {
	seen := make(map[string]bool, len(page.Connectors))
	edges := make([]Edge, 0, len(page.Connectors))

	for _, c := range page.Connectors {
		key := pairKey(c.FromID, c.ToID)
		if seen[key] {
			continue
		}
		seen[key] = true
		edges = append(edges, Edge{From: c.FromID, To: c.ToID, Label: c.Label})
	}

	return append(edges, Infer(page, threshold)...)
}
