// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract flattens the loader's raw shape trees into the fixed
// record model. Every downstream stage consumes the flat, depth-tagged
// arena it produces; nothing after this package sees loader objects.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/visio2md/internal/vsdx"
	"github.com/pdiddy/visio2md/pkg/types"
)

// Document extracts every page of an open package into a Document
// snapshot. maxDepth bounds the shape-tree walk (see Page).
func Document(f *vsdx.File, fileName string, maxDepth int) (*types.Document, error) {
	rawPages, err := f.Pages()
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	md := f.Metadata()
	doc := &types.Document{
		FileName: fileName,
		Metadata: types.Metadata{
			Title:   md.Title,
			Creator: md.Creator,
			Company: md.Company,
		},
		Pages: make([]types.Page, 0, len(rawPages)),
	}

	for _, raw := range rawPages {
		page := Page(&raw, maxDepth)
		doc.TotalImages += page.ImageCount
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// frame is one pending node of the depth-tracked walk.
type frame struct {
	shape         *vsdx.Shape
	parentID      string
	depth         int
	ancestorImage bool
}

// Page flattens one raw page into document-ordered shape records. The walk
// is iterative over an explicit stack, so source trees of any depth cannot
// exhaust the call stack; shapes nested deeper than maxDepth levels are
// omitted. Shapes without an id get a synthetic sequential one, unreadable
// text becomes the empty string, and the has-image flag is inherited from
// flagged ancestors. Connectors are copied as reported — dangling endpoint
// ids stay in the model and are resolved (or skipped) at render time.
func Page(raw *vsdx.Page, maxDepth int) types.Page {
	page := types.Page{Name: raw.Name}

	seen := make(map[string]bool)
	synthetic := 0

	stack := make([]frame, 0, len(raw.Shapes))
	for i := len(raw.Shapes) - 1; i >= 0; i-- {
		stack = append(stack, frame{shape: &raw.Shapes[i], depth: 1})
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.depth > maxDepth {
			slog.Debug("extract: shape beyond depth bound omitted",
				"page", raw.Name, "id", fr.shape.ID, "depth", fr.depth)
			continue
		}

		id := fr.shape.ID
		for id == "" || seen[id] {
			synthetic++
			id = fmt.Sprintf("shape-%d", synthetic)
		}
		seen[id] = true

		hasImage := fr.shape.HasImage || fr.ancestorImage
		page.Shapes = append(page.Shapes, types.Shape{
			ID:       id,
			ParentID: fr.parentID,
			Depth:    fr.depth,
			Name:     fr.shape.Name,
			Type:     fr.shape.Type,
			Text:     fr.shape.Text,
			HasImage: hasImage,
		})
		if fr.shape.HasImage {
			page.ImageCount++
		}

		for i := len(fr.shape.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				shape:         &fr.shape.Children[i],
				parentID:      id,
				depth:         fr.depth + 1,
				ancestorImage: hasImage,
			})
		}
	}

	ids := make(map[string]bool, len(page.Shapes))
	for _, s := range page.Shapes {
		ids[s.ID] = true
	}
	for _, c := range raw.Connectors {
		if !ids[c.FromID] || !ids[c.ToID] {
			slog.Debug("extract: dangling connector reference",
				"page", raw.Name, "from", c.FromID, "to", c.ToID)
		}
		page.Connectors = append(page.Connectors, types.Connector{
			FromID: c.FromID,
			ToID:   c.ToID,
			Label:  c.Label,
		})
	}

	return page
}
