// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"

	"github.com/pdiddy/visio2md/pkg/types"
)

// jsonDocument is the structured-data export tree. It carries exactly the
// extracted model — no diagram syntax, no image markers, no other
// formatting-only fields — with shape nesting rebuilt from parent links so
// the export reads as the document is structured.
type jsonDocument struct {
	FileName    string     `json:"file_name"`
	Metadata    jsonMeta   `json:"metadata"`
	TotalImages int        `json:"total_images"`
	Pages       []jsonPage `json:"pages"`
}

type jsonMeta struct {
	Title   string `json:"title"`
	Creator string `json:"creator"`
	Company string `json:"company"`
}

type jsonPage struct {
	Name       string          `json:"name"`
	ImageCount int             `json:"image_count"`
	Shapes     []*jsonShape    `json:"shapes"`
	Connectors []jsonConnector `json:"connectors"`
}

type jsonShape struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Text     string       `json:"text"`
	HasImage bool         `json:"has_image"`
	Shapes   []*jsonShape `json:"shapes,omitempty"`
}

type jsonConnector struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// JSON renders the document as indented JSON.
func JSON(doc *types.Document) ([]byte, error) {
	out := jsonDocument{
		FileName: doc.FileName,
		Metadata: jsonMeta{
			Title:   doc.Metadata.Title,
			Creator: doc.Metadata.Creator,
			Company: doc.Metadata.Company,
		},
		TotalImages: doc.TotalImages,
		Pages:       make([]jsonPage, len(doc.Pages)),
	}

	for i, page := range doc.Pages {
		out.Pages[i] = jsonPage{
			Name:       page.Name,
			ImageCount: page.ImageCount,
			Shapes:     nestShapes(page.Shapes),
			Connectors: make([]jsonConnector, len(page.Connectors)),
		}
		for j, c := range page.Connectors {
			out.Pages[i].Connectors[j] = jsonConnector{From: c.FromID, To: c.ToID, Label: c.Label}
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// nestShapes rebuilds the shape tree from the flat arena's parent links.
// Parents always precede their children in document order, so a single
// pass suffices.
func nestShapes(shapes []types.Shape) []*jsonShape {
	roots := make([]*jsonShape, 0, len(shapes))
	byID := make(map[string]*jsonShape, len(shapes))

	for _, s := range shapes {
		node := &jsonShape{
			ID:       s.ID,
			Name:     s.Name,
			Type:     s.Type,
			Text:     s.Text,
			HasImage: s.HasImage,
		}
		byID[s.ID] = node

		if parent := byID[s.ParentID]; parent != nil {
			parent.Shapes = append(parent.Shapes, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}
