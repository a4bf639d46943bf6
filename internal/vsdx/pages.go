// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vsdx

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// Shape is a raw shape as the package stores it: a tree node with the
// attributes Visio puts on the Shape element. Children preserve document
// order and may nest arbitrarily deep; bounding the walk is the
// extractor's job, not the loader's.
type Shape struct {
	ID       string
	Name     string
	Type     string
	Master   string
	Text     string
	HasImage bool
	Children []Shape
}

// Connector is a resolved directed edge between two shapes on a page.
type Connector struct {
	FromID string
	ToID   string
	Label  string
}

// Page is one page's raw content.
type Page struct {
	Name       string
	Shapes     []Shape
	Connectors []Connector
}

// --- page XML structures ---

type xmlPages struct {
	XMLName xml.Name  `xml:"Pages"`
	Pages   []xmlPage `xml:"Page"`
}

type xmlPage struct {
	Name  string `xml:"Name,attr"`
	NameU string `xml:"NameU,attr"`
	Rel   struct {
		ID string `xml:"id,attr"`
	} `xml:"Rel"`
}

type xmlRelationships struct {
	XMLName xml.Name `xml:"Relationships"`
	Rels    []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlPageContents struct {
	XMLName  xml.Name     `xml:"PageContents"`
	Shapes   []xmlShape   `xml:"Shapes>Shape"`
	Connects []xmlConnect `xml:"Connects>Connect"`
}

type xmlShape struct {
	ID          string     `xml:"ID,attr"`
	Name        string     `xml:"Name,attr"`
	NameU       string     `xml:"NameU,attr"`
	Type        string     `xml:"Type,attr"`
	Master      string     `xml:"Master,attr"`
	Text        string     `xml:"Text"`
	ForeignData *struct{}  `xml:"ForeignData"`
	Children    []xmlShape `xml:"Shapes>Shape"`
}

type xmlConnect struct {
	FromSheet string `xml:"FromSheet,attr"`
	FromCell  string `xml:"FromCell,attr"`
	ToSheet   string `xml:"ToSheet,attr"`
}

type xmlMasters struct {
	XMLName xml.Name `xml:"Masters"`
	Masters []struct {
		ID    string `xml:"ID,attr"`
		Name  string `xml:"Name,attr"`
		NameU string `xml:"NameU,attr"`
	} `xml:"Master"`
}

// Pages reads the page index, resolves each page part through the pages
// relationships, and returns the pages in package order. A page whose part
// is missing or unparsable is skipped with a debug log rather than failing
// the whole document.
func (f *File) Pages() ([]Page, error) {
	data, err := f.readPart("visio/pages/pages.xml")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("visio/pages/pages.xml not found in package")
	}

	var index xmlPages
	if err := xml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing page index: %w", err)
	}

	rels, err := f.pageRels()
	if err != nil {
		return nil, err
	}

	masters := f.masterNames()

	pages := make([]Page, 0, len(index.Pages))
	for i, xp := range index.Pages {
		target, ok := rels[xp.Rel.ID]
		if !ok {
			slog.Debug("vsdx: page has no content relationship", "page", xp.Name, "rel", xp.Rel.ID)
			continue
		}

		partName := path.Clean("visio/pages/" + target)
		content, err := f.readPart(partName)
		if err != nil || content == nil {
			slog.Debug("vsdx: unreadable page part", "part", partName, "error", err)
			continue
		}

		page, err := parsePage(content, masters)
		if err != nil {
			slog.Debug("vsdx: unparsable page part", "part", partName, "error", err)
			continue
		}

		page.Name = xp.Name
		if page.Name == "" {
			page.Name = xp.NameU
		}
		if page.Name == "" {
			page.Name = fmt.Sprintf("Page-%d", i+1)
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// pageRels maps relationship ids from pages.xml to page part names.
func (f *File) pageRels() (map[string]string, error) {
	data, err := f.readPart("visio/pages/_rels/pages.xml.rels")
	if err != nil {
		return nil, err
	}
	rels := make(map[string]string)
	if data == nil {
		return rels, nil
	}

	var doc xmlRelationships
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing page relationships: %w", err)
	}
	for _, r := range doc.Rels {
		rels[r.ID] = r.Target
	}
	return rels, nil
}

// masterNames maps master ids to master names, used as shape types.
// The masters part is optional; an absent or broken one maps nothing.
func (f *File) masterNames() map[string]string {
	names := make(map[string]string)

	data, err := f.readPart("visio/masters/masters.xml")
	if err != nil || data == nil {
		return names
	}

	var doc xmlMasters
	if err := xml.Unmarshal(data, &doc); err != nil {
		slog.Debug("vsdx: unparsable masters part", "error", err)
		return names
	}
	for _, m := range doc.Masters {
		name := m.Name
		if name == "" {
			name = m.NameU
		}
		names[m.ID] = name
	}
	return names
}

// parsePage converts one page part into the raw model: the shape tree as
// stored, plus connectors resolved from the page's Connect records.
func parsePage(data []byte, masters map[string]string) (Page, error) {
	var contents xmlPageContents
	if err := xml.Unmarshal(data, &contents); err != nil {
		return Page{}, err
	}

	shapes := make([]Shape, 0, len(contents.Shapes))
	for _, xs := range contents.Shapes {
		shapes = append(shapes, convertShape(xs, masters))
	}

	return Page{
		Shapes:     shapes,
		Connectors: resolveConnects(contents.Connects, shapes),
	}, nil
}

func convertShape(xs xmlShape, masters map[string]string) Shape {
	name := xs.Name
	if name == "" {
		name = xs.NameU
	}

	typ := xs.Type
	if xs.Master != "" {
		if masterName := masters[xs.Master]; masterName != "" {
			typ = masterName
		}
	}

	s := Shape{
		ID:       xs.ID,
		Name:     name,
		Type:     typ,
		Master:   xs.Master,
		Text:     strings.TrimSpace(xs.Text),
		HasImage: xs.ForeignData != nil,
	}
	for _, child := range xs.Children {
		s.Children = append(s.Children, convertShape(child, masters))
	}
	return s
}

// resolveConnects pairs a connector sheet's BeginX and EndX connect
// records into a directed edge. The connector shape's own text becomes the
// edge label. Sheets with only one resolved end are dropped; the page is
// still usable without them.
func resolveConnects(connects []xmlConnect, shapes []Shape) []Connector {
	type ends struct {
		from, to string
		order    int
	}

	bySheet := make(map[string]*ends)
	var sheets []string
	for i, c := range connects {
		e := bySheet[c.FromSheet]
		if e == nil {
			e = &ends{order: i}
			bySheet[c.FromSheet] = e
			sheets = append(sheets, c.FromSheet)
		}
		switch c.FromCell {
		case "BeginX":
			e.from = c.ToSheet
		case "EndX":
			e.to = c.ToSheet
		}
	}

	labels := make(map[string]string)
	collectText(shapes, labels)

	var conns []Connector
	for _, sheet := range sheets {
		e := bySheet[sheet]
		if e.from == "" || e.to == "" {
			slog.Debug("vsdx: connector with unresolved end", "sheet", sheet)
			continue
		}
		conns = append(conns, Connector{
			FromID: e.from,
			ToID:   e.to,
			Label:  labels[sheet],
		})
	}
	return conns
}

// collectText indexes shape text by id across the whole tree, for
// connector label lookup.
func collectText(shapes []Shape, out map[string]string) {
	for _, s := range shapes {
		if s.ID != "" {
			out[s.ID] = s.Text
		}
		collectText(s.Children, out)
	}
}
