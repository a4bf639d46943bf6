// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vsdx

import (
	"encoding/xml"
	"log/slog"
)

// Metadata holds the document properties the package exposes.
type Metadata struct {
	Title   string
	Creator string
	Company string
}

// coreProps mirrors docProps/core.xml (Dublin Core properties).
type coreProps struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
}

// appProps mirrors docProps/app.xml (extended properties).
type appProps struct {
	XMLName xml.Name `xml:"Properties"`
	Company string   `xml:"Company"`
}

// Metadata reads title and creator from the core properties and company
// from the extended properties. Missing or malformed parts yield zero
// values; metadata problems never fail a load.
func (f *File) Metadata() Metadata {
	var md Metadata

	if data, err := f.readPart("docProps/core.xml"); err == nil && data != nil {
		var core coreProps
		if err := xml.Unmarshal(data, &core); err != nil {
			slog.Debug("vsdx: unparsable core properties", "error", err)
		} else {
			md.Title = core.Title
			md.Creator = core.Creator
		}
	}

	if data, err := f.readPart("docProps/app.xml"); err == nil && data != nil {
		var app appProps
		if err := xml.Unmarshal(data, &app); err != nil {
			slog.Debug("vsdx: unparsable app properties", "error", err)
		} else {
			md.Company = app.Company
		}
	}

	return md
}
