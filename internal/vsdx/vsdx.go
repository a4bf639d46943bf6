// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vsdx reads Visio .vsdx packages (OPC: a zip of XML parts) into a
// raw shape/connector model. It is the document-loading collaborator behind
// the converter's Loader interface; nothing outside this package touches
// zip entries or Visio XML.
package vsdx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnsupportedFormat is returned for inputs that are not .vsdx packages,
// including legacy binary Visio files (.vsd/.vss/.vst).
var ErrUnsupportedFormat = errors.New("unsupported format: only .vsdx (Visio XML) files are supported")

// zipMagic is the local-file-header signature of a zip archive.
var zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// oleMagic is the OLE compound-file signature used by legacy binary Visio.
var oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// File is an open .vsdx package.
type File struct {
	reader *zip.ReadCloser
	// parts indexes zip entries by name for direct part lookup.
	parts map[string]*zip.File
}

// Open validates the file header and opens the package. Legacy binary
// Visio files and non-zip inputs fail with ErrUnsupportedFormat; a missing
// or unreadable file fails with the underlying os error.
func Open(path string) (*File, error) {
	if err := sniff(path); err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening vsdx package: %w", err)
	}

	parts := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		parts[f.Name] = f
	}

	if parts["visio/document.xml"] == nil {
		r.Close()
		return nil, fmt.Errorf("%w: zip archive is not a Visio package", ErrUnsupportedFormat)
	}

	return &File{reader: r, parts: parts}, nil
}

// Close releases the underlying zip reader.
func (f *File) Close() error {
	return f.reader.Close()
}

// sniff checks the file's magic bytes before handing it to archive/zip, so
// legacy binary diagrams get a distinct error instead of a zip parse error.
func sniff(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(fh, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading file header: %w", err)
	}
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, zipMagic):
		return nil
	case bytes.HasPrefix(header, oleMagic):
		return fmt.Errorf("%w: legacy binary Visio file (.vsd)", ErrUnsupportedFormat)
	default:
		return ErrUnsupportedFormat
	}
}

// readPart returns the decompressed content of a named zip entry, or nil
// when the part is absent.
func (f *File) readPart(name string) ([]byte, error) {
	zf := f.parts[name]
	if zf == nil {
		return nil, nil
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
