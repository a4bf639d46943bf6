// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates the conversion pipeline: load a document
// snapshot once, then render it to the requested destinations.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/visio2md/internal/extract"
	"github.com/pdiddy/visio2md/internal/render"
	"github.com/pdiddy/visio2md/internal/vsdx"
	"github.com/pdiddy/visio2md/pkg/types"
)

// Loader produces a Document snapshot from a file path. Any conforming
// parser can stand in for the native vsdx reader.
type Loader interface {
	Load(path string) (*types.Document, error)
}

// VSDXLoader loads .vsdx packages through the native reader.
type VSDXLoader struct {
	// MaxDepth bounds shape-tree extraction.
	MaxDepth int
}

// Load opens the package, extracts every page, and closes the file. The
// snapshot holds everything downstream stages need; the source is not
// touched again.
func (l VSDXLoader) Load(path string) (*types.Document, error) {
	f, err := vsdx.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return extract.Document(f, filepath.Base(path), l.MaxDepth)
}

// Run converts one file per cfg, writing progress lines to w. With an
// empty OutputPath the rendered content goes to stdout; otherwise to the
// named file, or to the fixed-suffix .md/.json pair in combined mode. A
// load error aborts before any output; a write error for one combined
// target never hides the other's outcome.
func Run(l Loader, path string, cfg types.ConvertConfig, w io.Writer) error {
	doc, err := l.Load(path)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case types.FormatJSON:
		data, err := render.JSON(doc)
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
		return emit(data, cfg.OutputPath, w)

	case types.FormatBoth:
		return runBoth(doc, cfg, w)

	default:
		md := render.Markdown(doc, cfg.InferThreshold)
		return emit([]byte(md), cfg.OutputPath, w)
	}
}

// runBoth renders both outputs from the same snapshot. Each target is
// attempted independently and partial failure is surfaced as a joined
// error.
func runBoth(doc *types.Document, cfg types.ConvertConfig, w io.Writer) error {
	md := render.Markdown(doc, cfg.InferThreshold)
	data, err := render.JSON(doc)
	if err != nil {
		return fmt.Errorf("rendering JSON: %w", err)
	}

	if cfg.OutputPath == "" {
		if _, err := fmt.Fprintf(os.Stdout, "%s\n%s\n%s", md, strings.Repeat("=", 80), data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	base := strings.TrimSuffix(cfg.OutputPath, filepath.Ext(cfg.OutputPath))
	mdErr := emit([]byte(md), base+".md", w)
	jsonErr := emit(data, base+".json", w)
	return errors.Join(mdErr, jsonErr)
}

// emit writes content to the destination path, or to stdout when the path
// is empty, reporting the written file on w.
func emit(content []byte, path string, w io.Writer) error {
	if path == "" {
		if _, err := os.Stdout.Write(content); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "written: %s\n", path)
	return nil
}
