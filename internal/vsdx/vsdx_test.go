// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vsdx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeVSDX builds a zip package from part name to content in a temp dir.
func writeVSDX(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vsdx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

const pagesXML = `<?xml version="1.0" encoding="utf-8"?>
<Pages xmlns="http://schemas.microsoft.com/office/visio/2012/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Page ID="0" Name="Flow" NameU="Flow"><Rel r:id="rId1"/></Page>
</Pages>`

const pagesRelsXML = `<?xml version="1.0" encoding="utf-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.microsoft.com/visio/2010/relationships/page" Target="page1.xml"/>
</Relationships>`

const page1XML = `<?xml version="1.0" encoding="utf-8"?>
<PageContents xmlns="http://schemas.microsoft.com/office/visio/2012/main">
  <Shapes>
    <Shape ID="1" Name="Start" NameU="Start" Type="Shape" Master="2">
      <Text>Start here</Text>
    </Shape>
    <Shape ID="2" Name="Group1" Type="Group">
      <Shapes>
        <Shape ID="3" Name="Child" Type="Shape">
          <Text>  nested  </Text>
        </Shape>
      </Shapes>
    </Shape>
    <Shape ID="4" Name="Dynamic connector" Type="Shape">
      <Text>goes to</Text>
    </Shape>
    <Shape ID="5" Name="Picture" Type="Foreign">
      <ForeignData ForeignType="Bitmap"/>
    </Shape>
  </Shapes>
  <Connects>
    <Connect FromSheet="4" FromCell="BeginX" ToSheet="1"/>
    <Connect FromSheet="4" FromCell="EndX" ToSheet="2"/>
    <Connect FromSheet="9" FromCell="BeginX" ToSheet="1"/>
  </Connects>
</PageContents>`

const mastersXML = `<?xml version="1.0" encoding="utf-8"?>
<Masters xmlns="http://schemas.microsoft.com/office/visio/2012/main">
  <Master ID="2" Name="" NameU="Process"/>
</Masters>`

const coreXML = `<?xml version="1.0" encoding="utf-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
                   xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Network Diagram</dc:title>
  <dc:creator>Jane Doe</dc:creator>
</cp:coreProperties>`

const appXML = `<?xml version="1.0" encoding="utf-8"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Company>Acme Corp</Company>
</Properties>`

func testParts() map[string]string {
	return map[string]string{
		"visio/document.xml":               `<VisioDocument xmlns="http://schemas.microsoft.com/office/visio/2012/main"/>`,
		"visio/pages/pages.xml":            pagesXML,
		"visio/pages/_rels/pages.xml.rels": pagesRelsXML,
		"visio/pages/page1.xml":            page1XML,
		"visio/masters/masters.xml":        mastersXML,
		"docProps/core.xml":                coreXML,
		"docProps/app.xml":                 appXML,
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.vsdx"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected a file-not-found error, got %v", err)
}

func TestOpenRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
	}{
		{"legacy OLE binary", append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, make([]byte, 504)...)},
		{"plain text", []byte("this is not a diagram file\n")},
		{"empty file", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.vsd")
			require.NoError(t, os.WriteFile(path, tt.header, 0o644))

			_, err := Open(path)
			require.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestOpenRejectsZipWithoutVisioParts(t *testing.T) {
	path := writeVSDX(t, map[string]string{"readme.txt": "just a zip"})

	_, err := Open(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMetadata(t *testing.T) {
	f, err := Open(writeVSDX(t, testParts()))
	require.NoError(t, err)
	defer f.Close()

	md := f.Metadata()
	assert.Equal(t, "Network Diagram", md.Title)
	assert.Equal(t, "Jane Doe", md.Creator)
	assert.Equal(t, "Acme Corp", md.Company)
}

func TestMetadataMissingParts(t *testing.T) {
	parts := testParts()
	delete(parts, "docProps/core.xml")
	delete(parts, "docProps/app.xml")

	f, err := Open(writeVSDX(t, parts))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, Metadata{}, f.Metadata())
}

func TestPages(t *testing.T) {
	f, err := Open(writeVSDX(t, testParts()))
	require.NoError(t, err)
	defer f.Close()

	pages, err := f.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, "Flow", page.Name)
	require.Len(t, page.Shapes, 4)

	start := page.Shapes[0]
	assert.Equal(t, "1", start.ID)
	assert.Equal(t, "Start here", start.Text)
	assert.Equal(t, "Process", start.Type, "master reference should resolve to the master name")

	group := page.Shapes[1]
	assert.Equal(t, "Group", group.Type)
	require.Len(t, group.Children, 1)
	assert.Equal(t, "nested", group.Children[0].Text, "shape text should be trimmed")

	assert.True(t, page.Shapes[3].HasImage, "ForeignData should mark the shape image-bearing")
	assert.False(t, start.HasImage)
}

func TestPagesResolvesConnects(t *testing.T) {
	f, err := Open(writeVSDX(t, testParts()))
	require.NoError(t, err)
	defer f.Close()

	pages, err := f.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// Sheet 4 has both ends; sheet 9 has only a begin and is dropped.
	require.Len(t, pages[0].Connectors, 1)
	conn := pages[0].Connectors[0]
	assert.Equal(t, "1", conn.FromID)
	assert.Equal(t, "2", conn.ToID)
	assert.Equal(t, "goes to", conn.Label, "label should come from the connector shape's text")
}

func TestPagesDefaultName(t *testing.T) {
	parts := testParts()
	parts["visio/pages/pages.xml"] = `<?xml version="1.0" encoding="utf-8"?>
<Pages xmlns="http://schemas.microsoft.com/office/visio/2012/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Page ID="0"><Rel r:id="rId1"/></Page>
</Pages>`

	f, err := Open(writeVSDX(t, parts))
	require.NoError(t, err)
	defer f.Close()

	pages, err := f.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Page-1", pages[0].Name)
}
