package coco

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {

	doc := NewDocument(
		Info{Description: "test", Version: "1.0", Year: 2024, Contributor: "User", DateCreated: "2024-06-08"},
		[]License{{ID: 1, Name: "Default License", URL: "http://example.com"}},
		[]Category{{ID: 1, Name: "car", Supercategory: "none"}, {ID: 2, Name: "person", Supercategory: "none"}},
	)

	doc.Images = append(doc.Images,
		&Image{ID: 0, FileName: "step0.camera.png", Width: 640, Height: 480, License: 1},
		&Image{ID: 1, FileName: "step1.camera.png", Width: 640, Height: 480, License: 1},
	)

	doc.Annotations = append(doc.Annotations,
		&Annotation{ID: 0, ImageID: 0, CategoryID: 1, BBox: [4]float64{10, 20, 30, 40}, Area: 1200,
			Segmentation: []Polygon{{10, 20, 10, 60, 40, 60, 40, 20}}},
		&Annotation{ID: 1, ImageID: 1, CategoryID: 2, BBox: [4]float64{1.5, 2, 3, 4}, Area: 12,
			Segmentation: []Polygon{}},
		&Annotation{ID: 2, ImageID: 1, CategoryID: 1, BBox: [4]float64{0, 0, 5, 5}, Area: 25,
			Segmentation: []Polygon{}},
	)

	return doc
}

func TestRoundTrip(t *testing.T) {

	doc := sampleDocument()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, doc.Images, got.Images)
	assert.Equal(t, doc.Annotations, got.Annotations)
	assert.Equal(t, doc.Categories, got.Categories)
	assert.Equal(t, doc.Info, got.Info)
	assert.Equal(t, doc.Licenses, got.Licenses)
}

func TestEncodeCompactAndEmptyLists(t *testing.T) {

	doc := NewDocument(Info{Description: "a&b"}, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	out := strings.TrimSpace(buf.String())

	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, ": ")
	assert.Contains(t, out, `"images":[]`)
	assert.Contains(t, out, `"annotations":[]`)
	assert.Contains(t, out, `"categories":[]`)
	assert.Contains(t, out, `"licenses":[]`)
	assert.Contains(t, out, `"description":"a&b"`)

	// top level key order follows the COCO layout
	keys := []string{`"info"`, `"licenses"`, `"images"`, `"annotations"`, `"categories"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(out, k)
		require.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
}

func TestEmptySegmentationSerialisesAsList(t *testing.T) {

	doc := sampleDocument()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	assert.Contains(t, buf.String(), `"segmentation":[]`)
	assert.Contains(t, buf.String(), `"segmentation":[[10,20,10,60,40,60,40,20]]`)
	assert.Contains(t, buf.String(), `"bbox":[10,20,30,40]`)
}

func TestWriteAndLoad(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "out", "coco.json")

	doc := sampleDocument()
	require.NoError(t, Write(path, doc))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Annotations, got.Annotations)

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "coco.json", entries[0].Name())
}

func TestLoadErrors(t *testing.T) {

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))

	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse COCO input")
}

func TestLookups(t *testing.T) {

	doc := sampleDocument()

	img, ok := doc.ImageByFileName("step1.camera.png")
	require.True(t, ok)
	assert.Equal(t, int64(1), img.ID)

	_, ok = doc.ImageByFileName("nope.png")
	assert.False(t, ok)

	anns := doc.AnnotationsForImage(1)
	require.Len(t, anns, 2)
	assert.Equal(t, int64(1), anns[0].ID)
	assert.Equal(t, int64(2), anns[1].ID)

	assert.Empty(t, doc.AnnotationsForImage(9))

	cat, ok := doc.Category(2)
	require.True(t, ok)
	assert.Equal(t, "person", cat.Name)

	_, ok = doc.Category(3)
	assert.False(t, ok)
}

func TestPolygonVertices(t *testing.T) {

	p := Polygon{1, 2, 3, 4, 5, 6}

	assert.Equal(t, 3, p.Points())

	x, y := p.Vertex(2)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 6.0, y)
}
