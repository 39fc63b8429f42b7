package coco

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Encode writes the document as compact JSON
func Encode(w io.Writer, doc *Document) error {

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding COCO document: %w", err)
	}

	return nil
}

// Write saves the document to path.  The JSON is written to a temporary file
// in the same directory which then replaces path, so a failed write never
// leaves a truncated document behind.
func Write(path string, doc *Document) error {

	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")

	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}

	tmpName := tmp.Name()

	// remove the temporary file on any failure below
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)

	if err := Encode(bw, doc); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("error moving document into place: %w", err)
	}

	committed = true

	return nil
}

// Decode parses a COCO document from r
func Decode(r io.Reader) (*Document, error) {

	var doc Document

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding COCO document: %w", err)
	}

	return &doc, nil
}

// Load reads the COCO document at path
func Load(path string) (*Document, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	doc, err := Decode(bufio.NewReader(f))

	if err != nil {
		return nil, fmt.Errorf("failed to parse COCO input from %q: %w", path, err)
	}

	return doc, nil
}
