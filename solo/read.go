package solo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadDefinitions reads and parses the annotation definitions file at path
func ReadDefinitions(path string) (*Definitions, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	var defs Definitions

	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse SOLO definitions from %q: %w", path, err)
	}

	return &defs, nil
}

// ReadFrame reads and parses the frame metadata file at path
func ReadFrame(path string) (*Frame, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return ParseFrame(data)
}

// ParseFrame parses frame metadata JSON
func ParseFrame(data []byte) (*Frame, error) {

	var frame Frame

	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("failed to parse SOLO frame: %w", err)
	}

	return &frame, nil
}

// ListFrames returns the file names of all JSON frame metadata files in the
// sequence directory, sorted lexicographically
func ListFrames(sequenceDir string) ([]string, error) {

	entries, err := os.ReadDir(sequenceDir)

	if err != nil {
		return nil, fmt.Errorf("error listing sequence directory: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	return names, nil
}

// FindDataset returns the directory at or below root which contains the
// annotation definitions file.  The shallowest match wins, ties broken by
// lexical order.
func FindDataset(root string) (string, error) {

	if _, err := os.Stat(filepath.Join(root, DefinitionsFile)); err == nil {
		return root, nil
	}

	found := ""
	foundDepth := 0

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {

		if err != nil {
			return err
		}

		if d.IsDir() || d.Name() != DefinitionsFile {
			return nil
		}

		dir := filepath.Dir(path)
		depth := strings.Count(filepath.ToSlash(dir), "/")

		if found == "" || depth < foundDepth {
			found = dir
			foundDepth = depth
		}

		return nil
	})

	if err != nil {
		return "", fmt.Errorf("error searching for dataset: %w", err)
	}

	if found == "" {
		return "", fmt.Errorf("no %s found below %s", DefinitionsFile, root)
	}

	return found, nil
}
