package solo

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip unpacks the zip archive at src into the directory dst and
// returns dst.  Entries that would land outside dst are rejected.
func ExtractZip(src, dst string) (string, error) {

	// non local entry names are checked per entry below
	r, err := zip.OpenReader(src)

	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return "", fmt.Errorf("error opening archive: %w", err)
	}

	defer r.Close()

	if err := os.MkdirAll(dst, 0755); err != nil {
		return "", fmt.Errorf("error creating extraction directory: %w", err)
	}

	root, err := filepath.Abs(dst)

	if err != nil {
		return "", err
	}

	for _, f := range r.File {
		if err := extractFile(f, root); err != nil {
			return "", err
		}
	}

	return dst, nil
}

// extractFile writes a single archive entry below root
func extractFile(f *zip.File, root string) error {

	target := filepath.Join(root, filepath.FromSlash(f.Name))

	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes extraction directory", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("error creating directory for %q: %w", f.Name, err)
	}

	rc, err := f.Open()

	if err != nil {
		return fmt.Errorf("error opening archive entry %q: %w", f.Name, err)
	}

	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)

	if err != nil {
		return fmt.Errorf("error creating %q: %w", target, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("error extracting %q: %w", f.Name, err)
	}

	return out.Close()
}
