package solo2coco

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyImages copies the capture images of a conversion into place, creating
// destination directories as needed and keeping file modification times
func CopyImages(copies []ImageCopy) error {

	for _, cp := range copies {
		if err := copyFile(cp.Src, cp.Dst); err != nil {
			return fmt.Errorf("error copying image %s: %w", cp.Src, err)
		}
	}

	return nil
}

func copyFile(src, dst string) error {

	in, err := os.Open(src)

	if err != nil {
		return err
	}

	defer in.Close()

	st, err := in.Stat()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)

	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, st.ModTime(), st.ModTime())
}
