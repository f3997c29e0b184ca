package bitext

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes doc and replaces path with the result. The data is
// written to a temporary file in the same directory and renamed over path,
// so path is either left untouched or fully replaced.
func WriteFile(path string, doc Document, enc Encoder) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = enc.Encode(w, doc); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}
