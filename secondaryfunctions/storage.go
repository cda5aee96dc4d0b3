package secondaryfunctions

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage persists certificate PDFs to a directory on disk. It
// implements certificate.Storage.
type LocalStorage struct {
	Dir string
}

// Save writes the PDF under the storage directory, creating it on demand.
func (s *LocalStorage) Save(filename string, data []byte) error {
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write certificate file: %v", err)
	}
	return nil
}
