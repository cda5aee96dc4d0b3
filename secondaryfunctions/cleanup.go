// secondaryfunctions/cleanup.go

package secondaryfunctions

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupOldFiles deletes stored certificate PDFs older than the given
// number of days. Certificates are regenerated on demand, so stored copies
// are only a download cache and safe to reap.
func CleanupOldFiles(dir string, daysOld int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("error reading output directory: %v", err)
	}

	cutoff := time.Now().Add(-time.Duration(daysOld) * 24 * time.Hour)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("Error reading file info for %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Error deleting file %s: %v", path, err)
			continue
		}
		deleted++
		log.Printf("Deleted certificate %s (last written: %s)", entry.Name(), info.ModTime().Format("2006-01-02"))
	}

	log.Printf("Cleanup completed. Deleted %d files older than %d days", deleted, daysOld)
	return deleted, nil
}
