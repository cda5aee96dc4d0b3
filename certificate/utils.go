// certificate/utils.go
package certificate

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"time"
)

// formatDateWithOrdinal renders a date as it appears on the certificate,
// e.g. "26th October 2025". A zero date yields an empty string.
func formatDateWithOrdinal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	day := t.Day()
	suffix := "th"
	if day%100 < 10 || day%100 > 20 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strings.TrimLeft(fmt.Sprintf("%02d%s %s %d", day, suffix, t.Month().String(), t.Year()), "0")
}

// encodeJPEG serializes a rendered page for embedding into the PDF.
func encodeJPEG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}
	return buf.Bytes(), nil
}
