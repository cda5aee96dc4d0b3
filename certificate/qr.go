// certificate/qr.go
package certificate

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// VerificationURL builds the public lookup link embedded in the certificate's
// QR code. The certificate number is preferred; a registration without one
// falls back to its numeric ID so the link is never empty. An empty site URL
// yields a relative path rather than failing.
func VerificationURL(reg *Registration, siteURL string) string {
	code := trimmed(reg.CertificateNumber)
	if code == "" {
		code = strconv.FormatInt(reg.ID, 10)
	}
	path := fmt.Sprintf("/verify/%s/", code)
	site := strings.TrimRight(trimmed(siteURL), "/")
	if site == "" {
		return path
	}
	return site + path
}

// qrImage encodes data as a QR bitmap with high error correction (~30%
// redundancy) and the standard quiet-zone border, then resamples it to the
// target pixel footprint. Certificates are printed and photographed, so
// scanning reliability takes priority over encoding size.
func qrImage(data string, sizePx int) (image.Image, error) {
	q, err := qrcode.New(data, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Render at 10px per module first, then downscale with a high-quality
	// kernel; scaling the module grid directly produces ragged edges.
	native := q.Image(-10)
	dst := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), native, native.Bounds(), xdraw.Src, nil)
	return dst, nil
}
