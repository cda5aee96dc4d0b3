// certificate/template.go
package certificate

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// TemplateLoader opens the static certificate template. The template is a
// versioned asset shipped as one pre-rasterized image per page (page-1.png,
// page-2.png, ...) under Dir; content is never user-editable through the
// engine. Pages are normalized to the layout's scaled dimensions so the
// coordinate tables stay valid regardless of the asset resolution.
type TemplateLoader struct {
	Dir    string
	Layout *Layout
}

func NewTemplateLoader(dir string, layout *Layout) *TemplateLoader {
	return &TemplateLoader{Dir: dir, Layout: layout}
}

// OpenPage returns a fresh drawing surface for the requested 1-based template
// page. A missing page 1 is fatal (no certificate without its background); a
// missing later page is synthesized blank with page 1's dimensions, so the
// transcript composer can always request page 2 without special-casing
// single-page templates.
func (t *TemplateLoader) OpenPage(pageNum int) (*image.RGBA, error) {
	img, err := t.loadPage(pageNum)
	if err == nil {
		return img, nil
	}
	if pageNum == 1 {
		return nil, fmt.Errorf("certificate template page 1 unavailable: %w", err)
	}

	log.Printf("Template has no page %d, creating blank page with page 1 dimensions", pageNum)
	ref, refErr := t.loadPage(1)
	if refErr != nil {
		return nil, fmt.Errorf("certificate template page 1 unavailable: %w", refErr)
	}
	return blankPageLike(ref), nil
}

// blankPageLike returns a white page with dimensions identical to ref.
func blankPageLike(ref *image.RGBA) *image.RGBA {
	img := image.NewRGBA(ref.Bounds())
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func (t *TemplateLoader) loadPage(pageNum int) (*image.RGBA, error) {
	path, err := t.pagePath(pageNum)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", path, err)
	}
	return t.normalize(src), nil
}

func (t *TemplateLoader) pagePath(pageNum int) (string, error) {
	for _, ext := range []string{"png", "jpg", "jpeg"} {
		path := filepath.Join(t.Dir, fmt.Sprintf("page-%d.%s", pageNum, ext))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no template image for page %d in %s", pageNum, t.Dir)
}

// normalize rescales the decoded template to the output resolution. Assets
// authored at exactly the scaled size are copied without resampling.
func (t *TemplateLoader) normalize(src image.Image) *image.RGBA {
	w := t.Layout.Scale(t.Layout.PageWidth)
	h := t.Layout.Scale(t.Layout.PageHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
