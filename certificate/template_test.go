package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPageNormalizesToLayoutSize(t *testing.T) {
	dir := t.TempDir()
	writeTemplatePNG(t, dir, 1, 120, 170)

	layout := DefaultLayout()
	loader := NewTemplateLoader(dir, layout)

	page, err := loader.OpenPage(1)
	require.NoError(t, err)
	assert.Equal(t, layout.Scale(layout.PageWidth), page.Bounds().Dx())
	assert.Equal(t, layout.Scale(layout.PageHeight), page.Bounds().Dy())
}

func TestOpenPageMissingFirstPageIsFatal(t *testing.T) {
	loader := NewTemplateLoader(t.TempDir(), DefaultLayout())

	_, err := loader.OpenPage(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
}

func TestOpenPageSynthesizesMissingLaterPages(t *testing.T) {
	dir := t.TempDir()
	writeTemplatePNG(t, dir, 1, 120, 170)

	layout := DefaultLayout()
	loader := NewTemplateLoader(dir, layout)

	page, err := loader.OpenPage(3)
	require.NoError(t, err)
	assert.Equal(t, layout.Scale(layout.PageWidth), page.Bounds().Dx())
	assert.Equal(t, layout.Scale(layout.PageHeight), page.Bounds().Dy())

	// Synthesized pages are plain white.
	r, g, b, a := page.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestOpenPageReturnsFreshSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeTemplatePNG(t, dir, 1, 120, 170)
	loader := NewTemplateLoader(dir, DefaultLayout())

	a, err := loader.OpenPage(1)
	require.NoError(t, err)
	b, err := loader.OpenPage(1)
	require.NoError(t, err)

	a.Pix[0] = 0
	assert.NotEqual(t, a.Pix[0], b.Pix[0], "pages must not share pixel storage")
}
