package certificate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceNeverFails(t *testing.T) {
	r := NewFontResolver(t.TempDir())

	face := r.Face("Nonexistent-Font.ttf", 16)
	require.NotNil(t, face)
	// Bigger sizes measure wider text, so a scalable fallback was used
	// rather than the fixed-size bitmap face.
	small := textWidth(r.Face("Nonexistent-Font.ttf", 10), "Certificate")
	large := textWidth(r.Face("Nonexistent-Font.ttf", 40), "Certificate")
	assert.Greater(t, large, small)
}

func TestFaceCachesPerNameAndSize(t *testing.T) {
	r := NewFontResolver(t.TempDir())

	a := r.Face(FontCandaraRegular, 16)
	b := r.Face(FontCandaraRegular, 16)
	assert.Same(t, a, b)

	c := r.Face(FontCandaraRegular, 17)
	assert.NotSame(t, a, c)
}

func TestFaceLoadsFontFilesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Custom.ttf"), goregular.TTF, 0o644))

	r := NewFontResolver(dir)
	face := r.Face("Custom.ttf", 16)
	require.NotNil(t, face)
	assert.Positive(t, textWidth(face, "Ag"))
}

func TestFaceClampsNonPositiveSize(t *testing.T) {
	r := NewFontResolver(t.TempDir())
	assert.NotNil(t, r.Face(FontCandaraRegular, 0))
	assert.NotNil(t, r.Face(FontCandaraRegular, -3))
}

func TestUnreadableFontFallsBackToDefaultFamily(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FontCandaraRegular), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.ttf"), []byte("not a font"), 0o644))

	r := NewFontResolver(dir)
	face := r.Face("Broken.ttf", 16)
	require.NotNil(t, face)
	assert.Positive(t, textWidth(face, "Ag"))
}
