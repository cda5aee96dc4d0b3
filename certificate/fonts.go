// certificate/fonts.go
package certificate

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontResolver maps font file names to ready-to-draw faces. Lookups degrade
// through an ordered fallback chain: the configured file, then the default
// family file, then an embedded Go font. A missing font file must never abort
// certificate generation.
type FontResolver struct {
	Dir         string
	DefaultFont string // fallback family file, FontCandaraRegular when empty

	mu     sync.Mutex
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

type faceKey struct {
	name string
	size int
}

// NewFontResolver creates a resolver over the given font directory.
func NewFontResolver(dir string) *FontResolver {
	return &FontResolver{
		Dir:         dir,
		DefaultFont: FontCandaraRegular,
		parsed:      make(map[string]*opentype.Font),
		faces:       make(map[faceKey]font.Face),
	}
}

// Face returns a face for the named font file at the given pixel size.
// It never fails: unknown or unreadable fonts resolve to the default family,
// then to the embedded Go fonts, and as a final guard to a basic bitmap face.
func (r *FontResolver) Face(name string, size int) font.Face {
	if size < 1 {
		size = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := faceKey{name: name, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}

	face := r.newFace(name, size)
	r.faces[key] = face
	return face
}

func (r *FontResolver) newFace(name string, size int) font.Face {
	for _, candidate := range []string{name, r.defaultName()} {
		if f := r.parsedFont(candidate); f != nil {
			if face := makeFace(f, size); face != nil {
				return face
			}
		}
	}

	// Embedded fallback: Go Bold for bold-looking requests, Go Regular
	// otherwise.
	data := goregular.TTF
	if strings.Contains(strings.ToLower(name), "bold") {
		data = gobold.TTF
	}
	if f, err := opentype.Parse(data); err == nil {
		if face := makeFace(f, size); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func (r *FontResolver) defaultName() string {
	if r.DefaultFont != "" {
		return r.DefaultFont
	}
	return FontCandaraRegular
}

// parsedFont loads and caches the parsed font for a file name, or nil if the
// file is missing or unparseable.
func (r *FontResolver) parsedFont(name string) *opentype.Font {
	if name == "" {
		return nil
	}
	if f, ok := r.parsed[name]; ok {
		return f
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Font %s unavailable, falling back: %v", name, err)
		r.parsed[name] = nil
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Printf("Failed to parse font %s: %v", name, err)
		r.parsed[name] = nil
		return nil
	}
	r.parsed[name] = f
	return f
}

func makeFace(f *opentype.Font, size int) font.Face {
	const dpi = 72 // size in pixels == size in points at 72 DPI
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Printf("Failed to create font face: %v", err)
		return nil
	}
	return face
}
