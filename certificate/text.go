// certificate/text.go
package certificate

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// canvas is the drawing surface for one page. It is owned by a single page
// composition and never shared across concurrent renders.
type canvas struct {
	img    *image.RGBA
	layout *Layout
	fonts  *FontResolver
}

func newCanvas(img *image.RGBA, layout *Layout, fonts *FontResolver) *canvas {
	return &canvas{img: img, layout: layout, fonts: fonts}
}

func (c *canvas) width() int  { return c.img.Bounds().Dx() }
func (c *canvas) height() int { return c.img.Bounds().Dy() }

// textBounds measures the ink extents of s: width, height and the offset from
// the drawing origin to the top of the ink.
func textBounds(face font.Face, s string) (w, h, top int) {
	bounds, _ := font.BoundString(face, s)
	w = (bounds.Max.X - bounds.Min.X).Ceil()
	h = (bounds.Max.Y - bounds.Min.Y).Ceil()
	top = bounds.Min.Y.Floor()
	return w, h, top
}

func textWidth(face font.Face, s string) int {
	w, _, _ := textBounds(face, s)
	return w
}

// drawText draws s with the top of its ink at topY. The baseline correction
// mirrors how every coordinate in the layout tables was authored.
func (c *canvas) drawText(s string, x, topY int, face font.Face, col color.Color) {
	if s == "" {
		return
	}
	_, _, top := textBounds(face, s)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, topY-top),
	}
	d.DrawString(s)
}

// drawTextAligned draws s left-aligned at x, or centered / right-aligned
// against the full canvas width.
func (c *canvas) drawTextAligned(s string, x, topY int, face font.Face, col color.Color, align string) {
	if s == "" {
		return
	}
	switch align {
	case "center":
		w := textWidth(face, s)
		x = (c.width() - w) / 2
	case "right":
		w := textWidth(face, s)
		x = c.width() - x - w
	}
	c.drawText(s, x, topY, face, col)
}

// drawTextSpaced draws s character by character with extra letter spacing and
// an optional faux-bold stroke.
func (c *canvas) drawTextSpaced(s string, x, topY int, face font.Face, col color.Color, spacing, thickness int) {
	if s == "" {
		return
	}
	currentX := x
	for _, ch := range s {
		glyph := string(ch)
		if thickness > 0 {
			for dx := -thickness; dx <= thickness; dx++ {
				for dy := -thickness; dy <= thickness; dy++ {
					c.drawText(glyph, currentX+dx, topY+dy, face, col)
				}
			}
		} else {
			c.drawText(glyph, currentX, topY, face, col)
		}
		w := textWidth(face, glyph)
		currentX += w + spacing
	}
}

// wrapText greedily word-wraps text so every line's measured width stays
// within maxWidth. A single word wider than maxWidth is split character by
// character so it never overflows the box on its own.
func wrapText(face font.Face, text string, maxWidth int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	breakLongWord := func(word string) []string {
		if word == "" {
			return []string{""}
		}
		var out []string
		chunk := ""
		for _, ch := range word {
			candidate := chunk + string(ch)
			if chunk != "" && textWidth(face, candidate) > maxWidth {
				out = append(out, chunk)
				chunk = string(ch)
			} else {
				chunk = candidate
			}
		}
		if chunk != "" {
			out = append(out, chunk)
		}
		return out
	}

	var lines []string
	current := words[0]
	if textWidth(face, current) > maxWidth {
		broken := breakLongWord(current)
		lines = append(lines, broken[:len(broken)-1]...)
		current = broken[len(broken)-1]
	}
	for _, w := range words[1:] {
		candidate := current + " " + w
		if textWidth(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
		if textWidth(face, current) > maxWidth {
			broken := breakLongWord(current)
			lines = append(lines, broken[:len(broken)-1]...)
			current = broken[len(broken)-1]
		}
	}
	lines = append(lines, current)
	return lines
}

// fitTextToBox wraps text at baseSize and shrinks the point size one step at
// a time until the wrapped block fits maxHeight. The size never goes below 4;
// if even the floor does not fit, the floor-sized layout is returned anyway
// rather than failing. Returns the face, the wrapped lines and the line
// height (zero lines and zero height for empty text).
func (c *canvas) fitTextToBox(text, fontName string, baseSize, maxWidth, maxHeight int) (font.Face, []string, int) {
	const floor = 4
	if baseSize < floor {
		baseSize = floor
	}
	for size := baseSize; size >= floor; size-- {
		face := c.fonts.Face(fontName, size)
		lines := wrapText(face, text, maxWidth)
		if len(lines) == 0 {
			return face, nil, 0
		}
		lineH := c.lineHeight(face)
		if lineH*len(lines) <= maxHeight {
			return face, lines, lineH
		}
	}
	face := c.fonts.Face(fontName, floor)
	lines := wrapText(face, text, maxWidth)
	if len(lines) == 0 {
		return face, nil, 0
	}
	return face, lines, c.lineHeight(face)
}

// lineHeight derives the wrapped-line advance from a reference string with
// both an ascender and a descender.
func (c *canvas) lineHeight(face font.Face) int {
	_, h, _ := textBounds(face, "Ag")
	return h + c.layout.Scale(2)
}

// drawWrappedText fits text into the box anchored at (x, y) and draws it
// left-aligned. Returns the occupied height and the line count.
func (c *canvas) drawWrappedText(text string, x, y int, fontName string, baseSize int, col color.Color, maxWidth, maxHeight int) (int, int) {
	face, lines, lineH := c.fitTextToBox(text, fontName, baseSize, maxWidth, maxHeight)
	if len(lines) == 0 {
		return 0, 0
	}
	for i, line := range lines {
		c.drawText(line, x, y+i*lineH, face, col)
	}
	return lineH * len(lines), len(lines)
}

// fillRect paints an axis-aligned rectangle given inclusive corner
// coordinates.
func (c *canvas) fillRect(x1, y1, x2, y2 int, col color.Color) {
	if x2 < x1 || y2 < y1 {
		return
	}
	draw.Draw(c.img, image.Rect(x1, y1, x2+1, y2+1), image.NewUniform(col), image.Point{}, draw.Src)
}

// strokeRect outlines a rectangle with the given border width.
func (c *canvas) strokeRect(x1, y1, x2, y2, width int, col color.Color) {
	c.fillRect(x1, y1, x2, y1+width-1, col)
	c.fillRect(x1, y2-width+1, x2, y2, col)
	c.fillRect(x1, y1, x1+width-1, y2, col)
	c.fillRect(x2-width+1, y1, x2, y2, col)
}

// hline / vline draw straight rules the way the table renderer needs them.
func (c *canvas) hline(x1, x2, y, width int, col color.Color) {
	c.fillRect(x1, y, x2, y+width-1, col)
}

func (c *canvas) vline(x, y1, y2, width int, col color.Color) {
	c.fillRect(x, y1, x+width-1, y2, col)
}

// paste composites src onto the canvas with its top-left corner at (x, y).
func (c *canvas) paste(src image.Image, x, y int) {
	r := src.Bounds()
	dst := image.Rect(x, y, x+r.Dx(), y+r.Dy())
	draw.Draw(c.img, dst, src, r.Min, draw.Src)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
