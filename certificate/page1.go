// certificate/page1.go
package certificate

import (
	"image"
	"strconv"
)

// renderData carries the precomputed display values shared by the page
// composers. All values are already empty-string safe.
type renderData struct {
	course       *Course
	learnerName  string
	courseTitle  string
	businessName string
	courseNumber string
	certNumber   string
	dateText     string
	qr           image.Image
}

// composePage1 overlays the certificate fields onto the first template page:
// learner name, qualification title, business name, course number, duration,
// certificate number and issue date, each with its own layout rule.
func (g *Generator) composePage1(data *renderData, totalCredits int) (*image.RGBA, error) {
	img, err := g.Templates.OpenPage(1)
	if err != nil {
		return nil, err
	}
	c := newCanvas(img, g.Layout, g.Fonts)
	p1 := &g.Layout.Page1

	// Fixed-width value fields, vertically centered against their configured
	// line height. Labels are printed on the template.
	g.drawPage1Value(c, p1.CourseNumber, data.courseNumber)
	g.drawPage1Value(c, p1.CourseDuration, pluralCredits(totalCredits))
	g.drawPage1Value(c, p1.CertificateNumber, data.certNumber)
	g.drawPage1Value(c, p1.IssuedDate, data.dateText)

	g.drawLearnerName(c, data.learnerName)
	g.drawQualificationTitle(c, data.courseTitle)
	g.drawBusinessName(c, data.businessName)

	slot := p1.QRCode
	c.paste(data.qr, g.Layout.Scale(slot.X), g.Layout.Scale(slot.Y))
	return img, nil
}

func pluralCredits(total int) string {
	return strconv.Itoa(total) + " Credits"
}

func (g *Generator) drawPage1Value(c *canvas, style FieldStyle, value string) {
	if value == "" {
		return
	}
	face := c.fonts.Face(style.Font, g.Layout.Scale(style.Size))
	lineH := style.LineHeight
	if lineH == 0 {
		lineH = style.Size
	}
	_, textH, _ := textBounds(face, value)
	y := g.Layout.Scale(style.Y) + (g.Layout.Scale(lineH)-textH)/2 + style.YOffset
	c.drawText(value, g.Layout.Scale(style.X), y, face, style.Color)
}

// drawLearnerName centers the name with the slight rightward bias the
// template's seal placement requires.
func (g *Generator) drawLearnerName(c *canvas, name string) {
	style := g.Layout.Page1.LearnerName
	face := c.fonts.Face(style.Font, g.Layout.Scale(style.Size))
	if style.Align == "center" {
		w := textWidth(face, name)
		x := (c.width()-w)/2 + g.Layout.Scale(15)
		c.drawText(name, x, g.Layout.Scale(style.Y), face, style.Color)
		return
	}
	c.drawTextSpaced(name, g.Layout.Scale(style.X), g.Layout.Scale(style.Y), face, style.Color, g.Layout.Scale(style.Spacing), style.Thickness)
}

func (g *Generator) drawQualificationTitle(c *canvas, title string) {
	style := g.Layout.Page1.QualificationTitle
	if style.Align != "center" {
		face := c.fonts.Face(style.Font, g.Layout.Scale(style.Size))
		c.drawTextSpaced(title, g.Layout.Scale(style.X), g.Layout.Scale(style.Y), face, style.Color, g.Layout.Scale(style.Spacing), style.Thickness)
		return
	}

	maxWidth := maxInt(g.Layout.Scale(200), c.width()-g.Layout.Scale(110)*2)
	maxHeight := g.Layout.Scale(42)
	face, lines, lineH := c.fitTextToBox(title, style.Font, g.Layout.Scale(style.Size), maxWidth, maxHeight)
	if len(lines) == 0 {
		return
	}
	y0 := g.Layout.Scale(style.Y) - g.Layout.Scale(6)
	startY := y0 + (maxHeight-lineH*len(lines))/2
	if len(lines) == 1 {
		_, h, _ := textBounds(face, lines[0])
		startY = y0 + (maxHeight-h)/2
	}
	for i, line := range lines {
		w := textWidth(face, line)
		x := (c.width()-w)/2 + g.Layout.Scale(15)
		c.drawText(line, x, startY+i*lineH, face, style.Color)
	}
}

// drawBusinessName wraps the centre name under "Approved Training Centre"
// over a filled banner. It deliberately shares the qualification title's
// face and base size so the two blocks stay visually matched.
func (g *Generator) drawBusinessName(c *canvas, name string) {
	style := g.Layout.Page1.BusinessName
	titleStyle := g.Layout.Page1.QualificationTitle
	if style.Align != "center" {
		face := c.fonts.Face(titleStyle.Font, g.Layout.Scale(titleStyle.Size))
		c.drawTextSpaced(name, g.Layout.Scale(style.X), g.Layout.Scale(style.Y), face, style.Color, g.Layout.Scale(style.Spacing), style.Thickness)
		return
	}

	maxWidth := maxInt(g.Layout.Scale(200), c.width()-g.Layout.Scale(110)*2)
	y0 := g.Layout.Scale(style.Y) - g.Layout.Scale(6)
	nextY := g.Layout.Scale(g.Layout.Page1.CourseNumber.Y)
	maxHeight := maxInt(g.Layout.Scale(18), nextY-y0-g.Layout.Scale(2))

	face, lines, lineH := c.fitTextToBox(name, titleStyle.Font, g.Layout.Scale(titleStyle.Size), maxWidth, maxHeight)
	if len(lines) == 0 {
		return
	}
	totalH := lineH * len(lines)
	startY := y0 + (maxHeight-totalH)/2
	if len(lines) == 1 {
		_, h, _ := textBounds(face, lines[0])
		totalH = h
		startY = y0 + (maxHeight-h)/2
	}

	padding := g.Layout.Scale(2)
	maxLineW := 0
	for _, line := range lines {
		maxLineW = maxInt(maxLineW, textWidth(face, line))
	}
	bgX1 := (c.width()-maxLineW)/2 + g.Layout.Scale(15) - padding
	bgY1 := maxInt(y0-padding, startY-padding)
	bgX2 := bgX1 + maxLineW + padding*2
	bgY2 := minInt(nextY-g.Layout.Scale(2), startY+totalH+padding)
	if bgY2 <= bgY1 {
		bgY2 = bgY1 + g.Layout.Scale(1)
	}
	c.fillRect(bgX1, bgY1, bgX2, bgY2, deepBlue)

	for i, line := range lines {
		w := textWidth(face, line)
		x := (c.width()-w)/2 + g.Layout.Scale(15)
		c.drawText(line, x, startY+i*lineH, face, style.Color)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
