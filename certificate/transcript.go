// certificate/transcript.go
//
// Transcript page composition: the units table, its paginator and the
// dynamically anchored footer. Courses range from a handful of units to
// dozens, so everything below the table is positioned relative to the
// measured table bottom, never at page-absolute coordinates.
package certificate

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/font"
)

// unitRow is one row of the flattened transcript: a unit together with the
// section metadata its display values are derived from.
type unitRow struct {
	Unit           *Unit
	Section        *Section
	SectionCredits int
	SectionGLH     int
	UnitsInSection int
	GlobalIndex    int // 1-based position across the whole course
}

// flattenUnits builds the ordered row list by walking every section's units
// in section order, then unit order.
func flattenUnits(course *Course) []unitRow {
	var rows []unitRow
	idx := 0
	for s := range course.Sections {
		section := &course.Sections[s]
		for u := range section.Units {
			idx++
			rows = append(rows, unitRow{
				Unit:           &section.Units[u],
				Section:        section,
				SectionCredits: section.Credits,
				SectionGLH:     section.GLHHours,
				UnitsInSection: len(section.Units),
				GlobalIndex:    idx,
			})
		}
	}
	return rows
}

// creditValue returns the unit's own credits, or the section total divided
// evenly across the section's units when the unit carries none. Integer
// floor division: the remainder is dropped, not redistributed.
func (r unitRow) creditValue() int {
	if r.Unit.Credits != 0 {
		return r.Unit.Credits
	}
	if r.SectionCredits != 0 && r.UnitsInSection > 0 {
		return r.SectionCredits / r.UnitsInSection
	}
	return 0
}

// glhValue mirrors creditValue for guided learning hours.
func (r unitRow) glhValue() int {
	if r.Unit.GLHHours != 0 {
		return r.Unit.GLHHours
	}
	if r.SectionGLH != 0 && r.UnitsInSection > 0 {
		return r.SectionGLH / r.UnitsInSection
	}
	return 0
}

// refText falls back to a positional label when the reference code is empty.
func (r unitRow) refText() string {
	if ref := trimmed(r.Unit.Ref); ref != "" {
		return ref
	}
	return fmt.Sprintf("Unit %d", r.GlobalIndex)
}

// gradeText derives the displayed grade from the section's free-text remarks
// by case-insensitive substring match. Anything that names neither pass nor
// fail defaults to "Pass".
func gradeText(remarks string) string {
	lower := strings.ToLower(trimmed(remarks))
	if strings.Contains(lower, "pass") {
		return "Pass"
	}
	if strings.Contains(lower, "fail") {
		return "Fail"
	}
	return "Pass"
}

// pageSlice is one transcript page's share of the flattened unit list.
type pageSlice struct {
	Start, End int
	Last       bool
}

// splitRows distributes total rows across transcript pages. Non-final pages
// may use the space the footer would otherwise occupy, so they hold
// maxRowsNonLast rows; the final page must leave room for the footer and
// holds at most maxRowsLast. Loop invariant: while the remainder exceeds
// maxRowsLast another non-final chunk is taken, never larger than what
// leaves a renderable final page.
func splitRows(total, maxRowsNonLast, maxRowsLast int) []pageSlice {
	maxRowsNonLast = maxInt(1, maxRowsNonLast)
	maxRowsLast = maxInt(1, maxRowsLast)

	if total <= maxRowsLast {
		return []pageSlice{{Start: 0, End: total, Last: true}}
	}
	var slices []pageSlice
	start := 0
	remaining := total
	for remaining > maxRowsLast {
		take := minInt(maxRowsNonLast, remaining-maxRowsLast)
		slices = append(slices, pageSlice{Start: start, End: start + take})
		start += take
		remaining -= take
	}
	return append(slices, pageSlice{Start: start, End: total, Last: true})
}

// tableGeometry holds the scaled column edges shared by the header and the
// data rows.
type tableGeometry struct {
	left, right                int
	unitEnd                    int
	titleStart, titleEnd       int
	creditStart, creditEnd     int
	glhStart, glhEnd           int
	gradeStart                 int
	dividers                   [4]int
	headerTop, headerBottom    int
	rowHeight, headerRowHeight int
}

func (g *Generator) tableGeometryFor(tableStartY int) tableGeometry {
	l := g.Layout
	tl := &l.Transcript
	titleX := l.Scale(tl.UnitTitle.X)
	creditX := l.Scale(tl.UnitCredit.X)
	glhX := l.Scale(tl.UnitGLH.X)
	gradeX := l.Scale(tl.UnitGrade.X)

	geo := tableGeometry{
		left:            l.Scale(tl.UnitRef.X - 12),
		right:           l.Scale(tl.UnitGrade.X + 50),
		unitEnd:         titleX - l.Scale(8),
		titleStart:      titleX,
		titleEnd:        creditX - l.Scale(8),
		creditStart:     creditX - l.Scale(8),
		creditEnd:       glhX - l.Scale(5),
		glhStart:        glhX - l.Scale(5),
		glhEnd:          gradeX - l.Scale(5),
		gradeStart:      gradeX - l.Scale(5),
		headerTop:       l.Scale(tableStartY - 20),
		rowHeight:       l.Scale(tl.RowHeight),
		headerRowHeight: l.Scale(18),
	}
	geo.dividers = [4]int{titleX - l.Scale(8), creditX - l.Scale(8), glhX - l.Scale(5), gradeX - l.Scale(5)}
	geo.headerBottom = geo.headerTop + geo.headerRowHeight
	return geo
}

// drawUnitsTable renders the bordered five-column table for the given rows,
// starting at the logical tableStartY, and returns the scaled bottom edge of
// the table.
func (g *Generator) drawUnitsTable(c *canvas, rows []unitRow, tableStartY int) (int, error) {
	l := g.Layout
	tl := &l.Transcript
	geo := g.tableGeometryFor(tableStartY)

	yPosition := l.Scale(tableStartY)
	tableBottom := geo.headerBottom + geo.rowHeight*maxInt(1, len(rows))

	// Inverted header band, outer border and column dividers.
	c.fillRect(geo.left, geo.headerTop, geo.right, geo.headerBottom, brightRed)
	c.strokeRect(geo.left, geo.headerTop, geo.right, tableBottom, 1, black)
	for _, x := range geo.dividers {
		if geo.left < x && x < geo.right {
			c.vline(x, geo.headerTop, tableBottom, 1, black)
		}
	}
	c.hline(geo.left, geo.right, geo.headerBottom, 1, black)

	headerFace := c.fonts.Face(FontCandaraBold, l.Scale(11))
	g.drawTableHeader(c, headerFace, geo)

	for i := 1; i <= len(rows); i++ {
		c.hline(geo.left, geo.right, yPosition+i*geo.rowHeight, 1, black)
	}

	cellFace := c.fonts.Face(tl.UnitRef.Font, l.Scale(tl.UnitRef.Size))
	for _, row := range rows {
		if trimmed(row.Unit.Title) == "" {
			return 0, fmt.Errorf("Section %d, Unit %d: Unit Title is missing", row.Section.Order, row.GlobalIndex)
		}

		c.drawCellCentered(row.refText(), geo.left, geo.unitEnd, yPosition, geo.rowHeight, cellFace, black)
		g.drawTitleCell(c, trimmed(row.Unit.Title), geo, yPosition)
		c.drawCellCentered(strconv.Itoa(row.creditValue()), geo.creditStart, geo.creditEnd, yPosition, geo.rowHeight, cellFace, black)
		c.drawCellCentered(strconv.Itoa(row.glhValue()), geo.glhStart, geo.glhEnd, yPosition, geo.rowHeight, cellFace, black)
		c.drawCellCentered(gradeText(row.Section.Remarks), geo.gradeStart, geo.right, yPosition, geo.rowHeight, cellFace, black)

		yPosition += geo.rowHeight
	}
	return tableBottom, nil
}

func (g *Generator) drawTableHeader(c *canvas, face font.Face, geo tableGeometry) {
	headers := []struct {
		text       string
		start, end int
		leftAlign  bool
	}{
		{"UNIT", geo.left, geo.unitEnd, false},
		{"TITLE", geo.titleStart, geo.titleEnd, true},
		{"CREDIT", geo.creditStart, geo.creditEnd, false},
		{"GLH", geo.glhStart, geo.glhEnd, false},
		{"GRADE", geo.gradeStart, geo.right, false},
	}
	for _, h := range headers {
		w, th, _ := textBounds(face, h.text)
		x := (h.start+h.end)/2 - w/2
		if h.leftAlign {
			x = h.start
		}
		y := geo.headerTop + (geo.headerRowHeight-th)/2
		c.drawText(h.text, x, y, face, white)
	}
}

// drawCellCentered centers a single-line value both ways within its cell.
func (c *canvas) drawCellCentered(text string, colStart, colEnd, cellTop, cellHeight int, face font.Face, col color.Color) {
	w, h, _ := textBounds(face, text)
	x := (colStart+colEnd)/2 - w/2
	y := cellTop + (cellHeight-h)/2
	c.drawText(text, x, y, face, col)
}

// drawTitleCell wraps and shrinks the unit title within its column, centered
// vertically (and horizontally on the column center) in the row.
func (g *Generator) drawTitleCell(c *canvas, title string, geo tableGeometry, cellTop int) {
	l := g.Layout
	tl := &l.Transcript
	maxWidth := maxInt(l.Scale(40), (geo.titleEnd-geo.titleStart)-l.Scale(4))
	maxHeight := maxInt(l.Scale(10), geo.rowHeight-l.Scale(4))

	face, lines, lineH := c.fitTextToBox(title, tl.UnitTitle.Font, l.Scale(tl.UnitTitle.Size), maxWidth, maxHeight)
	if len(lines) == 0 {
		return
	}
	startY := cellTop + (geo.rowHeight-lineH*len(lines))/2
	if len(lines) == 1 {
		_, h, _ := textBounds(face, lines[0])
		startY = cellTop + (geo.rowHeight-h)/2
	}
	center := (geo.titleStart + geo.titleEnd) / 2
	for i, line := range lines {
		w := textWidth(face, line)
		c.drawText(line, center-w/2, startY+i*lineH, face, black)
	}
}

// footerLayout holds the scaled Y anchors of the final transcript page's
// footer block, all derived from the measured table bottom.
type footerLayout struct {
	SummaryY       int
	LanguageY      int
	QualificationY int
	CertInfoY      int
	CertDateY      int
}

func (g *Generator) footerLayoutFor(tableBottom int) footerLayout {
	anchor := tableBottom + g.Layout.Scale(10)
	return footerLayout{
		SummaryY:       anchor + g.Layout.Scale(18),
		LanguageY:      anchor + g.Layout.Scale(45),
		QualificationY: anchor + g.Layout.Scale(65),
		CertInfoY:      anchor + g.Layout.Scale(85),
		CertDateY:      anchor + g.Layout.Scale(105),
	}
}

// composeTranscriptPages renders the transcript: header block, the units
// table split across as many pages as needed, and on the final page the
// summary, language and certificate lines followed by the QR code.
func (g *Generator) composeTranscriptPages(data *renderData) ([]*image.RGBA, error) {
	l := g.Layout
	tl := &l.Transcript

	page, err := g.Templates.OpenPage(2)
	if err != nil {
		return nil, err
	}
	c := newCanvas(page, l, g.Fonts)

	leftX := l.Scale(tl.LeftMargin)
	maxTextWidth := c.width() - l.Scale(tl.LeftMargin+tl.RightMargin)

	// Header block: learner, course, business. Sizes are trimmed down from
	// the page 1 styles so the transcript header stays subordinate.
	nameFace := c.fonts.Face(tl.LearnerName.Font, l.Scale(reduced(tl.LearnerName.Size)))
	c.drawText(data.learnerName, leftX, l.Scale(tl.HeaderY), nameFace, tl.LearnerName.Color)

	courseY := l.Scale(tl.CourseTitleY)
	usedCourseH, _ := c.drawWrappedText(data.courseTitle, leftX, courseY,
		tl.CourseTitle.Font, l.Scale(reduced(tl.CourseTitle.Size)), tl.CourseTitle.Color,
		maxTextWidth, l.Scale(60))

	bizFace := c.fonts.Face(tl.BusinessName.Font, l.Scale(reduced(tl.BusinessName.Size)))
	c.drawText(data.businessName, leftX, l.Scale(tl.BusinessY), bizFace, tl.BusinessName.Color)

	// Push the table down when a long course title wrapped onto extra lines.
	tableYScaled := maxInt(l.Scale(tl.TableStartY), courseY+maxInt(usedCourseH, l.Scale(18))+l.Scale(18))
	tableStartY := l.Unscale(tableYScaled)

	rows := flattenUnits(data.course)
	totalCredits, totalGLH := 0, 0
	for _, row := range rows {
		totalCredits += row.creditValue()
		totalGLH += row.glhValue()
	}

	geo := g.tableGeometryFor(tableStartY)
	qrSize := l.Scale(tl.QRSize)
	qrY := c.height() - l.Scale(tl.QRBottomOffset)

	maxBottomNonLast := qrY - l.Scale(10)
	maxBottomLast := qrY - l.Scale(tl.FooterReserve)
	maxRowsNonLast := maxInt(1, (maxBottomNonLast-geo.headerBottom)/geo.rowHeight)
	maxRowsLast := maxInt(1, (maxBottomLast-geo.headerBottom)/geo.rowHeight)

	var pages []*image.RGBA
	for i, slice := range splitRows(len(rows), maxRowsNonLast, maxRowsLast) {
		if i > 0 {
			page, err = g.Templates.OpenPage(2)
			if err != nil {
				return nil, err
			}
			c = newCanvas(page, l, g.Fonts)
		}

		tableBottom, err := g.drawUnitsTable(c, rows[slice.Start:slice.End], tableStartY)
		if err != nil {
			return nil, err
		}

		if !slice.Last {
			// The transcript template was designed as a single page; paint
			// out its footer zone so it does not bleed through on
			// continuation pages.
			coverStart := maxInt(tableBottom+l.Scale(5), l.Scale(tl.SummaryY-10))
			if coverStart < c.height() {
				c.fillRect(0, coverStart, c.width()-1, c.height()-1, white)
			}
			pages = append(pages, page)
			continue
		}

		g.drawTranscriptFooter(c, data, totalCredits, totalGLH, tableBottom)

		qrX := (c.width() - qrSize) / 2
		c.paste(data.qr, qrX, qrY)
		pages = append(pages, page)
	}
	return pages, nil
}

// reduced trims a page 1 font size for the transcript header block.
func reduced(size int) int {
	return int(float64(size) * 0.83)
}

// drawTranscriptFooter draws everything below the table on the final
// transcript page. Every Y coordinate comes from footerLayoutFor, so the
// block follows the table whether the course has one unit or fifty.
func (g *Generator) drawTranscriptFooter(c *canvas, data *renderData, totalCredits, totalGLH, tableBottom int) {
	l := g.Layout
	f := g.footerLayoutFor(tableBottom)
	leftX := l.Scale(l.Transcript.LeftMargin)

	labelFace := c.fonts.Face(FontCandaraRegular, l.Scale(11))
	valueFace := c.fonts.Face(FontCandaraBold, l.Scale(11))

	// Summary line: totals in red bold, pipe-separated, grading type last.
	x := leftX
	x = c.drawLabelled(x, f.SummaryY, "Total Credits Achieved:", labelFace, strconv.Itoa(totalCredits), valueFace, brightRed, l.Scale(25))
	c.drawText("|", x, f.SummaryY, labelFace, black)
	x += l.Scale(5)
	x = c.drawLabelled(x, f.SummaryY, "Total GLH Achieved:", labelFace, strconv.Itoa(totalGLH), valueFace, brightRed, l.Scale(25))
	c.drawText("|", x, f.SummaryY, labelFace, black)
	x += l.Scale(5)
	c.drawLabelled(x, f.SummaryY, "Grading Type:", labelFace, "Pass/Fail", labelFace, black, 0)

	// Language line.
	c.drawLabelled(leftX, f.LanguageY, "Language of Assessment:", labelFace, "English", labelFace, black, 0)

	// Qualification sentence with the award date in bold.
	sentence := "The learner has qualified for the above award on"
	c.drawText(sentence, leftX, f.QualificationY, labelFace, black)
	sw, sh, _ := textBounds(labelFace, sentence)
	_, dh, _ := textBounds(valueFace, data.dateText)
	c.drawText(data.dateText, leftX+sw+l.Scale(6), f.QualificationY+(sh-dh)/2, valueFace, black)

	// Course number | certificate number.
	x = leftX
	x = c.drawLabelledTight(x, f.CertInfoY, "Course Number:", labelFace, data.courseNumber, valueFace, black)
	c.drawText("|", x, f.CertInfoY, labelFace, black)
	x += l.Scale(5)
	c.drawLabelledTight(x, f.CertInfoY, "Certificate Number:", labelFace, data.certNumber, valueFace, black)

	// Issue date line.
	c.drawLabelledTight(leftX, f.CertDateY, "Certificate Issue Date:", labelFace, data.dateText, valueFace, black)
}

// drawLabelled draws a label and its value (vertically center-aligned to the
// label) and returns the X position after a fixed-width value slot, used for
// the pipe separators of the summary line.
func (c *canvas) drawLabelled(x, y int, label string, labelFace font.Face, value string, valueFace font.Face, valueCol color.Color, slotAfter int) int {
	c.drawText(label, x, y, labelFace, black)
	lw, lh, _ := textBounds(labelFace, label)
	vx := x + lw + c.layout.Scale(5)
	_, vh, _ := textBounds(valueFace, value)
	c.drawText(value, vx, y+(lh-vh)/2, valueFace, valueCol)
	return vx + slotAfter
}

// drawLabelledTight is drawLabelled with the continuation point right after
// the value's measured width.
func (c *canvas) drawLabelledTight(x, y int, label string, labelFace font.Face, value string, valueFace font.Face, valueCol color.Color) int {
	c.drawText(label, x, y, labelFace, black)
	lw, lh, _ := textBounds(labelFace, label)
	vx := x + lw + c.layout.Scale(5)
	_, vh, _ := textBounds(valueFace, value)
	c.drawText(value, vx, y+(lh-vh)/2, valueFace, valueCol)
	return vx + textWidth(valueFace, value) + c.layout.Scale(5)
}
