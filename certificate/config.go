// certificate/config.go
package certificate

import "image/color"

// Font file names, resolved against the font directory by the FontResolver.
const (
	FontCandaraRegular    = "Candara-Regular.ttf"
	FontCandaraBold       = "Candara-Bold.ttf"
	FontCorbelRegular     = "Corbel-Regular.ttf"
	FontBookAntiqua       = "Book Antiqua.ttf"
	FontBookAntiquaBold   = "Book Antiqua Bold.ttf"
	FontMontserratRegular = "Montserrat-Regular.ttf"
	FontMontserratBold    = "Montserrat-Bold.ttf"
)

var (
	black     = color.RGBA{0, 0, 0, 255}
	white     = color.RGBA{255, 255, 255, 255}
	brightRed = color.RGBA{255, 0, 0, 255}
	deepBlue  = color.RGBA{0, 100, 200, 255}
)

// FieldStyle is the layout rule for one overlaid value. Static labels live on
// the template; the engine only draws values. Coordinates and sizes are
// logical (unscaled) pixels.
type FieldStyle struct {
	X, Y       int
	Font       string
	Size       int
	Color      color.RGBA
	Align      string // "", "center" or "right"
	Spacing    int    // extra pixels between letters
	Thickness  int    // faux-bold stroke width, not scaled
	LineHeight int    // vertical centering reference; Size when zero
	YOffset    int    // fine adjustment, not scaled
}

// QRSlot positions a QR code by its top-left corner.
type QRSlot struct {
	X, Y, Size int
}

// Page1Layout places the fixed fields of the certificate page.
type Page1Layout struct {
	LearnerName        FieldStyle
	QualificationTitle FieldStyle
	BusinessName       FieldStyle
	CourseNumber       FieldStyle
	CourseDuration     FieldStyle
	CertificateNumber  FieldStyle
	IssuedDate         FieldStyle
	QRCode             QRSlot
}

// TranscriptLayout places the transcript header, the units table columns
// (UNIT | TITLE | CREDIT | GLH | GRADE) and the page anchor constants. Only
// the table start is a true position; everything in the footer zone is
// anchored to the measured table bottom at render time.
type TranscriptLayout struct {
	LearnerName  FieldStyle
	CourseTitle  FieldStyle
	BusinessName FieldStyle

	UnitRef    FieldStyle // column content centered
	UnitTitle  FieldStyle // left column edge; content wrapped and centered
	UnitCredit FieldStyle
	UnitGLH    FieldStyle
	UnitGrade  FieldStyle

	TableStartY int
	RowHeight   int

	HeaderY      int
	CourseTitleY int
	BusinessY    int
	SummaryY     int
	DateY        int
	LeftMargin   int
	RightMargin  int

	QRSize         int
	QRBottomOffset int // distance from page bottom to QR top
	FooterReserve  int // vertical space the footer needs below the table on the final page
}

// Layout is the complete immutable layout configuration for one certificate
// style. Authored at the logical base resolution; every coordinate, size and
// line height is multiplied by ScaleFactor when rendered.
type Layout struct {
	// ScaleFactor trades render quality against file size. 2.0 doubles the
	// output resolution relative to the authored coordinates.
	ScaleFactor float64

	// Logical page dimensions (A4 portrait).
	PageWidth  int
	PageHeight int

	Page1      Page1Layout
	Transcript TranscriptLayout
}

// Scale converts a logical coordinate or size to output pixels.
func (l *Layout) Scale(v int) int {
	return int(float64(v) * l.ScaleFactor)
}

// Unscale converts an output coordinate back to logical pixels.
func (l *Layout) Unscale(v int) int {
	if l.ScaleFactor == 0 {
		return 0
	}
	return int(float64(v)/l.ScaleFactor + 0.5)
}

// DefaultLayout is the diploma layout the engine ships with.
func DefaultLayout() *Layout {
	return &Layout{
		ScaleFactor: 2.0,
		PageWidth:   842,
		PageHeight:  1191,
		Page1: Page1Layout{
			LearnerName: FieldStyle{
				X: 425, Y: 300, Font: FontCandaraBold, Size: 32, Color: black, Align: "center", Spacing: 1,
			},
			QualificationTitle: FieldStyle{
				X: 425, Y: 370, Font: FontCandaraBold, Size: 16, Color: black, Align: "center", Spacing: 1,
			},
			BusinessName: FieldStyle{
				X: 425, Y: 500, Font: FontCandaraBold, Size: 16, Color: white, Align: "center", Spacing: 1,
			},
			CourseNumber: FieldStyle{
				X: 320, Y: 527, Font: FontCandaraRegular, Size: 11, Color: black, LineHeight: 14,
			},
			CourseDuration: FieldStyle{
				X: 320, Y: 543, Font: FontCandaraRegular, Size: 11, Color: black, LineHeight: 14,
			},
			CertificateNumber: FieldStyle{
				X: 320, Y: 561, Font: FontCandaraRegular, Size: 11, Color: black, LineHeight: 14, YOffset: -2,
			},
			IssuedDate: FieldStyle{
				X: 320, Y: 578, Font: FontCandaraRegular, Size: 11, Color: black, LineHeight: 14, YOffset: -6,
			},
			QRCode: QRSlot{X: 30, Y: 650, Size: 80},
		},
		Transcript: TranscriptLayout{
			LearnerName:  FieldStyle{Font: FontCandaraBold, Size: 24, Color: black},
			CourseTitle:  FieldStyle{Font: FontCandaraBold, Size: 18, Color: black},
			BusinessName: FieldStyle{Font: FontCandaraBold, Size: 16, Color: black},

			UnitRef:    FieldStyle{X: 85, Font: FontCandaraRegular, Size: 10, Color: black},
			UnitTitle:  FieldStyle{X: 125, Font: FontCandaraRegular, Size: 10, Color: black},
			UnitCredit: FieldStyle{X: 415, Font: FontCandaraRegular, Size: 10, Color: black},
			UnitGLH:    FieldStyle{X: 460, Font: FontCandaraRegular, Size: 10, Color: black},
			UnitGrade:  FieldStyle{X: 495, Font: FontCandaraRegular, Size: 10, Color: black},

			TableStartY: 268,
			RowHeight:   24,

			HeaderY:      140,
			CourseTitleY: 165,
			BusinessY:    230,
			SummaryY:     360,
			DateY:        390,
			LeftMargin:   75,
			RightMargin:  75,

			QRSize:         80,
			QRBottomOffset: 100,
			FooterReserve:  150,
		},
	}
}
