// certificate/generator.go
package certificate

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// NumberStore is the uniqueness oracle and persistence point for lazily
// generated certificate/learner numbers. A nil store means every candidate is
// accepted and nothing is persisted (useful for previews and tests).
type NumberStore interface {
	CertificateNumberExists(code string) (bool, error)
	LearnerNumberExists(number string) (bool, error)
	SaveNumbers(regID int64, certificateNumber, learnerNumber string) error
}

// Storage persists a finished certificate PDF. Implementations live outside
// the engine (local disk, object storage).
type Storage interface {
	Save(filename string, data []byte) error
}

// Generator composes multi-page certificate PDFs for registrations.
type Generator struct {
	Layout    *Layout
	Templates *TemplateLoader
	Fonts     *FontResolver
	SiteURL   string
	Store     NumberStore
	Storage   Storage

	rng *rand.Rand
}

// NewGenerator creates a generator over the given template and font
// directories using the default diploma layout.
func NewGenerator(templateDir, fontDir, siteURL string) *Generator {
	layout := DefaultLayout()
	return &Generator{
		Layout:    layout,
		Templates: NewTemplateLoader(templateDir, layout),
		Fonts:     NewFontResolver(fontDir),
		SiteURL:   siteURL,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate builds the complete certificate PDF for reg and returns it as a
// byte sequence. When saveToStorage is set and a Storage is configured, the
// PDF is additionally persisted; on-demand generation for viewing or
// emailing passes false and never touches storage. The output is never
// cached — certificates are cheap enough to regenerate per request.
func (g *Generator) Generate(reg *Registration, saveToStorage bool) ([]byte, error) {
	log.Printf("Starting certificate generation for registration %d", reg.ID)

	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}
	if err := g.ensureNumbers(reg); err != nil {
		return nil, err
	}

	data, err := g.buildRenderData(reg)
	if err != nil {
		return nil, err
	}

	page1, err := g.composePage1(data, reg.Course.TotalCredits())
	if err != nil {
		return nil, err
	}
	transcript, err := g.composeTranscriptPages(data)
	if err != nil {
		return nil, err
	}
	pages := append([]*image.RGBA{page1}, transcript...)

	pdfData, err := g.renderPDF(pages)
	if err != nil {
		return nil, err
	}
	if len(pdfData) == 0 {
		return nil, ErrEmptyPDF
	}

	if saveToStorage && g.Storage != nil {
		filename := fmt.Sprintf("%s-%d-%s.pdf", reg.CertificateNumber, reg.ID, time.Now().Format("20060102150405"))
		if err := g.Storage.Save(filename, pdfData); err != nil {
			return nil, fmt.Errorf("failed to store certificate PDF: %w", err)
		}
		log.Printf("Certificate %s stored as %s", reg.CertificateNumber, filename)
	}
	return pdfData, nil
}

// ValidateRegistration checks everything the composers need and aggregates
// every problem into one error, so an operator can fix all issues in a
// single pass instead of resubmitting per field.
func ValidateRegistration(reg *Registration) error {
	verr := &ValidationError{}

	if reg.Course == nil {
		verr.add("Registration has no associated course")
	}
	if reg.Business == nil {
		verr.add("Registration has no associated business")
	}
	if reg.Learner == nil {
		verr.add("Registration has no associated learner")
	}
	if reg.Course != nil {
		if len(reg.Course.Sections) == 0 {
			verr.add("Course %q has no sections - add sections before issuing certificates", reg.Course.Title)
		}
		for s := range reg.Course.Sections {
			section := &reg.Course.Sections[s]
			if len(section.Units) == 0 {
				verr.add("Section %d has NO UNITS - each section must have at least one unit", section.Order)
			}
			for idx := range section.Units {
				unit := &section.Units[idx]
				if trimmed(unit.Ref) == "" {
					verr.add("Section %d, Unit %d: UNIT REF is missing or empty", section.Order, idx+1)
				}
				if trimmed(unit.Title) == "" {
					verr.add("Section %d, Unit %d: UNIT TITLE is missing or empty", section.Order, idx+1)
				}
			}
		}
	}
	return verr.orNil()
}

// ensureNumbers generates the learner and certificate numbers exactly once,
// lazily, on first issuance, and persists them through the store. Concurrent
// issuance of the same registration may race here; the bounded retry in the
// generators is the mitigation, not a lock.
func (g *Generator) ensureNumbers(reg *Registration) error {
	exists := func(check func(string) (bool, error)) func(string) (bool, error) {
		if g.Store == nil {
			return func(string) (bool, error) { return false, nil }
		}
		return check
	}

	changed := false
	if trimmed(reg.LearnerNumber) == "" {
		number, err := generateLearnerNumber(g.rand(), exists(g.learnerExists))
		if err != nil {
			return err
		}
		reg.LearnerNumber = number
		changed = true
	}
	if trimmed(reg.CertificateNumber) == "" {
		code, err := generateCertificateNumber(g.rand(), exists(g.certificateExists))
		if err != nil {
			return err
		}
		reg.CertificateNumber = code
		changed = true
	}

	if changed && g.Store != nil {
		if err := g.Store.SaveNumbers(reg.ID, reg.CertificateNumber, reg.LearnerNumber); err != nil {
			return fmt.Errorf("failed to persist generated numbers: %w", err)
		}
	}
	log.Printf("Certificate number: %s, Learner number: %s", reg.CertificateNumber, reg.LearnerNumber)
	return nil
}

func (g *Generator) certificateExists(code string) (bool, error) {
	return g.Store.CertificateNumberExists(code)
}

func (g *Generator) learnerExists(number string) (bool, error) {
	return g.Store.LearnerNumberExists(number)
}

func (g *Generator) rand() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.rng
}

// buildRenderData resolves every display value once, including the QR code
// for the verification URL, before any page is composed.
func (g *Generator) buildRenderData(reg *Registration) (*renderData, error) {
	courseTitle := trimmed(reg.Course.Title)
	if courseTitle == "" {
		courseTitle = "Course"
	}

	verifyURL := VerificationURL(reg, g.SiteURL)
	qr, err := qrImage(verifyURL, g.Layout.Scale(g.Layout.Page1.QRCode.Size))
	if err != nil {
		return nil, err
	}

	return &renderData{
		course:       reg.Course,
		learnerName:  reg.Learner.DisplayName(),
		courseTitle:  courseTitle,
		businessName: reg.Business.DisplayName(),
		courseNumber: trimmed(reg.Course.CourseNumber),
		certNumber:   trimmed(reg.CertificateNumber),
		dateText:     formatDateWithOrdinal(reg.IssueDate()),
		qr:           qr,
	}, nil
}

// renderPDF serializes the rendered pages into one A4 portrait PDF, each
// page image laid full-bleed with zero margins.
func (g *Generator) renderPDF(pages []*image.RGBA) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyPDF
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, page := range pages {
		jpg, err := encodeJPEG(page)
		if err != nil {
			return nil, err
		}
		pdf.AddPage()
		name := fmt.Sprintf("certificate-page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(jpg))
		pageW, pageH := pdf.GetPageSize()
		pdf.ImageOptions(name, 0, 0, pageW, pageH, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return out.Bytes(), nil
}
