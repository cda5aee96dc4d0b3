package certificate

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTemplatePNG writes a plain white template image for page n.
func writeTemplatePNG(t *testing.T, dir string, n int, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, pageFileName(n)), buf.Bytes(), 0o644))
}

func pageFileName(n int) string {
	switch n {
	case 1:
		return "page-1.png"
	default:
		return "page-2.png"
	}
}

// newTestGenerator wires a generator against a throwaway template directory
// and the embedded fallback fonts, with a deterministic number source.
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	dir := t.TempDir()
	writeTemplatePNG(t, dir, 1, 120, 170)
	writeTemplatePNG(t, dir, 2, 120, 170)

	g := NewGenerator(dir, t.TempDir(), "https://certs.example.com")
	g.rng = rand.New(rand.NewSource(1))
	return g
}

func sampleRegistration() *Registration {
	awarded := time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC)
	course := twoSectionCourse()
	course.Sections[1].Units[0].Ref = "W1"
	return &Registration{
		ID:          42,
		Learner:     &Learner{FullName: "Jordan Smith"},
		Business:    &Business{BusinessName: "Acme Training Centre"},
		Course:      course,
		AwardedDate: &awarded,
	}
}

func TestValidateRegistrationAggregatesProblems(t *testing.T) {
	reg := sampleRegistration()
	reg.Learner = nil
	reg.Course.Sections[0].Units[0].Ref = "  "
	reg.Course.Sections[1].Units[1].Title = ""

	err := ValidateRegistration(reg)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)

	msg := err.Error()
	assert.Contains(t, msg, "no associated learner")
	assert.Contains(t, msg, "Section 1, Unit 1: UNIT REF is missing or empty")
	assert.Contains(t, msg, "Section 2, Unit 2: UNIT TITLE is missing or empty")
}

func TestValidateRegistrationEmptySections(t *testing.T) {
	reg := sampleRegistration()
	reg.Course.Sections = nil

	err := ValidateRegistration(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no sections")
}

func TestValidateRegistrationOK(t *testing.T) {
	assert.NoError(t, ValidateRegistration(sampleRegistration()))
}

func TestGenerateProducesPDF(t *testing.T) {
	g := newTestGenerator(t)
	reg := sampleRegistration()

	data, err := g.Generate(reg, false)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF")

	// Numbers were generated lazily during issuance.
	assert.Regexp(t, `^ATC\d{6}$`, reg.CertificateNumber)
	assert.Regexp(t, `^\d{6}$`, reg.LearnerNumber)
}

func TestGenerateKeepsExistingNumbers(t *testing.T) {
	g := newTestGenerator(t)
	reg := sampleRegistration()
	reg.CertificateNumber = "ATC300001"
	reg.LearnerNumber = "300001"

	_, err := g.Generate(reg, false)
	require.NoError(t, err)
	assert.Equal(t, "ATC300001", reg.CertificateNumber)
	assert.Equal(t, "300001", reg.LearnerNumber)
}

func TestGenerateRejectsInvalidRegistration(t *testing.T) {
	g := newTestGenerator(t)
	reg := sampleRegistration()
	reg.Course = nil

	_, err := g.Generate(reg, false)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

// memoryStorage records saved files for assertions.
type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) Save(filename string, data []byte) error {
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[filename] = data
	return nil
}

func TestGenerateSavesToStorageWhenAsked(t *testing.T) {
	g := newTestGenerator(t)
	store := &memoryStorage{}
	g.Storage = store

	_, err := g.Generate(sampleRegistration(), true)
	require.NoError(t, err)
	require.Len(t, store.files, 1)
	for name := range store.files {
		assert.Contains(t, name, "-42-")
		assert.Contains(t, name, ".pdf")
	}
}

func TestGenerateSkipsStorageByDefault(t *testing.T) {
	g := newTestGenerator(t)
	store := &memoryStorage{}
	g.Storage = store

	_, err := g.Generate(sampleRegistration(), false)
	require.NoError(t, err)
	assert.Empty(t, store.files)
}

// recordingStore asserts the lazily generated numbers are persisted once.
type recordingStore struct {
	saved     int
	savedCert string
	savedLrn  string
}

func (s *recordingStore) CertificateNumberExists(string) (bool, error) { return false, nil }
func (s *recordingStore) LearnerNumberExists(string) (bool, error)     { return false, nil }
func (s *recordingStore) SaveNumbers(_ int64, cert, lrn string) error {
	s.saved++
	s.savedCert = cert
	s.savedLrn = lrn
	return nil
}

func TestGeneratePersistsNumbersThroughStore(t *testing.T) {
	g := newTestGenerator(t)
	store := &recordingStore{}
	g.Store = store
	reg := sampleRegistration()

	_, err := g.Generate(reg, false)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saved)
	assert.Equal(t, reg.CertificateNumber, store.savedCert)
	assert.Equal(t, reg.LearnerNumber, store.savedLrn)

	// A second generation reuses the stored numbers and does not write again.
	_, err = g.Generate(reg, false)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saved)
}

func TestGenerateManyUnitsPaginates(t *testing.T) {
	g := newTestGenerator(t)
	reg := sampleRegistration()

	var units []Unit
	for i := 1; i <= 60; i++ {
		units = append(units, Unit{
			Ref:     "U" + string(rune('A'+i%26)) + "0",
			Title:   "Unit of Competence",
			Order:   i,
			Credits: 2, GLHHours: 8,
		})
	}
	reg.Course.Sections = []Section{{Order: 1, Title: "All", Units: units}}

	data, err := g.Generate(reg, false)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	// 60 rows cannot fit one transcript page, so the PDF holds at least
	// three pages: cover plus two transcript pages. The count includes the
	// single /Type /Pages tree node.
	assert.GreaterOrEqual(t, bytes.Count(data, []byte("/Type /Page")), 4)
}
