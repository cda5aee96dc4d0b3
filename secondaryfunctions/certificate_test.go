package secondaryfunctions

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Projects4meji/LICQual/certificate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	templates := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 120, 170))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "page-1.png"), buf.Bytes(), 0o644))

	return &Config{
		SiteURL:     "https://certs.example.com",
		TemplateDir: templates,
		FontDir:     t.TempDir(),
		OutputDir:   t.TempDir(),
	}
}

func testRegistration() *certificate.Registration {
	awarded := time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC)
	return &certificate.Registration{
		ID:          7,
		Learner:     &certificate.Learner{FullName: "Jordan Smith"},
		Business:    &certificate.Business{BusinessName: "Acme Training Centre"},
		AwardedDate: &awarded,
		Course: &certificate.Course{
			Title:        "Certificate in Welding",
			CourseNumber: "WLD-101",
			Sections: []certificate.Section{{
				Order: 1, Title: "Core", Credits: 12, GLHHours: 48, Remarks: "Pass",
				Units: []certificate.Unit{
					{Ref: "W1", Title: "Arc Welding", Order: 1},
					{Ref: "W2", Title: "Workshop Safety", Order: 2},
				},
			}},
		},
	}
}

func TestGenerateCertificateWritesPDF(t *testing.T) {
	cfg := testConfig(t)
	gen := NewGenerator(cfg, nil)

	path, err := GenerateCertificate(gen, testRegistration())
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputDir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateCertificateRejectsRevoked(t *testing.T) {
	cfg := testConfig(t)
	gen := NewGenerator(cfg, nil)

	reg := testRegistration()
	reg.IsRevoked = true

	_, err := GenerateCertificate(gen, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}
