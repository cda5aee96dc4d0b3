package secondaryfunctions

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/Projects4meji/LICQual/certificate"
)

// NewGenerator wires a certificate generator from the loaded configuration.
// store may be nil when no database is configured (preview generation).
func NewGenerator(cfg *Config, store certificate.NumberStore) *certificate.Generator {
	gen := certificate.NewGenerator(cfg.TemplateDir, cfg.FontDir, cfg.SiteURL)
	gen.Store = store
	gen.Storage = &LocalStorage{Dir: cfg.OutputDir}
	return gen
}

// GenerateCertificate builds the certificate for a registration, writes it
// to the output directory and returns the stored path.
func GenerateCertificate(gen *certificate.Generator, reg *certificate.Registration) (string, error) {
	if reg.IsRevoked {
		return "", fmt.Errorf("certificate for registration %d has been revoked", reg.ID)
	}

	data, err := gen.Generate(reg, false)
	if err != nil {
		return "", fmt.Errorf("error generating certificate: %v", err)
	}

	storage, ok := gen.Storage.(*LocalStorage)
	if !ok {
		return "", fmt.Errorf("generator has no local storage configured")
	}
	filename := fmt.Sprintf("%s.pdf", reg.CertificateNumber)
	if err := storage.Save(filename, data); err != nil {
		return "", fmt.Errorf("error saving certificate: %v", err)
	}

	path := filepath.Join(storage.Dir, filename)
	log.Printf("Certificate saved at: %s", path)
	return path, nil
}

// GenerateAll regenerates every certificate for a course. A failure on one
// registration is logged and skipped so it never aborts the batch.
func GenerateAll(gen *certificate.Generator, store *Store, courseID int64) (int, error) {
	ids, err := store.ListRegistrationIDs(courseID)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, id := range ids {
		reg, err := store.GetRegistration(id)
		if err != nil {
			log.Printf("Skipping registration %d: %v", id, err)
			continue
		}
		if _, err := GenerateCertificate(gen, reg); err != nil {
			log.Printf("Skipping registration %d: %v", id, err)
			continue
		}
		generated++
	}
	return generated, nil
}
