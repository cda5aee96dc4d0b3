package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Projects4meji/LICQual/certificate"
	"github.com/Projects4meji/LICQual/secondaryfunctions"
)

func main() {
	regID := flag.Int64("reg", 0, "registration ID to generate a certificate for (requires DB settings)")
	cleanupDays := flag.Int("cleanup", 0, "delete stored certificates older than this many days, then exit")
	flag.Parse()

	cfg := secondaryfunctions.LoadConfig()

	if *cleanupDays > 0 {
		if _, err := secondaryfunctions.CleanupOldFiles(cfg.OutputDir, *cleanupDays); err != nil {
			log.Fatalf("Cleanup failed: %v\n", err)
		}
		return
	}

	var reg *certificate.Registration
	var store certificate.NumberStore

	if *regID > 0 {
		if !cfg.HasDatabase() {
			log.Fatalln("DB_USERNAME and DB_NAME must be set to load a registration")
		}
		dbStore, err := secondaryfunctions.NewStore(cfg)
		if err != nil {
			log.Fatalf("Error opening registration store: %v\n", err)
		}
		defer dbStore.Close()
		store = dbStore

		reg, err = dbStore.GetRegistration(*regID)
		if err != nil {
			log.Fatalf("Error loading registration %d: %v\n", *regID, err)
		}
	} else {
		reg = sampleRegistration()
	}

	generator := secondaryfunctions.NewGenerator(cfg, store)
	path, err := secondaryfunctions.GenerateCertificate(generator, reg)
	if err != nil {
		log.Fatalf("Error generating certificate: %v\n", err)
	}
	fmt.Printf("Certificate saved at: %s\n", path)
}

// sampleRegistration lets the engine be exercised without a database.
func sampleRegistration() *certificate.Registration {
	awarded := time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC)
	return &certificate.Registration{
		ID:          1,
		Learner:     &certificate.Learner{FullName: "Dinithi Tharusha Pothuwila", Email: "dinithi@example.com"},
		Business:    &certificate.Business{Name: "Acme Training", BusinessName: "Acme Training Centre Ltd"},
		AwardedDate: &awarded,
		Course: &certificate.Course{
			Title:        "Level 5 Diploma in Agricultural Engineering",
			CourseNumber: "AGE-2051",
			Sections: []certificate.Section{
				{
					Order: 1, Title: "Year 1", Credits: 120, TQTHours: 1200, GLHHours: 600, Remarks: "Grade Pass",
					Units: []certificate.Unit{
						{Ref: "AGE0001-1", Title: "Introduction to Agricultural Engineering", Order: 1, Credits: 20, GLHHours: 100},
						{Ref: "AGE0001-2", Title: "Soil and Water Conservation Systems", Order: 2, Credits: 20, GLHHours: 100},
						{Ref: "AGE0001-3", Title: "Farm Machinery and Power Units", Order: 3},
						{Ref: "AGE0001-4", Title: "Irrigation System Design", Order: 4},
					},
				},
				{
					Order: 2, Title: "Year 2", Credits: 120, TQTHours: 1200, GLHHours: 600, Remarks: "Grade Pass",
					Units: []certificate.Unit{
						{Ref: "AGE0002-1", Title: "Post-Harvest Technology", Order: 1},
						{Ref: "AGE0002-2", Title: "Renewable Energy for Agriculture", Order: 2},
						{Ref: "AGE0002-3", Title: "Precision Farming and Automation", Order: 3},
					},
				},
			},
		},
	}
}
