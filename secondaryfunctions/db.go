package secondaryfunctions

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Projects4meji/LICQual/certificate"
	_ "github.com/go-sql-driver/mysql"
)

// Store is the MySQL-backed registration store. It satisfies
// certificate.NumberStore and loads the registration graph the engine reads.
type Store struct {
	db *sql.DB
}

// NewStore connects to the configured database and verifies the connection.
func NewStore(cfg *Config) (*Store, error) {
	dsn := cfg.DBUsername + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	log.Println("Connecting to the database...")
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("database is unreachable: %v", err)
	}
	log.Println("Database connection established successfully.")
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// CertificateNumberExists reports whether any registration already holds the
// given certificate number.
func (s *Store) CertificateNumberExists(code string) (bool, error) {
	return s.exists(`SELECT EXISTS(SELECT 1 FROM learner_registration WHERE certificate_number = ?)`, code)
}

// LearnerNumberExists reports whether any registration already holds the
// given learner number.
func (s *Store) LearnerNumberExists(number string) (bool, error) {
	return s.exists(`SELECT EXISTS(SELECT 1 FROM learner_registration WHERE learner_number = ?)`, number)
}

func (s *Store) exists(query, arg string) (bool, error) {
	var found bool
	if err := s.db.QueryRow(query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("uniqueness check failed: %v", err)
	}
	return found, nil
}

// SaveNumbers persists lazily generated numbers back onto the registration.
// Once written they are immutable; the WHERE clauses make sure an already
// issued number is never overwritten by a concurrent generation.
func (s *Store) SaveNumbers(regID int64, certificateNumber, learnerNumber string) error {
	_, err := s.db.Exec(
		`UPDATE learner_registration
		    SET certificate_number = COALESCE(certificate_number, ?),
		        learner_number     = COALESCE(learner_number, ?),
		        certificate_issued_at = COALESCE(certificate_issued_at, ?)
		  WHERE id = ?`,
		certificateNumber, learnerNumber, time.Now(), regID)
	if err != nil {
		return fmt.Errorf("error saving certificate numbers for registration %d: %v", regID, err)
	}
	return nil
}

// GetRegistration loads the full registration graph the certificate engine
// consumes: learner, business, course, and the course's ordered sections and
// units.
func (s *Store) GetRegistration(id int64) (*certificate.Registration, error) {
	reg := &certificate.Registration{
		ID:       id,
		Learner:  &certificate.Learner{},
		Business: &certificate.Business{},
		Course:   &certificate.Course{},
	}

	var (
		courseID     int64
		certNumber   sql.NullString
		learnerNo    sql.NullString
		awardedDate  sql.NullTime
		issuedAt     sql.NullTime
		businessName sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT r.course_id, r.certificate_number, r.learner_number,
		        r.awarded_date, r.certificate_issued_at, r.is_revoked,
		        u.full_name, u.email,
		        b.name, b.business_name,
		        c.title, c.course_number
		   FROM learner_registration r
		   JOIN users u ON u.id = r.learner_id
		   JOIN business b ON b.id = r.business_id
		   JOIN course c ON c.id = r.course_id
		  WHERE r.id = ?`, id).
		Scan(&courseID, &certNumber, &learnerNo,
			&awardedDate, &issuedAt, &reg.IsRevoked,
			&reg.Learner.FullName, &reg.Learner.Email,
			&reg.Business.Name, &businessName,
			&reg.Course.Title, &reg.Course.CourseNumber)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("registration %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching registration %d: %v", id, err)
	}

	reg.CertificateNumber = certNumber.String
	reg.LearnerNumber = learnerNo.String
	reg.Business.BusinessName = businessName.String
	if awardedDate.Valid {
		d := awardedDate.Time
		reg.AwardedDate = &d
	}
	if issuedAt.Valid {
		t := issuedAt.Time
		reg.CertificateIssuedAt = &t
	}

	sections, err := s.loadSections(courseID)
	if err != nil {
		return nil, err
	}
	reg.Course.Sections = sections
	return reg, nil
}

func (s *Store) loadSections(courseID int64) ([]certificate.Section, error) {
	rows, err := s.db.Query(
		`SELECT id, section_title, display_order, credits, tqt_hours, glh_hours, remarks
		   FROM qualification_section
		  WHERE course_id = ?
		  ORDER BY display_order`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading sections for course %d: %v", courseID, err)
	}
	defer rows.Close()

	var sections []certificate.Section
	var sectionIDs []int64
	for rows.Next() {
		var sID int64
		var sec certificate.Section
		if err := rows.Scan(&sID, &sec.Title, &sec.Order, &sec.Credits, &sec.TQTHours, &sec.GLHHours, &sec.Remarks); err != nil {
			return nil, fmt.Errorf("error scanning section: %v", err)
		}
		sections = append(sections, sec)
		sectionIDs = append(sectionIDs, sID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sections: %v", err)
	}

	for i, sID := range sectionIDs {
		units, err := s.loadUnits(sID)
		if err != nil {
			return nil, err
		}
		sections[i].Units = units
	}
	return sections, nil
}

func (s *Store) loadUnits(sectionID int64) ([]certificate.Unit, error) {
	rows, err := s.db.Query(
		`SELECT unit_ref, unit_title, display_order, credits, glh_hours
		   FROM qualification_unit
		  WHERE section_id = ?
		  ORDER BY display_order`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("error loading units for section %d: %v", sectionID, err)
	}
	defer rows.Close()

	var units []certificate.Unit
	for rows.Next() {
		var u certificate.Unit
		if err := rows.Scan(&u.Ref, &u.Title, &u.Order, &u.Credits, &u.GLHHours); err != nil {
			return nil, fmt.Errorf("error scanning unit: %v", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %v", err)
	}
	return units, nil
}

// ListRegistrationIDs returns the registration IDs for a course, used by the
// bulk issue/download loops.
func (s *Store) ListRegistrationIDs(courseID int64) ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM learner_registration WHERE course_id = ? ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations for course %d: %v", courseID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning registration id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
