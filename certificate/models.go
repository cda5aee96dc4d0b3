// certificate/models.go
package certificate

import "time"

// Learner is the person the certificate is issued to.
type Learner struct {
	FullName string
	Email    string
}

// DisplayName returns the name printed on the certificate. Falls back to the
// email address, then to a generic placeholder, so page composition never
// receives an empty learner name.
func (l *Learner) DisplayName() string {
	if l == nil {
		return "Learner"
	}
	if name := trimmed(l.FullName); name != "" {
		return name
	}
	if email := trimmed(l.Email); email != "" {
		return email
	}
	return "Learner"
}

// Business is the training centre that registered the learner. Used only for
// display text, never validated beyond presence.
type Business struct {
	Name         string
	BusinessName string
}

// DisplayName prefers the formal business name over the account name.
func (b *Business) DisplayName() string {
	if b == nil {
		return "Business"
	}
	if name := trimmed(b.BusinessName); name != "" {
		return name
	}
	if name := trimmed(b.Name); name != "" {
		return name
	}
	return "Business"
}

// Unit is the smallest graded component of a qualification. Credits and
// GLHHours may be zero, in which case the section totals are divided evenly
// across the section's units at render time.
type Unit struct {
	Ref      string
	Title    string
	Order    int
	Credits  int
	GLHHours int
}

// Section groups units within a course (a year or module) and carries the
// aggregate credit/hour totals plus the pass/fail remarks wording.
type Section struct {
	Order    int
	Title    string
	Credits  int
	TQTHours int
	GLHHours int
	Remarks  string
	Units    []Unit
}

// Course is the qualification being certified.
type Course struct {
	Title        string
	CourseNumber string
	Sections     []Section
}

// TotalCredits sums the section credit totals. This is the figure shown as
// the course duration on page 1.
func (c *Course) TotalCredits() int {
	total := 0
	for i := range c.Sections {
		total += c.Sections[i].Credits
	}
	return total
}

// Registration links a learner, a course and a business and tracks issuance
// state. The engine reads it and, at most once, writes back lazily generated
// certificate/learner numbers.
type Registration struct {
	ID       int64
	Learner  *Learner
	Business *Business
	Course   *Course

	CertificateNumber   string
	LearnerNumber       string
	AwardedDate         *time.Time
	CertificateIssuedAt *time.Time
	IsRevoked           bool
}

// IssueDate is the date printed on the certificate: the operator-set awarded
// date if present, else the issuance timestamp, else time.Now as a last
// resort.
func (r *Registration) IssueDate() time.Time {
	if r.AwardedDate != nil {
		return *r.AwardedDate
	}
	if r.CertificateIssuedAt != nil {
		return *r.CertificateIssuedAt
	}
	return time.Now()
}
