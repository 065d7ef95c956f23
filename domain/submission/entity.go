package submission

import (
	"strings"

	"github.com/fundwit/go-commons/types"
)

// Submission is the durable record of one admitted project submission.
// The enrollment number is the primary key, so the create-if-absent write
// on it is the final uniqueness guard.
type Submission struct {
	EnrollmentNumber string `json:"enrollment_number" gorm:"primary_key;size:12"`

	Email         string `json:"email" gorm:"size:254"`
	FullName      string `json:"full_name" gorm:"size:100"`
	ContactNumber string `json:"contact_number" gorm:"size:10"`
	ProjectName   string `json:"project_name" gorm:"size:200"`
	SourceURL     string `json:"source_url" gorm:"size:2048"`

	SubmittedAt types.Timestamp `json:"submitted_at" sql:"type:DATETIME(6) NOT NULL"`
}

func (Submission) TableName() string {
	return "project_submissions"
}

// SubmissionCreation carries the raw form input of one submit attempt.
type SubmissionCreation struct {
	Email            string `json:"email"`
	EnrollmentNumber string `json:"enrollment_number"`
	FullName         string `json:"full_name"`
	ContactNumber    string `json:"contact_number"`
	ProjectName      string `json:"project_name"`
	SourceURL        string `json:"source_url"`
}

// Normalize captures the creation into a record: every field is trimmed of
// surrounding whitespace and email is lowercased for comparison and storage.
func (c SubmissionCreation) Normalize() Submission {
	return Submission{
		Email:            strings.ToLower(strings.TrimSpace(c.Email)),
		EnrollmentNumber: strings.TrimSpace(c.EnrollmentNumber),
		FullName:         strings.TrimSpace(c.FullName),
		ContactNumber:    strings.TrimSpace(c.ContactNumber),
		ProjectName:      strings.TrimSpace(c.ProjectName),
		SourceURL:        strings.TrimSpace(c.SourceURL),
	}
}

const (
	FieldEmail            = "email"
	FieldEnrollmentNumber = "enrollment_number"
	FieldFullName         = "full_name"
	FieldContactNumber    = "contact_number"
	FieldProjectName      = "project_name"
	FieldSourceURL        = "source_url"
)

type FieldConflict struct {
	Field            string `json:"field"`
	ConflictingValue string `json:"conflictingValue"`
}

// DuplicateCheckResult describes the colliding fields of the first stored
// record that conflicts with a candidate. Not persisted.
type DuplicateCheckResult struct {
	Duplicate bool            `json:"duplicate"`
	Conflicts []FieldConflict `json:"conflicts"`
}
