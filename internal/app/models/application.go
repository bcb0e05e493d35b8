package models

import "time"

// Application statuses. Withdrawal is a deletion of the row, not a status.
const (
	ApplicationStatusApplied  = "Applied"
	ApplicationStatusOffered  = "Offered"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusDeclined = "Declined"
	ApplicationStatusRejected = "Rejected"
)

// applicationTransitions maps each status to the statuses reachable from it
var applicationTransitions = map[string][]string{
	ApplicationStatusApplied: {ApplicationStatusOffered, ApplicationStatusRejected},
	ApplicationStatusOffered: {ApplicationStatusAccepted, ApplicationStatusDeclined, ApplicationStatusRejected},
}

// CanTransition reports whether an application may move from one status
// to another
func CanTransition(from, to string) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CompanyDriveApplication defines a row in the 'company_drive_applications'
// table. A student applies to a company drive at most once.
type CompanyDriveApplication struct {
	ID             int64           `json:"id" db:"id"`
	CompanyDriveID int64           `json:"company_drive_id" db:"company_drive_id"`
	StudentID      int64           `json:"student_id" db:"student_id"`
	Status         string          `json:"status" db:"status"`
	OfferedJobID   *int64          `json:"offered_job_id,omitempty" db:"offered_job_id"`
	ResumeURL      *string         `json:"resume_url,omitempty" db:"resume_url"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
	CompanyDrive   *CompanyDrive   `json:"company_drive,omitempty"` // Relation, no db tag
	Student        *StudentProfile `json:"student,omitempty"`       // Relation, no db tag
	OfferedJob     *Job            `json:"offered_job,omitempty"`   // Relation, no db tag
	Preferences    []JobPreference `json:"preferences,omitempty"`   // Relation, no db tag
}

// JobPreference defines a row in the 'job_preferences' table, one ranked
// job choice within an application. Immutable after creation.
type JobPreference struct {
	ID              int64     `json:"id" db:"id"`
	ApplicationID   int64     `json:"application_id" db:"application_id"`
	JobID           int64     `json:"job_id" db:"job_id"`
	PreferenceOrder int       `json:"preference_order" db:"preference_order"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	Job             *Job      `json:"job,omitempty"` // Relation, no db tag
}
