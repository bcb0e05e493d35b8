package models

import "time"

// Company drive statuses
const (
	DriveStatusOpen   = "Open"
	DriveStatusClosed = "Closed"
)

// Drive types
const (
	DriveTypeFullTime   = "FullTime"
	DriveTypeInternship = "Internship"
	DriveTypeContract   = "Contract"
)

// Job modes
const (
	JobModeOnsite = "Onsite"
	JobModeRemote = "Remote"
	JobModeHybrid = "Hybrid"
)

// PlacementDrive defines a row in the 'placement_drives' table, a named
// hiring season spanning multiple companies
type PlacementDrive struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	StartDate   *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CompanyDrive defines a row in the 'company_drives' table, one company's
// hiring cycle within a placement drive
type CompanyDrive struct {
	ID                  int64           `json:"id" db:"id"`
	PlacementDriveID    int64           `json:"placement_drive_id" db:"placement_drive_id"`
	CompanyID           int64           `json:"company_id" db:"company_id"`
	DriveType           string          `json:"drive_type" db:"drive_type"`
	JobMode             string          `json:"job_mode" db:"job_mode"`
	ApplicationDeadline time.Time       `json:"application_deadline" db:"application_deadline"`
	Status              string          `json:"status" db:"status"`
	MultipleAllowed     bool            `json:"multiple_allowed" db:"multiple_allowed"`
	Rounds              []string        `json:"rounds,omitempty" db:"rounds"`
	Locations           []string        `json:"locations,omitempty" db:"locations"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
	Company             *Company        `json:"company,omitempty"`         // Relation, no db tag
	PlacementDrive      *PlacementDrive `json:"placement_drive,omitempty"` // Relation, no db tag
	Jobs                []Job           `json:"jobs,omitempty"`            // Relation, no db tag
}

// IsAcceptingApplications reports whether the drive is open and its
// deadline has not passed
func (d *CompanyDrive) IsAcceptingApplications(now time.Time) bool {
	return d.Status == DriveStatusOpen && now.Before(d.ApplicationDeadline)
}

// Job defines a row in the 'jobs' table. The Min* fields carry the
// eligibility thresholds; nil means the criterion is not applied.
// Descriptions, package ranges and stipends are kept per degree level
// since one posting can hire UG and PG students on different terms.
type Job struct {
	ID                   int64     `json:"id" db:"id"`
	CompanyDriveID       int64     `json:"company_drive_id" db:"company_drive_id"`
	Title                string    `json:"title" db:"title"`
	DescriptionUG        *string   `json:"description_ug,omitempty" db:"description_ug"`
	DescriptionPG        *string   `json:"description_pg,omitempty" db:"description_pg"`
	UGPackageMin         *float64  `json:"ug_package_min,omitempty" db:"ug_package_min"`
	UGPackageMax         *float64  `json:"ug_package_max,omitempty" db:"ug_package_max"`
	PGPackageMin         *float64  `json:"pg_package_min,omitempty" db:"pg_package_min"`
	PGPackageMax         *float64  `json:"pg_package_max,omitempty" db:"pg_package_max"`
	UGStipend            *float64  `json:"ug_stipend,omitempty" db:"ug_stipend"`
	PGStipend            *float64  `json:"pg_stipend,omitempty" db:"pg_stipend"`
	MinTenthPercentage   *float64  `json:"min_tenth_percentage,omitempty" db:"min_tenth_percentage"`
	MinTwelfthPercentage *float64  `json:"min_twelfth_percentage,omitempty" db:"min_twelfth_percentage"`
	MinUGCGPA            *float64  `json:"min_ug_cgpa,omitempty" db:"min_ug_cgpa"`
	MinPGCGPA            *float64  `json:"min_pg_cgpa,omitempty" db:"min_pg_cgpa"`
	MaxBacklogs          *int      `json:"max_backlogs,omitempty" db:"max_backlogs"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
	EligibleProgramIDs   []int64   `json:"eligible_program_ids,omitempty"` // Relation via job_programs
	EligiblePrograms     []Program `json:"eligible_programs,omitempty"`    // Relation, no db tag
}
