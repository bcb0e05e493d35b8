package dto

import "time"

// CreatePlacementDriveRequest creates a hiring season
type CreatePlacementDriveRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=200"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// UpdatePlacementDriveRequest partially updates a hiring season
type UpdatePlacementDriveRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// JobInput describes one opening created together with a company drive
type JobInput struct {
	Title                string   `json:"title" binding:"required,min=2,max=200"`
	DescriptionUG        *string  `json:"description_ug,omitempty"`
	DescriptionPG        *string  `json:"description_pg,omitempty"`
	UGPackageMin         *float64 `json:"ug_package_min,omitempty" binding:"omitempty,min=0"`
	UGPackageMax         *float64 `json:"ug_package_max,omitempty" binding:"omitempty,min=0"`
	PGPackageMin         *float64 `json:"pg_package_min,omitempty" binding:"omitempty,min=0"`
	PGPackageMax         *float64 `json:"pg_package_max,omitempty" binding:"omitempty,min=0"`
	UGStipend            *float64 `json:"ug_stipend,omitempty" binding:"omitempty,min=0"`
	PGStipend            *float64 `json:"pg_stipend,omitempty" binding:"omitempty,min=0"`
	MinTenthPercentage   *float64 `json:"min_tenth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	MinTwelfthPercentage *float64 `json:"min_twelfth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	MinUGCGPA            *float64 `json:"min_ug_cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	MinPGCGPA            *float64 `json:"min_pg_cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	MaxBacklogs          *int     `json:"max_backlogs,omitempty" binding:"omitempty,min=0"`
	EligibleProgramIDs   []int64  `json:"eligible_program_ids" binding:"required,min=1"`
}

// CreateCompanyDriveRequest opens one company's hiring cycle within a
// placement drive, together with its jobs
type CreateCompanyDriveRequest struct {
	PlacementDriveID    int64      `json:"placement_drive_id" binding:"required"`
	CompanyID           int64      `json:"company_id" binding:"required"`
	DriveType           string     `json:"drive_type" binding:"required,oneof=FullTime Internship Contract"`
	JobMode             string     `json:"job_mode" binding:"required,oneof=Onsite Remote Hybrid"`
	ApplicationDeadline time.Time  `json:"application_deadline" binding:"required"`
	MultipleAllowed     bool       `json:"multiple_allowed"`
	Rounds              []string   `json:"rounds,omitempty"`
	Locations           []string   `json:"locations,omitempty"`
	Jobs                []JobInput `json:"jobs" binding:"required,min=1,dive"`
}

// UpdateCompanyDriveRequest partially updates a company drive
type UpdateCompanyDriveRequest struct {
	DriveType           *string    `json:"drive_type,omitempty" binding:"omitempty,oneof=FullTime Internship Contract"`
	JobMode             *string    `json:"job_mode,omitempty" binding:"omitempty,oneof=Onsite Remote Hybrid"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	Status              *string    `json:"status,omitempty" binding:"omitempty,oneof=Open Closed"`
	MultipleAllowed     *bool      `json:"multiple_allowed,omitempty"`
	Rounds              []string   `json:"rounds,omitempty"`
	Locations           []string   `json:"locations,omitempty"`
}

// CompanyDriveFilter narrows company drive listings
type CompanyDriveFilter struct {
	PlacementDriveID *int64
	CompanyID        *int64
	Status           *string
	DriveType        *string
}
