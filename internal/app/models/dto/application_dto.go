package dto

// JobPreferenceInput is one ranked job choice in a submission
type JobPreferenceInput struct {
	JobID           int64 `json:"job_id" binding:"required"`
	PreferenceOrder int   `json:"preference_order" binding:"required,min=1"`
}

// SubmitApplicationRequest applies a student to a company drive with an
// ordered set of job preferences
type SubmitApplicationRequest struct {
	CompanyDriveID int64                `json:"company_drive_id" binding:"required"`
	Preferences    []JobPreferenceInput `json:"preferences" binding:"required,min=1,dive"`
	ResumeURL      *string              `json:"resume_url,omitempty"`
}

// OfferJobRequest extends an offer on an application
type OfferJobRequest struct {
	JobID int64 `json:"job_id" binding:"required"`
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	CompanyDriveID *int64
	StudentID      *int64
	Status         *string
}
