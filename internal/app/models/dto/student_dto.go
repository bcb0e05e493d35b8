package dto

import (
	"time"

	"github.com/placemate/placemate/internal/app/models"
)

// RegisterStudentRequest is the admin payload for creating a student
// account with its profile in one step
type RegisterStudentRequest struct {
	Email            string   `json:"email" binding:"required,email"`
	FirstName        string   `json:"first_name" binding:"required,min=2,max=100"`
	LastName         string   `json:"last_name" binding:"required,min=2,max=100"`
	Phone            *string  `json:"phone,omitempty"`
	ProgramID        int64    `json:"program_id" binding:"required"`
	EnrollmentNumber string   `json:"enrollment_number" binding:"required"`
	JoiningYear      int      `json:"joining_year" binding:"required,min=2000,max=2100"`
	CurrentCGPA      *float64 `json:"current_cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	TenthPercentage  *float64 `json:"tenth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	BacklogCount     int      `json:"backlog_count" binding:"min=0"`
}

// UpdateStudentSelfRequest is the subset of profile fields a student may
// update themselves
type UpdateStudentSelfRequest struct {
	CurrentCGPA      *float64 `json:"current_cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	TenthPercentage  *float64 `json:"tenth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	BacklogCount     *int     `json:"backlog_count,omitempty" binding:"omitempty,min=0"`
	ResumeURL        *string  `json:"resume_url,omitempty"`
}

// UpdateStudentAdminRequest is the staff-side profile update payload
type UpdateStudentAdminRequest struct {
	ProgramID        *int64   `json:"program_id,omitempty"`
	JoiningYear      *int     `json:"joining_year,omitempty" binding:"omitempty,min=2000,max=2100"`
	CurrentCGPA      *float64 `json:"current_cgpa,omitempty" binding:"omitempty,min=0,max=10"`
	TenthPercentage  *float64 `json:"tenth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	BacklogCount     *int     `json:"backlog_count,omitempty" binding:"omitempty,min=0"`
	IsVerified       *bool    `json:"is_verified,omitempty"`
	IsPlaced         *bool    `json:"is_placed,omitempty"`
}

// StudentFilter narrows student profile listings
type StudentFilter struct {
	ProgramID   *int64
	JoiningYear *int
	IsPlaced    *bool
	IsVerified  *bool
	Search      string
}

// StudentProfileResponse is the outward student profile representation
type StudentProfileResponse struct {
	ID               int64     `json:"id"`
	User             UserResponse `json:"user"`
	ProgramID        int64     `json:"program_id"`
	ProgramName      string    `json:"program_name,omitempty"`
	EnrollmentNumber string    `json:"enrollment_number"`
	JoiningYear      int       `json:"joining_year"`
	CurrentCGPA      *float64  `json:"current_cgpa,omitempty"`
	TenthPercentage  *float64  `json:"tenth_percentage,omitempty"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty"`
	BacklogCount     int       `json:"backlog_count"`
	ResumeURL        *string   `json:"resume_url,omitempty"`
	IsPlaced         bool      `json:"is_placed"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewStudentProfileResponse maps a profile model to its response form
func NewStudentProfileResponse(p *models.StudentProfile) StudentProfileResponse {
	resp := StudentProfileResponse{
		ID:               p.ID,
		ProgramID:        p.ProgramID,
		EnrollmentNumber: p.EnrollmentNumber,
		JoiningYear:      p.JoiningYear,
		CurrentCGPA:      p.CurrentCGPA,
		TenthPercentage:  p.TenthPercentage,
		TwelfthPercentage: p.TwelfthPercentage,
		BacklogCount:     p.BacklogCount,
		ResumeURL:        p.ResumeURL,
		IsPlaced:         p.IsPlaced,
		IsVerified:       p.IsVerified,
		CreatedAt:        p.CreatedAt,
	}
	if p.User != nil {
		resp.User = NewUserResponse(p.User)
	}
	if p.Program != nil {
		resp.ProgramName = p.Program.Name
	}
	return resp
}
