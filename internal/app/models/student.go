package models

import "time"

// StudentProfile defines a row in the 'student_profiles' table, one to one
// with a user. Percentage fields use a 0-100 scale, CGPA a 0-10 scale.
// A verified profile must carry all three academic metrics.
type StudentProfile struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	ProgramID        int64     `json:"program_id" db:"program_id"`
	EnrollmentNumber string    `json:"enrollment_number" db:"enrollment_number"`
	JoiningYear      int       `json:"joining_year" db:"joining_year"`
	CurrentCGPA      *float64  `json:"current_cgpa,omitempty" db:"current_cgpa"`
	TenthPercentage  *float64  `json:"tenth_percentage,omitempty" db:"tenth_percentage"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" db:"twelfth_percentage"`
	BacklogCount     int       `json:"backlog_count" db:"backlog_count"`
	ResumeURL        *string   `json:"resume_url,omitempty" db:"resume_url"`
	IsPlaced         bool      `json:"is_placed" db:"is_placed"`
	IsVerified       bool      `json:"is_verified" db:"is_verified"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
	User             *User     `json:"user,omitempty"`    // Relation, no db tag
	Program          *Program  `json:"program,omitempty"` // Relation, no db tag
}
