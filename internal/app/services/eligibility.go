package services

import (
	"fmt"

	"github.com/placemate/placemate/internal/app/models"
)

// CheckEligibility evaluates a student profile against one job's criteria.
// Checks run in a fixed order and stop at the first failure: program,
// CGPA for the program's degree level, 10th percentage, 12th percentage,
// backlogs. A criterion the job leaves unset is skipped. The returned
// reason names the observed and required values.
func CheckEligibility(profile *models.StudentProfile, job *models.Job) (bool, string) {
	if !containsID(job.EligibleProgramIDs, profile.ProgramID) {
		return false, "Your program is not eligible for this job"
	}

	if profile.Program != nil && profile.Program.Degree != nil {
		switch profile.Program.Degree.Level {
		case models.DegreeLevelUG:
			if job.MinUGCGPA != nil && cgpaOf(profile) < *job.MinUGCGPA {
				return false, fmt.Sprintf("UG CGPA %g below required %g", cgpaOf(profile), *job.MinUGCGPA)
			}
		case models.DegreeLevelPG:
			if job.MinPGCGPA != nil && cgpaOf(profile) < *job.MinPGCGPA {
				return false, fmt.Sprintf("PG CGPA %g below required %g", cgpaOf(profile), *job.MinPGCGPA)
			}
		}
	}

	if job.MinTenthPercentage != nil && valueOf(profile.TenthPercentage) < *job.MinTenthPercentage {
		return false, fmt.Sprintf("10th percentage %g below required %g", valueOf(profile.TenthPercentage), *job.MinTenthPercentage)
	}

	if job.MinTwelfthPercentage != nil && valueOf(profile.TwelfthPercentage) < *job.MinTwelfthPercentage {
		return false, fmt.Sprintf("12th percentage %g below required %g", valueOf(profile.TwelfthPercentage), *job.MinTwelfthPercentage)
	}

	if job.MaxBacklogs != nil && profile.BacklogCount > *job.MaxBacklogs {
		return false, fmt.Sprintf("Active backlogs %d exceed maximum %d", profile.BacklogCount, *job.MaxBacklogs)
	}

	return true, "Eligible"
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cgpaOf(profile *models.StudentProfile) float64 {
	return valueOf(profile.CurrentCGPA)
}

func valueOf(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
