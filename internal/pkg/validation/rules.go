package validation

import "regexp"

// Validation rule patterns
var (
	// Enrollment number pattern, digits only
	EnrollmentPattern = `^\d{6,12}$`

	// Phone number pattern, optional leading + then 7-15 digits
	PhonePattern = `^\+?\d{7,15}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Enrollment *regexp.Regexp
	Phone      *regexp.Regexp
}{
	Enrollment: regexp.MustCompile(EnrollmentPattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// IsValidEnrollment reports whether s matches the enrollment number format.
func IsValidEnrollment(s string) bool {
	return CompiledPatterns.Enrollment.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number.
func IsValidPhone(s string) bool {
	return CompiledPatterns.Phone.MatchString(s)
}

// IsValidPercentage reports whether v is a percentage in [0, 100].
func IsValidPercentage(v float64) bool {
	return v >= 0 && v <= 100
}

// IsValidCGPA reports whether v is a CGPA on a 10-point scale.
func IsValidCGPA(v float64) bool {
	return v >= 0 && v <= 10
}
