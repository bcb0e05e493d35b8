package helpers

import "database/sql"

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullInt64 converts an int64 pointer to sql.NullInt64.
func GetNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// GetNullFloat64 converts a float64 pointer to sql.NullFloat64.
func GetNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
