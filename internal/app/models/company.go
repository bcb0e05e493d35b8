package models

import "time"

// Company size bands, stored as small integers
const (
	CompanySizeSelf    = 0
	CompanySizeUpTo10  = 1
	CompanySizeUpTo50  = 2
	CompanySizeUpTo500 = 3
	CompanySizeOver500 = 4
)

// Company defines a row in the 'companies' table. Name, email and phone
// are all unique.
type Company struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Description *string   `json:"description,omitempty" db:"description"`
	YearFounded *int      `json:"year_founded,omitempty" db:"year_founded"`
	CompanySize *int      `json:"company_size,omitempty" db:"company_size"`
	CityID      *int64    `json:"city_id,omitempty" db:"city_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	City        *City     `json:"city,omitempty"` // Relation, no db tag
}
