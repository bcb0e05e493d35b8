package dto

// CreateCompanyRequest creates a company record
type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,max=30"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	Description *string `json:"description,omitempty"`
	YearFounded *int    `json:"year_founded,omitempty" binding:"omitempty,min=1800,max=2100"`
	CompanySize *int    `json:"company_size,omitempty" binding:"omitempty,min=0,max=4"`
	CityID      *int64  `json:"city_id,omitempty"`
}

// UpdateCompanyRequest partially updates a company record
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	Description *string `json:"description,omitempty"`
	YearFounded *int    `json:"year_founded,omitempty" binding:"omitempty,min=1800,max=2100"`
	CompanySize *int    `json:"company_size,omitempty" binding:"omitempty,min=0,max=4"`
	CityID      *int64  `json:"city_id,omitempty"`
}

// CompanyFilter narrows company listings
type CompanyFilter struct {
	Search string
	CityID *int64
}
