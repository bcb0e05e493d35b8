package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestCreateCompanyRequestCompanySizeRange(t *testing.T) {
	base := CreateCompanyRequest{
		Name:  "Acme Corp",
		Email: "hr@acme.example",
		Phone: "+91-9876543210",
	}

	for size := 0; size <= 4; size++ {
		req := base
		s := size
		req.CompanySize = &s
		assert.NoError(t, binding.Validator.ValidateStruct(req), "size %d", size)
	}

	req := base
	tooBig := 5
	req.CompanySize = &tooBig
	assert.Error(t, binding.Validator.ValidateStruct(req))
}

func TestCreateCompanyRequestYearFounded(t *testing.T) {
	req := CreateCompanyRequest{
		Name:  "Acme Corp",
		Email: "hr@acme.example",
		Phone: "+91-9876543210",
	}
	year := 1799
	req.YearFounded = &year
	assert.Error(t, binding.Validator.ValidateStruct(req))

	year = 1998
	assert.NoError(t, binding.Validator.ValidateStruct(req))
}
