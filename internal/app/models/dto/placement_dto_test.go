package dto

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompanyDriveRequest() CreateCompanyDriveRequest {
	return CreateCompanyDriveRequest{
		PlacementDriveID:    1,
		CompanyID:           2,
		DriveType:           "FullTime",
		JobMode:             "Onsite",
		ApplicationDeadline: time.Now().Add(72 * time.Hour),
		Jobs: []JobInput{
			{Title: "Backend Engineer", EligibleProgramIDs: []int64{10}},
		},
	}
}

func TestCompanyDriveRequestDriveTypes(t *testing.T) {
	for _, driveType := range []string{"FullTime", "Internship", "Contract"} {
		req := validCompanyDriveRequest()
		req.DriveType = driveType
		assert.NoError(t, binding.Validator.ValidateStruct(req), driveType)
	}

	req := validCompanyDriveRequest()
	req.DriveType = "Placement"
	assert.Error(t, binding.Validator.ValidateStruct(req))
}

func TestJobInputPackageBounds(t *testing.T) {
	req := validCompanyDriveRequest()
	negative := -1.0
	req.Jobs[0].UGPackageMin = &negative
	assert.Error(t, binding.Validator.ValidateStruct(req))

	req = validCompanyDriveRequest()
	min := 600000.0
	max := 900000.0
	stipend := 40000.0
	req.Jobs[0].UGPackageMin = &min
	req.Jobs[0].UGPackageMax = &max
	req.Jobs[0].PGStipend = &stipend
	assert.NoError(t, binding.Validator.ValidateStruct(req))
}

func TestPlacementDriveRequestDates(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 10, 0)
	req := CreatePlacementDriveRequest{Name: "Placements 2026-27", StartDate: &start, EndDate: &end}
	require.NoError(t, binding.Validator.ValidateStruct(req))

	// Dates stay optional, a season can be created before scheduling.
	req = CreatePlacementDriveRequest{Name: "Placements 2027-28"}
	assert.NoError(t, binding.Validator.ValidateStruct(req))
}
