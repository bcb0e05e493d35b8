package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/services"
	"github.com/placemate/placemate/internal/middleware"
	"github.com/placemate/placemate/internal/pkg/helpers"
)

// PlacementController handles placement drives, company drives and jobs
type PlacementController struct {
	placementService *services.PlacementService
	logger           zerolog.Logger
}

// NewPlacementController creates a new PlacementController
func NewPlacementController(placementService *services.PlacementService, logger zerolog.Logger) *PlacementController {
	return &PlacementController{
		placementService: placementService,
		logger:           logger,
	}
}

// CreateDrive creates a hiring season
func (c *PlacementController) CreateDrive(ctx *gin.Context) {
	var req dto.CreatePlacementDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.placementService.CreateDrive(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Placement drive created", drive))
}

// GetDrive returns one hiring season
func (c *PlacementController) GetDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "driveId")
	if err != nil {
		return
	}

	drive, err := c.placementService.GetDriveByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Placement drive retrieved", drive))
}

// ListDrives returns hiring seasons, paginated
func (c *PlacementController) ListDrives(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	drives, total, err := c.placementService.ListDrives(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Placement drives retrieved", drives,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// UpdateDrive partially updates a hiring season
func (c *PlacementController) UpdateDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "driveId")
	if err != nil {
		return
	}

	var req dto.UpdatePlacementDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.placementService.UpdateDrive(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Placement drive updated", drive))
}

// DeleteDrive removes a hiring season
func (c *PlacementController) DeleteDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "driveId")
	if err != nil {
		return
	}

	if err := c.placementService.DeleteDrive(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Placement drive deleted", nil))
}

// CreateCompanyDrive opens a company's hiring cycle with its jobs
func (c *PlacementController) CreateCompanyDrive(ctx *gin.Context) {
	var req dto.CreateCompanyDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.placementService.CreateCompanyDrive(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Company drive created", drive))
}

// GetCompanyDrive returns one company drive with its jobs
func (c *PlacementController) GetCompanyDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyDriveId")
	if err != nil {
		return
	}

	drive, err := c.placementService.GetCompanyDriveByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company drive retrieved", drive))
}

// ListCompanyDrives returns company drives, paginated and filtered
func (c *PlacementController) ListCompanyDrives(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filter dto.CompanyDriveFilter
	if v := ctx.Query("placement_drive_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.PlacementDriveID = &id
		}
	}
	if v := ctx.Query("company_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CompanyID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := ctx.Query("drive_type"); v != "" {
		filter.DriveType = &v
	}

	drives, total, err := c.placementService.ListCompanyDrives(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Company drives retrieved", drives,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// UpdateCompanyDrive partially updates a company drive
func (c *PlacementController) UpdateCompanyDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyDriveId")
	if err != nil {
		return
	}

	var req dto.UpdateCompanyDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	drive, err := c.placementService.UpdateCompanyDrive(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company drive updated", drive))
}

// ListJobs returns all jobs under a company drive
func (c *PlacementController) ListJobs(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyDriveId")
	if err != nil {
		return
	}

	jobs, err := c.placementService.ListJobsByCompanyDrive(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Jobs retrieved", jobs))
}

// GetJob returns one job with its eligible programs
func (c *PlacementController) GetJob(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "jobId")
	if err != nil {
		return
	}

	job, err := c.placementService.GetJobByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Job retrieved", job))
}
