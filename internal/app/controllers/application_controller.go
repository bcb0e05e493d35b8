package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/services"
	"github.com/placemate/placemate/internal/middleware"
	"github.com/placemate/placemate/internal/pkg/helpers"
)

// ApplicationController handles application submission, withdrawal and
// the offer lifecycle
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Submit applies the caller to a company drive with ranked job preferences
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	app, err := c.applicationService.Submit(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Application submitted", app))
}

// Withdraw deletes the caller's own application while it is still editable
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	if err := c.applicationService.Withdraw(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Application withdrawn", nil))
}

// Offer extends a job offer on an application
func (c *ApplicationController) Offer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	var req dto.OfferJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.applicationService.OfferJob(ctx.Request.Context(), id, req.JobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Offer extended", nil))
}

// Accept accepts the offer on the caller's own application
func (c *ApplicationController) Accept(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	if err := c.applicationService.AcceptOffer(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Offer accepted", nil))
}

// Decline declines the offer on the caller's own application
func (c *ApplicationController) Decline(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	if err := c.applicationService.DeclineOffer(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Offer declined", nil))
}

// Reject rejects an application
func (c *ApplicationController) Reject(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	if err := c.applicationService.Reject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Application rejected", nil))
}

// GetByID returns one application. Students only see their own;
// placement team callers see any.
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "applicationId")
	if err != nil {
		return
	}

	staff := middleware.GetActiveRole(ctx) != models.RoleStudent
	app, err := c.applicationService.GetByID(ctx.Request.Context(), id, middleware.GetUserID(ctx), staff)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Application retrieved", app))
}

// List returns applications. Students see only their own; placement team
// callers see all, with drive, student and status filters.
func (c *ApplicationController) List(ctx *gin.Context) {
	if middleware.GetActiveRole(ctx) == models.RoleStudent {
		c.ListOwn(ctx)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filter dto.ApplicationFilter
	if v := ctx.Query("company_drive_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CompanyDriveID = &id
		}
	}
	if v := ctx.Query("student_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.StudentID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}

	apps, total, err := c.applicationService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Applications retrieved", apps,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// ListOwn returns the caller's own applications
func (c *ApplicationController) ListOwn(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	apps, total, err := c.applicationService.ListOwn(ctx.Request.Context(), middleware.GetUserID(ctx), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Applications retrieved", apps,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}
