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

// CompanyController handles company catalog operations
type CompanyController struct {
	companyService *services.CompanyService
	logger         zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService, logger zerolog.Logger) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		logger:         logger,
	}
}

// Create registers a new company
func (c *CompanyController) Create(ctx *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	company, err := c.companyService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Company created", company))
}

// GetByID returns one company
func (c *CompanyController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyId")
	if err != nil {
		return
	}

	company, err := c.companyService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company retrieved", company))
}

// List returns companies, paginated and filtered
func (c *CompanyController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := dto.CompanyFilter{Search: ctx.Query("search")}
	if v := ctx.Query("city_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CityID = &id
		}
	}

	companies, total, err := c.companyService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Companies retrieved", companies,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// Update partially updates a company
func (c *CompanyController) Update(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyId")
	if err != nil {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	company, err := c.companyService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company updated", company))
}

// Delete removes a company
func (c *CompanyController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "companyId")
	if err != nil {
		return
	}

	if err := c.companyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company deleted", nil))
}
