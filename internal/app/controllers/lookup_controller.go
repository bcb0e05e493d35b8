package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/services"
	"github.com/placemate/placemate/internal/middleware"
)

// LookupController serves the read-only reference data endpoint
type LookupController struct {
	lookupService *services.LookupService
}

// NewLookupController creates a new LookupController
func NewLookupController(lookupService *services.LookupService) *LookupController {
	return &LookupController{lookupService: lookupService}
}

// Lookup returns one reference dataset selected by the type query
// parameter. States, cities and programs accept an optional parent_id
// to narrow by country, state or degree respectively.
func (c *LookupController) Lookup(ctx *gin.Context) {
	var parentID *int64
	if v := ctx.Query("parent_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse("Invalid parent_id parameter", dto.ErrorCodeValidation, nil))
			return
		}
		parentID = &id
	}

	var (
		data interface{}
		err  error
	)
	switch ctx.Query("type") {
	case "countries":
		data, err = c.lookupService.ListCountries(ctx.Request.Context())
	case "states":
		data, err = c.lookupService.ListStates(ctx.Request.Context(), parentID)
	case "cities":
		data, err = c.lookupService.ListCities(ctx.Request.Context(), parentID)
	case "degrees":
		data, err = c.lookupService.ListDegrees(ctx.Request.Context())
	case "programs":
		data, err = c.lookupService.ListPrograms(ctx.Request.Context(), parentID)
	default:
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Unknown lookup type", dto.ErrorCodeValidation, nil))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Lookup retrieved", data))
}
