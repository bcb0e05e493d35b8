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

// StudentController handles student account and profile operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Register creates a student account together with its profile
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.studentService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student registered", dto.NewStudentProfileResponse(profile)))
}

// GetMe returns the caller's own student profile
func (c *StudentController) GetMe(ctx *gin.Context) {
	profile, err := c.studentService.GetByUserID(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile retrieved", dto.NewStudentProfileResponse(profile)))
}

// UpdateMe updates the self-service subset of the caller's profile
func (c *StudentController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateStudentSelfRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.studentService.UpdateSelf(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile updated", dto.NewStudentProfileResponse(profile)))
}

// List returns student profiles, paginated and filtered
func (c *StudentController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := dto.StudentFilter{Search: ctx.Query("search")}
	if v := ctx.Query("program_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ProgramID = &id
		}
	}
	if v := ctx.Query("joining_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.JoiningYear = &year
		}
	}
	if v := ctx.Query("is_placed"); v != "" {
		if placed, err := strconv.ParseBool(v); err == nil {
			filter.IsPlaced = &placed
		}
	}
	if v := ctx.Query("is_verified"); v != "" {
		if verified, err := strconv.ParseBool(v); err == nil {
			filter.IsVerified = &verified
		}
	}

	profiles, total, err := c.studentService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, dto.NewStudentProfileResponse(p))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Students retrieved", responses,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// GetByUserID returns one student's profile by user ID
func (c *StudentController) GetByUserID(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	profile, err := c.studentService.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile retrieved", dto.NewStudentProfileResponse(profile)))
}

// Update applies a staff-side profile update, including verification
func (c *StudentController) Update(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	var req dto.UpdateStudentAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.studentService.UpdateByUserID(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile updated", dto.NewStudentProfileResponse(profile)))
}

// MarkAsPlaced records a student as placed
func (c *StudentController) MarkAsPlaced(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	profile, err := c.studentService.MarkAsPlaced(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student marked as placed", dto.NewStudentProfileResponse(profile)))
}
