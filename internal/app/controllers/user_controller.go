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

// UserController handles user account and role management operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// Register creates a user account with the given roles. The initial
// password is generated and emailed to the new user.
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("User created", dto.NewUserResponse(user)))
}

// GetMe returns the caller's own account
func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.userService.GetByID(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User retrieved", dto.NewUserResponse(user)))
}

// UpdateMe updates the caller's own profile fields
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile updated", dto.NewUserResponse(user)))
}

// GetByID returns one user account
func (c *UserController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User retrieved", dto.NewUserResponse(user)))
}

// List returns user accounts, paginated and optionally filtered by search
func (c *UserController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.userService.List(ctx.Request.Context(), ctx.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Users retrieved", responses,
		helpers.NewPaginationInfo(ctx, total, page, size)))
}

// UpdateRoles replaces a user's role assignments
func (c *UserController) UpdateRoles(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	var req dto.UpdateUserRolesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.UpdateRoles(ctx.Request.Context(), middleware.GetUserID(ctx), id, req.RoleIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Roles updated", dto.NewUserResponse(user)))
}

// SetActivation enables or disables a user account
func (c *UserController) SetActivation(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "userId")
	if err != nil {
		return
	}

	var req dto.UpdateUserActivationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.userService.SetActivation(ctx.Request.Context(), middleware.GetUserID(ctx), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Activation updated", nil))
}

// CreateRole creates a new named role
func (c *UserController) CreateRole(ctx *gin.Context) {
	var req dto.CreateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	role, err := c.userService.CreateRole(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Role created", role))
}

// ListRoles returns all roles
func (c *UserController) ListRoles(ctx *gin.Context) {
	roles, err := c.userService.ListRoles(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Roles retrieved", roles))
}

// parseIDParam reads a positive integer path parameter, writing the
// error response itself on failure
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid "+name+" parameter", dto.ErrorCodeValidation, nil))
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return id, nil
}
