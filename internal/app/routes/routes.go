package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placemate/placemate/internal/app/controllers"
	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	companyController *controllers.CompanyController,
	placementController *controllers.PlacementController,
	applicationController *controllers.ApplicationController,
	lookupController *controllers.LookupController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", nil))
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Limit())

	// --- Public auth routes ---
	v1.POST("/token", authController.Login)
	v1.POST("/token/refresh", authController.Refresh)
	v1.POST("/auth/select-role", authController.SelectRole)
	v1.POST("/logout", authController.Logout)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.Authenticate())

	adminOnly := authMiddleware.RequireRoles(models.RoleAdmin)
	placementTeam := authMiddleware.RequireRoles(models.PlacementTeamRoles...)
	studentOnly := authMiddleware.RequireRoles(models.RoleStudent)

	authenticated.POST("/auth/change-password", authController.ChangePassword)
	authenticated.GET("/core/lookup", lookupController.Lookup)

	users := authenticated.Group("/users")
	{
		users.GET("/me", userController.GetMe)
		users.PATCH("/me", userController.UpdateMe)
		users.POST("/register", adminOnly, userController.Register)
		users.GET("", adminOnly, userController.List)
		users.GET("/:userId", adminOnly, userController.GetByID)
		users.PATCH("/:userId/roles", adminOnly, userController.UpdateRoles)
		users.PATCH("/:userId/activation", adminOnly, userController.SetActivation)
	}

	roles := authenticated.Group("/roles")
	{
		roles.GET("", userController.ListRoles)
		roles.POST("", adminOnly, userController.CreateRole)
	}

	students := authenticated.Group("/students")
	{
		students.POST("/register", adminOnly, studentController.Register)
		students.GET("/me", studentOnly, studentController.GetMe)
		students.PATCH("/me", studentOnly, studentController.UpdateMe)
		students.GET("/profiles", placementTeam, studentController.List)
		students.GET("/profiles/:userId", placementTeam, studentController.GetByUserID)
		students.PATCH("/profiles/:userId", adminOnly, studentController.Update)
		students.PATCH("/profiles/:userId/mark-as-placed", adminOnly, studentController.MarkAsPlaced)
	}

	companies := authenticated.Group("/companies")
	{
		companies.GET("", companyController.List)
		companies.GET("/:companyId", companyController.GetByID)
		companies.POST("", adminOnly, companyController.Create)
		companies.PATCH("/:companyId", adminOnly, companyController.Update)
		companies.DELETE("/:companyId", adminOnly, companyController.Delete)
	}

	placements := authenticated.Group("/placements")
	{
		drives := placements.Group("/drives")
		{
			drives.GET("", placementController.ListDrives)
			drives.GET("/:driveId", placementController.GetDrive)
			drives.POST("", adminOnly, placementController.CreateDrive)
			drives.PATCH("/:driveId", adminOnly, placementController.UpdateDrive)
			drives.DELETE("/:driveId", adminOnly, placementController.DeleteDrive)
		}

		companyDrives := placements.Group("/company-drives")
		{
			companyDrives.GET("", placementController.ListCompanyDrives)
			companyDrives.GET("/:companyDriveId", placementController.GetCompanyDrive)
			companyDrives.GET("/:companyDriveId/jobs", placementController.ListJobs)
			companyDrives.POST("", adminOnly, placementController.CreateCompanyDrive)
			companyDrives.PATCH("/:companyDriveId", adminOnly, placementController.UpdateCompanyDrive)
		}

		placements.GET("/jobs/:jobId", placementController.GetJob)
	}

	applications := authenticated.Group("/applications")
	{
		applications.GET("", applicationController.List)
		applications.GET("/:applicationId", applicationController.GetByID)
		applications.POST("", studentOnly, applicationController.Submit)
		applications.POST("/:applicationId/withdraw", studentOnly, applicationController.Withdraw)
		applications.POST("/:applicationId/accept-offer", studentOnly, applicationController.Accept)
		applications.POST("/:applicationId/decline-offer", studentOnly, applicationController.Decline)
		applications.POST("/:applicationId/offer-job", placementTeam, applicationController.Offer)
		applications.POST("/:applicationId/reject", placementTeam, applicationController.Reject)
	}
}
