package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/admission-service/internal/config"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/services"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

type HandlerManager struct {
	approvalHandler *ApprovalHandler
	userHandler     *UserHandler
	schoolHandler   *SchoolHandler
	authMiddleware  *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		approvalHandler: NewApprovalHandler(serviceManager.Approval(), serviceManager.Export(), logger),
		userHandler:     NewUserHandler(serviceManager.User(), logger),
		schoolHandler:   NewSchoolHandler(serviceManager.School(), logger),
		authMiddleware:  authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public routes: registration and the static hierarchy description.
	public := router.Group("/api/v1")
	{
		public.POST("/auth/register", hm.userHandler.Register)
		public.GET("/approval/rules", hm.approvalHandler.GetRules)
	}

	// Authenticated routes
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		approval := v1.Group("/approval")
		{
			// Any authenticated user may check their own standing.
			approval.GET("/my-status", hm.approvalHandler.GetMyStatus)

			// Decision workflow - approval roles only
			requireApprover := hm.authMiddleware.RequireApprovalRoleMiddleware()
			approval.GET("/pending-users", requireApprover, hm.approvalHandler.GetPendingUsers)
			approval.POST("/approve-user", requireApprover, hm.approvalHandler.ApproveUser)
			approval.GET("/history", requireApprover, hm.approvalHandler.GetApprovalHistory)
			approval.GET("/history/export", requireApprover, hm.approvalHandler.ExportApprovalHistory)
			approval.GET("/statistics", requireApprover, hm.approvalHandler.GetApprovalStatistics)
		}

		// User screens - admins only
		users := v1.Group("/users")
		users.Use(hm.authMiddleware.RequireRoleMiddleware(models.SystemAdminRoles...))
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/search", hm.userHandler.SearchUsers)
			users.GET("/:id", hm.userHandler.GetUser)
		}

		schools := v1.Group("/schools")
		{
			schools.GET("", hm.schoolHandler.ListSchools)
			schools.GET("/:id", hm.schoolHandler.GetSchool)

			admin := hm.authMiddleware.RequireRoleMiddleware(models.SystemAdminRoles...)
			schools.POST("", admin, hm.schoolHandler.CreateSchool)
			schools.PUT("/:id", admin, hm.schoolHandler.UpdateSchool)
			schools.PUT("/:id/quotas", admin, hm.schoolHandler.UpdateSchoolQuotas)
			schools.DELETE("/:id", admin, hm.schoolHandler.DeleteSchool)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "admission-service",
		})
	})
}
