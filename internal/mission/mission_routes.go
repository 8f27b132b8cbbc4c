package mission

import (
	"go-schooldocs/internal/middleware"
	"go-schooldocs/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	missions := r.Group("/missions")
	missions.Use(middleware.AuthMiddleware())
	missions.Use(middleware.ContextLogger(logger))
	{
		missions.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionRead),
			handler.GetAll,
		)

		missions.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionRead),
			handler.GetById,
		)

		missions.GET("/by-employee/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionRead),
			handler.GetByEmployee,
		)

		missions.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		missions.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionUpdate),
			handler.Update,
		)

		missions.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionDelete),
			handler.Delete,
		)

		missions.GET("/:id/stages",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionRead),
			handler.GetStages,
		)

		missions.POST("/:id/stages",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceMission, rbac.ActionCreate),
			handler.AddStage,
		)
	}
}
