package activity

import (
	"go-schooldocs/internal/middleware"
	"go-schooldocs/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	activities := r.Group("/activities")
	activities.Use(middleware.AuthMiddleware())
	activities.Use(middleware.ContextLogger(logger))
	{
		activities.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceActivity, rbac.ActionRead),
			handler.List,
		)

		activities.GET("/recent",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceActivity, rbac.ActionRead),
			handler.Recent,
		)
	}
}
