package attestation

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
	attestations := r.Group("/attestations")
	attestations.Use(middleware.AuthMiddleware())
	attestations.Use(middleware.ContextLogger(logger))
	{
		attestations.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionRead),
			handler.GetAll,
		)

		attestations.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionRead),
			handler.GetById,
		)

		attestations.GET("/by-employee/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionRead),
			handler.GetByEmployee,
		)

		attestations.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		attestations.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionUpdate),
			handler.Update,
		)

		attestations.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttestation, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
