package auth

import (
	"go-schooldocs/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Logout)
		auth.POST("/password-reset", middleware.RateLimitByIP(0.05, 3), handler.RequestPasswordReset)
		auth.POST("/password-reset/confirm", middleware.RateLimitByIP(0.05, 3), handler.ConfirmPasswordReset)
	}
}
