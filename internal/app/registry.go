package app

import (
	"database/sql"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/attestation"
	"go-schooldocs/internal/auth"
	"go-schooldocs/internal/dashboard"
	"go-schooldocs/internal/employee"
	"go-schooldocs/internal/messaging/kafka"
	"go-schooldocs/internal/mission"
	"go-schooldocs/internal/notification"
	"go-schooldocs/internal/rbac"
	"go-schooldocs/internal/shared/counter"
	"go-schooldocs/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	activityRepo := activity.NewRepository(gormDB)
	attestationRepo := attestation.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	missionRepo := mission.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	generator := counter.NewGenerator(counterRepo)
	activityService := activity.NewService(activityRepo)
	notificationService := notification.NewService(notificationRepo)

	attestationService := attestation.NewServiceWithOutbox(db, attestationRepo, generator, activityService, outboxRepo)
	missionService := mission.NewServiceWithOutbox(db, missionRepo, generator, activityService, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, activityService)
	userService := user.NewService(userRepo, activityService, notificationService)
	authService := auth.NewService(userRepo, rdb)
	dashboardService := dashboard.NewService(dashboardRepo, rdb)

	// --- Handlers ---
	activityHandler := activity.NewHandler(activityService)
	attestationHandler := attestation.NewHandlerWithRedis(attestationService, rdb)
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	employeeHandler := employee.NewHandler(employeeService)
	missionHandler := mission.NewHandlerWithRedis(missionService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(activity.AutoLog(activityService))
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		attestation.RegisterRoutes(api, attestationHandler, rbacService, rdb, logger)
		mission.RegisterRoutes(api, missionHandler, rbacService, rdb, logger)
		notification.RegisterRoutes(api, notificationHandler, rbacService, logger)
		activity.RegisterRoutes(api, activityHandler, rbacService, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, logger)
	}

	return nil
}
