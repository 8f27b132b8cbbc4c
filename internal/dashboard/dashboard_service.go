package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	statsCacheKeyPrefix = "dashboard:stats:"
	statsCacheTTL       = 30 * time.Second

	recentLimit         = 5
	recentActivityLimit = 10
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context, days int) (Summary, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Stats aggregates counts as of request time, windowed by days. Results
// are cached briefly and concurrent recomputation is collapsed.
func (s *service) Stats(ctx context.Context, days int) (Summary, error) {
	if days < 1 {
		days = 30
	}

	cacheKey := fmt.Sprintf("%s%d", statsCacheKeyPrefix, days)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var summary Summary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return summary, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		summary, err := s.compute(ctx, days)
		if err != nil {
			return Summary{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(summary); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, statsCacheTTL)
			}
		}

		return summary, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.Int("days", days), zap.Error(err))
		return Summary{}, err
	}

	return v.(Summary), nil
}

func (s *service) compute(ctx context.Context, days int) (Summary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	totalUsers, activeUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return Summary{}, err
	}
	usersByRole, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		return Summary{}, err
	}
	recentUsers, err := s.repo.RecentUsers(ctx, since, recentLimit)
	if err != nil {
		return Summary{}, err
	}

	totalEmployees, activeEmployees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return Summary{}, err
	}
	employeesByCategory, err := s.repo.CountEmployeesByCategory(ctx)
	if err != nil {
		return Summary{}, err
	}
	totalAttestations, err := s.repo.CountAttestations(ctx)
	if err != nil {
		return Summary{}, err
	}
	recentAttestations, err := s.repo.RecentAttestations(ctx, since, recentLimit)
	if err != nil {
		return Summary{}, err
	}
	totalMissions, err := s.repo.CountMissions(ctx)
	if err != nil {
		return Summary{}, err
	}
	recentMissions, err := s.repo.RecentMissions(ctx, since, recentLimit)
	if err != nil {
		return Summary{}, err
	}

	activityByDate, err := s.repo.ActivityByDate(ctx, since)
	if err != nil {
		return Summary{}, err
	}
	activityByType, err := s.repo.ActivityByType(ctx, since)
	if err != nil {
		return Summary{}, err
	}
	recentActivities, err := s.repo.RecentActivities(ctx, since, recentActivityLimit)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		UserStats: UserStats{
			TotalUsers:  totalUsers,
			ActiveUsers: activeUsers,
			UsersByRole: usersByRole,
			RecentUsers: recentUsers,
		},
		DocumentStats: DocumentStats{
			TotalEmployees:      totalEmployees,
			ActiveEmployees:     activeEmployees,
			TotalAttestations:   totalAttestations,
			TotalMissions:       totalMissions,
			EmployeesByCategory: employeesByCategory,
			RecentAttestations:  recentAttestations,
			RecentMissions:      recentMissions,
		},
		ActivityStats: ActivityStats{
			ActivityByDate:   activityByDate,
			ActivityByType:   activityByType,
			RecentActivities: recentActivities,
		},
	}, nil
}
