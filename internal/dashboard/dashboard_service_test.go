package dashboard_test

import (
	"context"
	"testing"
	"time"

	"go-schooldocs/internal/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepository struct {
	sinceSeen time.Time
	calls     int
}

func (f *fakeDashboardRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	f.calls++
	return 12, 10, nil
}

func (f *fakeDashboardRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"ADMIN": 1, "RH": 4, "SG": 7}, nil
}

func (f *fakeDashboardRepository) RecentUsers(ctx context.Context, since time.Time, limit int) ([]dashboard.RecentUser, error) {
	f.sinceSeen = since
	if limit != 5 {
		return nil, assert.AnError
	}
	return []dashboard.RecentUser{{Email: "rh@school.dz", Role: "RH"}}, nil
}

func (f *fakeDashboardRepository) CountEmployees(ctx context.Context) (int64, int64, error) {
	return 40, 38, nil
}

func (f *fakeDashboardRepository) CountEmployeesByCategory(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"ENSEIGNANT": 25, "ADMINISTRATIF": 15}, nil
}

func (f *fakeDashboardRepository) CountAttestations(ctx context.Context) (int64, error) {
	return 120, nil
}

func (f *fakeDashboardRepository) RecentAttestations(ctx context.Context, since time.Time, limit int) ([]dashboard.RecentDocument, error) {
	return []dashboard.RecentDocument{{Reference: "ATT-2026-00120"}}, nil
}

func (f *fakeDashboardRepository) CountMissions(ctx context.Context) (int64, error) {
	return 33, nil
}

func (f *fakeDashboardRepository) RecentMissions(ctx context.Context, since time.Time, limit int) ([]dashboard.RecentDocument, error) {
	return []dashboard.RecentDocument{{Reference: "OM-2026-00033"}}, nil
}

func (f *fakeDashboardRepository) ActivityByDate(ctx context.Context, since time.Time) (map[string]int64, error) {
	return map[string]int64{"2026-08-25": 9}, nil
}

func (f *fakeDashboardRepository) ActivityByType(ctx context.Context, since time.Time) (map[string]int64, error) {
	return map[string]int64{"CREATE": 6, "UPDATE": 3}, nil
}

func (f *fakeDashboardRepository) RecentActivities(ctx context.Context, since time.Time, limit int) ([]dashboard.RecentActivity, error) {
	if limit != 10 {
		return nil, assert.AnError
	}
	return []dashboard.RecentActivity{{ActionType: "CREATE", EntityType: "ATTESTATION"}}, nil
}

func TestDashboardService_Stats(t *testing.T) {
	repo := &fakeDashboardRepository{}
	svc := dashboard.NewService(repo, nil)

	summary, err := svc.Stats(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.UserStats.TotalUsers)
	assert.Equal(t, int64(10), summary.UserStats.ActiveUsers)
	assert.Equal(t, int64(4), summary.UserStats.UsersByRole["RH"])
	assert.Equal(t, int64(40), summary.DocumentStats.TotalEmployees)
	assert.Equal(t, int64(120), summary.DocumentStats.TotalAttestations)
	assert.Equal(t, int64(33), summary.DocumentStats.TotalMissions)
	assert.Len(t, summary.DocumentStats.RecentAttestations, 1)
	assert.Equal(t, int64(9), summary.ActivityStats.ActivityByDate["2026-08-25"])
	assert.Len(t, summary.ActivityStats.RecentActivities, 1)

	wantSince := time.Now().UTC().AddDate(0, 0, -7)
	assert.WithinDuration(t, wantSince, repo.sinceSeen, time.Minute)
}

func TestDashboardService_Stats_DefaultsWindow(t *testing.T) {
	repo := &fakeDashboardRepository{}
	svc := dashboard.NewService(repo, nil)

	_, err := svc.Stats(context.Background(), 0)

	require.NoError(t, err)
	wantSince := time.Now().UTC().AddDate(0, 0, -30)
	assert.WithinDuration(t, wantSince, repo.sinceSeen, time.Minute)
}
