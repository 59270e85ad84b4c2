package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/cache"
	"github.com/spec-kit/support-desk/internal/domain"
)

func setupDashboardService(repo *fakeQueryRepo) *DashboardService {
	return NewDashboardService(DashboardDependencies{
		QueryRepo:        repo,
		Snapshots:        cache.NewSnapshotCache(nil, 0, zap.NewNop()),
		PendingThreshold: 24 * time.Hour,
	})
}

func seedClosed(t *testing.T, repo *fakeQueryRepo, userID int64, category string, createdAt time.Time, resolution time.Duration) {
	t.Helper()
	closedAt := createdAt.Add(resolution)
	require.NoError(t, repo.Create(context.Background(), &domain.Query{
		UserID:    userID,
		Category:  category,
		Status:    domain.QueryStatusClosed,
		CreatedAt: createdAt,
		ClosedAt:  &closedAt,
	}))
}

func seedOpen(t *testing.T, repo *fakeQueryRepo, userID int64, category string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Query{
		UserID:    userID,
		Category:  category,
		Status:    domain.QueryStatusOpen,
		CreatedAt: createdAt,
	}))
}

func TestSupportDashboard_ResolutionStats(t *testing.T) {
	repo := newFakeQueryRepo()
	base := time.Now().Add(-2 * time.Hour)
	seedClosed(t, repo, 1, "Bug Report", base, 10*time.Second)
	seedClosed(t, repo, 1, "Login Issue", base, 20*time.Second)
	seedClosed(t, repo, 2, "Bug Report", base, 30*time.Second)

	svc := setupDashboardService(repo)
	snapshot, err := svc.SupportDashboard(context.Background())
	require.NoError(t, err)

	require.NotNil(t, snapshot.Resolution)
	assert.InDelta(t, 30, snapshot.Resolution.MaxSeconds, 0.001)
	assert.InDelta(t, 10, snapshot.Resolution.MinSeconds, 0.001)
	assert.InDelta(t, 20, snapshot.Resolution.MeanSeconds, 0.001)
	assert.Equal(t, 3, snapshot.Resolution.Count)

	assert.InDelta(t, 20, snapshot.MeanSecondsByCategory["Bug Report"], 0.001)
	assert.Equal(t, 3, snapshot.StatusCounts[domain.QueryStatusClosed])
	assert.Len(t, snapshot.Timeline, 3)
}

func TestSupportDashboard_NoClosedQueriesMeansNoResolutionData(t *testing.T) {
	repo := newFakeQueryRepo()
	seedOpen(t, repo, 1, "Bug Report", time.Now().Add(-time.Hour))

	svc := setupDashboardService(repo)
	snapshot, err := svc.SupportDashboard(context.Background())
	require.NoError(t, err)

	assert.Nil(t, snapshot.Resolution)
	assert.Empty(t, snapshot.MeanSecondsByCategory)
	assert.Empty(t, snapshot.Timeline)
	assert.Equal(t, 1, snapshot.StatusCounts[domain.QueryStatusOpen])
}

func TestSupportDashboard_PendingOverThreshold(t *testing.T) {
	repo := newFakeQueryRepo()
	now := time.Now()
	seedOpen(t, repo, 1, "Bug Report", now.Add(-25*time.Hour))
	seedOpen(t, repo, 2, "Login Issue", now.Add(-23*time.Hour))

	svc := setupDashboardService(repo)
	snapshot, err := svc.SupportDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Pending, 1)
	assert.Equal(t, "Bug Report", snapshot.Pending[0].Category)
	assert.Greater(t, snapshot.Pending[0].PendingSeconds, (24 * time.Hour).Seconds())
}

func TestClientDashboard_ScopedToUserAndNoPendingSection(t *testing.T) {
	repo := newFakeQueryRepo()
	now := time.Now()
	seedOpen(t, repo, 7, "Bug Report", now.Add(-30*time.Hour))
	seedClosed(t, repo, 7, "Bug Report", now.Add(-2*time.Hour), 10*time.Second)
	seedOpen(t, repo, 8, "Login Issue", now.Add(-30*time.Hour))

	svc := setupDashboardService(repo)
	snapshot, err := svc.ClientDashboard(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.TotalQueries)
	assert.Equal(t, 1, snapshot.StatusCounts[domain.QueryStatusOpen])
	assert.Equal(t, 1, snapshot.StatusCounts[domain.QueryStatusClosed])
	assert.NotContains(t, snapshot.CategoryShare, "Login Issue")
	assert.Empty(t, snapshot.Pending)
}
