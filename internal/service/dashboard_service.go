package service

import (
	"context"
	"time"

	"github.com/spec-kit/support-desk/internal/analytics"
	"github.com/spec-kit/support-desk/internal/cache"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// ResolutionSummary presents turnaround statistics in seconds, the unit the
// dashboard charts use.
type ResolutionSummary struct {
	MaxSeconds  float64 `json:"max_seconds"`
	MinSeconds  float64 `json:"min_seconds"`
	MeanSeconds float64 `json:"mean_seconds"`
	Count       int     `json:"count"`
}

// TimelinePoint is one closed query on the resolution-over-time chart.
type TimelinePoint struct {
	QueryID  int64     `json:"query_id"`
	ClosedAt time.Time `json:"closed_at"`
	Seconds  float64   `json:"seconds"`
}

// PendingQuery is an open query older than the pending threshold.
type PendingQuery struct {
	ID             int64   `json:"id"`
	Heading        string  `json:"heading"`
	Category       string  `json:"category"`
	PendingSeconds float64 `json:"pending_seconds"`
}

// DashboardSnapshot aggregates one scope's query set. Resolution is nil when
// no query has been closed yet ("no data", never zeros). Pending is only
// populated for the support scope.
type DashboardSnapshot struct {
	StatusCounts          map[domain.QueryStatus]int `json:"status_counts"`
	CategoryShare         map[string]int             `json:"category_share"`
	Resolution            *ResolutionSummary         `json:"resolution,omitempty"`
	MeanSecondsByCategory map[string]float64         `json:"mean_seconds_by_category"`
	Timeline              []TimelinePoint            `json:"timeline"`
	Pending               []PendingQuery             `json:"pending,omitempty"`
	TotalQueries          int                        `json:"total_queries"`
	GeneratedAt           time.Time                  `json:"generated_at"`
}

// DashboardService loads a scope's queries once and recomputes every
// aggregate from that in-memory collection.
type DashboardService struct {
	queries          repository.QueryRepository
	snapshots        *cache.SnapshotCache
	pendingThreshold time.Duration
	now              func() time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	QueryRepo        repository.QueryRepository
	Snapshots        *cache.SnapshotCache
	PendingThreshold time.Duration
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		queries:          deps.QueryRepo,
		snapshots:        deps.Snapshots,
		pendingThreshold: deps.PendingThreshold,
		now:              time.Now,
	}
}

// ClientDashboard summarizes one user's queries.
func (s *DashboardService) ClientDashboard(ctx context.Context, userID int64) (*DashboardSnapshot, error) {
	key := cache.ClientDashboardKey(userID)
	var cached DashboardSnapshot
	if s.snapshots.Get(ctx, key, &cached) {
		return &cached, nil
	}

	queries, err := s.queries.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	snapshot := s.buildSnapshot(queries, false)
	s.snapshots.Set(ctx, key, snapshot)
	return snapshot, nil
}

// SupportDashboard summarizes all queries, including the long-pending list.
func (s *DashboardService) SupportDashboard(ctx context.Context) (*DashboardSnapshot, error) {
	var cached DashboardSnapshot
	if s.snapshots.Get(ctx, cache.SupportDashboardKey, &cached) {
		return &cached, nil
	}

	queries, err := s.queries.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	snapshot := s.buildSnapshot(queries, true)
	s.snapshots.Set(ctx, cache.SupportDashboardKey, snapshot)
	return snapshot, nil
}

func (s *DashboardService) buildSnapshot(queries []domain.Query, includePending bool) *DashboardSnapshot {
	now := s.now()
	snapshot := &DashboardSnapshot{
		StatusCounts:  analytics.StatusCounts(queries),
		CategoryShare: analytics.CategoryDistribution(queries),
		TotalQueries:  len(queries),
		GeneratedAt:   now,
	}

	if stats, ok := analytics.Resolution(queries); ok {
		snapshot.Resolution = &ResolutionSummary{
			MaxSeconds:  stats.Max.Seconds(),
			MinSeconds:  stats.Min.Seconds(),
			MeanSeconds: stats.Mean.Seconds(),
			Count:       stats.Count,
		}
	}

	byCategory := analytics.ResolutionByCategory(queries)
	snapshot.MeanSecondsByCategory = make(map[string]float64, len(byCategory))
	for category, mean := range byCategory {
		snapshot.MeanSecondsByCategory[category] = mean.Seconds()
	}

	timeline := analytics.ResolutionTimeline(queries)
	snapshot.Timeline = make([]TimelinePoint, 0, len(timeline))
	for _, point := range timeline {
		snapshot.Timeline = append(snapshot.Timeline, TimelinePoint{
			QueryID:  point.QueryID,
			ClosedAt: point.ClosedAt,
			Seconds:  point.Duration.Seconds(),
		})
	}

	if includePending {
		pending := analytics.PendingOver(queries, now, s.pendingThreshold)
		snapshot.Pending = make([]PendingQuery, 0, len(pending))
		for i := range pending {
			snapshot.Pending = append(snapshot.Pending, PendingQuery{
				ID:             pending[i].ID,
				Heading:        pending[i].Heading,
				Category:       pending[i].Category,
				PendingSeconds: now.Sub(pending[i].CreatedAt).Seconds(),
			})
		}
	}

	return snapshot
}
