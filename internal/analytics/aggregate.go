// Package analytics computes dashboard statistics over an in-memory query
// collection. All functions are pure: they take the full set for a scope and
// recompute from scratch, which is fine at the data volumes this service
// handles.
package analytics

import (
	"sort"
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ResolutionStats summarizes closed-query turnaround.
type ResolutionStats struct {
	Max   time.Duration `json:"max"`
	Min   time.Duration `json:"min"`
	Mean  time.Duration `json:"mean"`
	Count int           `json:"count"`
}

// ResolutionPoint is one closed query on the resolution-over-time chart.
type ResolutionPoint struct {
	QueryID  int64         `json:"query_id"`
	ClosedAt time.Time     `json:"closed_at"`
	Duration time.Duration `json:"duration"`
}

// StatusCounts tallies queries per lifecycle state.
func StatusCounts(queries []domain.Query) map[domain.QueryStatus]int {
	counts := make(map[domain.QueryStatus]int)
	for i := range queries {
		counts[queries[i].Status]++
	}
	return counts
}

// CategoryDistribution tallies queries per category, including categories
// outside the known set.
func CategoryDistribution(queries []domain.Query) map[string]int {
	counts := make(map[string]int)
	for i := range queries {
		counts[queries[i].Category]++
	}
	return counts
}

// Resolution computes max/min/mean turnaround over closed queries. The second
// return is false when no query has been closed yet, so callers can render
// "no data" instead of zeros.
func Resolution(queries []domain.Query) (ResolutionStats, bool) {
	var stats ResolutionStats
	var total time.Duration
	for i := range queries {
		taken, ok := queries[i].ResolutionTime()
		if !ok {
			continue
		}
		if stats.Count == 0 {
			stats.Max, stats.Min = taken, taken
		} else {
			if taken > stats.Max {
				stats.Max = taken
			}
			if taken < stats.Min {
				stats.Min = taken
			}
		}
		total += taken
		stats.Count++
	}
	if stats.Count == 0 {
		return ResolutionStats{}, false
	}
	stats.Mean = total / time.Duration(stats.Count)
	return stats, true
}

// ResolutionByCategory computes mean turnaround per category over closed
// queries. Categories with no closed queries are absent from the result.
func ResolutionByCategory(queries []domain.Query) map[string]time.Duration {
	totals := make(map[string]time.Duration)
	counts := make(map[string]int)
	for i := range queries {
		taken, ok := queries[i].ResolutionTime()
		if !ok {
			continue
		}
		totals[queries[i].Category] += taken
		counts[queries[i].Category]++
	}
	means := make(map[string]time.Duration, len(totals))
	for category, total := range totals {
		means[category] = total / time.Duration(counts[category])
	}
	return means
}

// ResolutionTimeline returns one point per closed query, sorted by close time
// ascending for the turnaround-over-time chart.
func ResolutionTimeline(queries []domain.Query) []ResolutionPoint {
	points := make([]ResolutionPoint, 0)
	for i := range queries {
		taken, ok := queries[i].ResolutionTime()
		if !ok {
			continue
		}
		points = append(points, ResolutionPoint{
			QueryID:  queries[i].ID,
			ClosedAt: *queries[i].ClosedAt,
			Duration: taken,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].ClosedAt.Before(points[j].ClosedAt)
	})
	return points
}

// PendingOver returns open queries whose age, measured from now, strictly
// exceeds the threshold. Input order is preserved.
func PendingOver(queries []domain.Query, now time.Time, threshold time.Duration) []domain.Query {
	pending := make([]domain.Query, 0)
	for i := range queries {
		if !queries[i].IsOpen() {
			continue
		}
		if now.Sub(queries[i].CreatedAt) > threshold {
			pending = append(pending, queries[i])
		}
	}
	return pending
}
