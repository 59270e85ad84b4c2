package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, StatusFilterOpen, ParseStatusFilter("open"))
	assert.Equal(t, StatusFilterOpen, ParseStatusFilter("  OPEN "))
	assert.Equal(t, StatusFilterClosed, ParseStatusFilter("Closed"))
	assert.Equal(t, StatusFilterAll, ParseStatusFilter("all"))
	assert.Equal(t, StatusFilterAll, ParseStatusFilter(""))
	assert.Equal(t, StatusFilterAll, ParseStatusFilter("garbage"))
}

func TestFilter_ClosedPreservesOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	queries := []domain.Query{
		closedQuery(5, "Bug Report", base, time.Hour),
		openQuery(6, "Bug Report", base),
		closedQuery(7, "Login Issue", base, time.Hour),
		closedQuery(8, "Data Export", base, time.Hour),
	}

	filtered := Filter(queries, StatusFilterClosed, nil)
	require.Len(t, filtered, 3)
	assert.Equal(t, int64(5), filtered[0].ID)
	assert.Equal(t, int64(7), filtered[1].ID)
	assert.Equal(t, int64(8), filtered[2].ID)
}

func TestFilter_StatusMatchIsCaseInsensitive(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	closedAt := base.Add(time.Hour)
	// Legacy rows may carry mixed-case status values.
	queries := []domain.Query{
		{ID: 1, Category: "Bug Report", Status: domain.QueryStatus("closed"), CreatedAt: base, ClosedAt: &closedAt},
		{ID: 2, Category: "Bug Report", Status: domain.QueryStatus("Open"), CreatedAt: base},
	}

	closed := Filter(queries, StatusFilterClosed, nil)
	require.Len(t, closed, 1)
	assert.Equal(t, int64(1), closed[0].ID)

	open := Filter(queries, StatusFilterOpen, nil)
	require.Len(t, open, 1)
	assert.Equal(t, int64(2), open[0].ID)
}

func TestFilter_EmptyCategorySetMeansNoRestriction(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	queries := []domain.Query{
		openQuery(1, "Bug Report", base),
		openQuery(2, "Login Issue", base),
	}

	filtered := Filter(queries, StatusFilterAll, []string{})
	assert.Len(t, filtered, 2)
}

func TestFilter_CategoryMembership(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	queries := []domain.Query{
		openQuery(1, "Bug Report", base),
		openQuery(2, "Login Issue", base),
		closedQuery(3, "Bug Report", base, time.Hour),
		openQuery(4, "Data Export", base),
	}

	filtered := Filter(queries, StatusFilterAll, []string{"Bug Report", "Data Export"})
	require.Len(t, filtered, 3)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)
	assert.Equal(t, int64(4), filtered[2].ID)
}

func TestFilter_StatusThenCategory(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	queries := []domain.Query{
		openQuery(1, "Bug Report", base),
		closedQuery(2, "Bug Report", base, time.Hour),
		openQuery(3, "Login Issue", base),
	}

	filtered := Filter(queries, StatusFilterOpen, []string{"Bug Report"})
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)
}
