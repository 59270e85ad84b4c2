package analytics

import (
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
)

// StatusFilter selects queries by lifecycle state on list views.
type StatusFilter string

const (
	StatusFilterAll    StatusFilter = "All"
	StatusFilterOpen   StatusFilter = "Open"
	StatusFilterClosed StatusFilter = "Closed"
)

// ParseStatusFilter interprets a filter value case-insensitively. Empty and
// unrecognized values fall back to All rather than erroring: filters narrow a
// view, they never fail a page.
func ParseStatusFilter(raw string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return StatusFilterOpen
	case "closed":
		return StatusFilterClosed
	default:
		return StatusFilterAll
	}
}

// Filter narrows a query collection for display: status first, then category
// membership. An empty category set means no category restriction. The result
// preserves input order.
func Filter(queries []domain.Query, status StatusFilter, categories []string) []domain.Query {
	categorySet := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if category == "" {
			continue
		}
		categorySet[category] = struct{}{}
	}

	result := make([]domain.Query, 0, len(queries))
	for i := range queries {
		if !matchesStatus(&queries[i], status) {
			continue
		}
		if len(categorySet) > 0 {
			if _, ok := categorySet[queries[i].Category]; !ok {
				continue
			}
		}
		result = append(result, queries[i])
	}
	return result
}

func matchesStatus(query *domain.Query, status StatusFilter) bool {
	switch status {
	case StatusFilterOpen:
		return strings.EqualFold(string(query.Status), string(domain.QueryStatusOpen))
	case StatusFilterClosed:
		return strings.EqualFold(string(query.Status), string(domain.QueryStatusClosed))
	default:
		return true
	}
}
