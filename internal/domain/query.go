package domain

import (
	"strings"
	"time"
)

// QueryStatus enumerates the two lifecycle states of a support query.
type QueryStatus string

const (
	QueryStatusOpen   QueryStatus = "OPEN"
	QueryStatusClosed QueryStatus = "CLOSED"
)

// ParseQueryStatus matches a status value case-insensitively.
func ParseQueryStatus(raw string) (QueryStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "OPEN":
		return QueryStatusOpen, true
	case "CLOSED":
		return QueryStatusClosed, true
	default:
		return "", false
	}
}

// KnownCategories is the fixed set offered on the submission form. Rows may
// carry other values (imports, renamed categories); those are tolerated for
// display and aggregation, never rejected.
var KnownCategories = []string{
	"Bug Report",
	"Technical Support",
	"Billing Problem",
	"Payment Failure",
	"Account Suspension",
	"Login Issue",
	"Subscription Cancellation",
	"Feature Request",
	"UI Feedback",
	"Data Export",
}

// Query is the aggregate for a support request. ClosedAt is set exactly when
// Status is QueryStatusClosed.
type Query struct {
	ID          int64
	UserID      int64
	Email       string
	Mobile      string
	Category    string
	Heading     string
	Description string
	Status      QueryStatus
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// IsOpen reports whether the query is awaiting resolution.
func (q *Query) IsOpen() bool {
	return q.Status == QueryStatusOpen
}

// ResolutionTime returns closed-created for a closed query. The second
// return is false while the query is open.
func (q *Query) ResolutionTime() (time.Duration, bool) {
	if q.Status != QueryStatusClosed || q.ClosedAt == nil {
		return 0, false
	}
	return q.ClosedAt.Sub(q.CreatedAt), true
}
