package dto

import "time"

// CreateQueryRequest payload for submitting a query.
type CreateQueryRequest struct {
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Category    string `json:"category"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
}

// QueryResponse is the full query representation.
type QueryResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	Category    string     `json:"category"`
	Heading     string     `json:"heading"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}
