package events

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuerySubmitted EventType = "query_submitted"
	EventQueryClosed    EventType = "query_closed"
	EventQueryReopened  EventType = "query_reopened"
	EventProfileUpdated EventType = "profile_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	QueryID   int64       `json:"query_id,omitempty"`
	OwnerID   int64       `json:"owner_id,omitempty"`
	ActorID   int64       `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// QuerySubmittedPayload payload.
type QuerySubmittedPayload struct {
	Category string `json:"category"`
	Heading  string `json:"heading"`
}

// QueryStatusPayload payload for close/reopen transitions.
type QueryStatusPayload struct {
	OldStatus domain.QueryStatus `json:"old_status"`
	NewStatus domain.QueryStatus `json:"new_status"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	UserID            int64 `json:"user_id"`
	CredentialChanged bool  `json:"credential_changed"`
}
