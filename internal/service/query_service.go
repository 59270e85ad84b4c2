package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/analytics"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// QueryService coordinates the query lifecycle: submit, close, reopen, list.
type QueryService struct {
	queries    repository.QueryRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// QueryDependencies bundles collaborators for the query service.
type QueryDependencies struct {
	QueryRepo  repository.QueryRepository
	Dispatcher events.Dispatcher
}

// SubmitInput describes a new query payload. All fields are required.
type SubmitInput struct {
	Email       string
	Mobile      string
	Category    string
	Heading     string
	Description string
}

// ListFilter narrows query list views for display.
type ListFilter struct {
	Status     analytics.StatusFilter
	Categories []string
}

// NewQueryService constructs the service.
func NewQueryService(deps QueryDependencies) *QueryService {
	return &QueryService{
		queries:    deps.QueryRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Submit validates and inserts a new open query for the client.
func (s *QueryService) Submit(ctx context.Context, user *domain.User, input SubmitInput) (*domain.Query, error) {
	missing := map[string]any{}
	checkRequired(missing, "email", input.Email)
	checkRequired(missing, "mobile", input.Mobile)
	checkRequired(missing, "category", input.Category)
	checkRequired(missing, "heading", input.Heading)
	checkRequired(missing, "description", input.Description)
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	query := &domain.Query{
		UserID:      user.ID,
		Email:       strings.TrimSpace(input.Email),
		Mobile:      strings.TrimSpace(input.Mobile),
		Category:    strings.TrimSpace(input.Category),
		Heading:     strings.TrimSpace(input.Heading),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.QueryStatusOpen,
		CreatedAt:   s.now(),
	}

	if err := s.queries.Create(ctx, query); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventQuerySubmitted,
		QueryID:   query.ID,
		OwnerID:   query.UserID,
		ActorID:   user.ID,
		ActorRole: user.Role,
		Payload: events.QuerySubmittedPayload{
			Category: query.Category,
			Heading:  query.Heading,
		},
	})
	return query, nil
}

// Close transitions a query Open->Closed, stamping the closed timestamp.
// Closing an already-closed query is a no-op.
func (s *QueryService) Close(ctx context.Context, actor *domain.User, queryID int64) (*domain.Query, error) {
	transitioned, err := s.queries.Close(ctx, queryID, s.now())
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	query, err := s.queries.GetByID(ctx, queryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("query", map[string]any{"id": queryID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	if transitioned {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventQueryClosed,
			QueryID:   query.ID,
			OwnerID:   query.UserID,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Payload: events.QueryStatusPayload{
				OldStatus: domain.QueryStatusOpen,
				NewStatus: domain.QueryStatusClosed,
			},
		})
	}
	return query, nil
}

// Reopen transitions a query Closed->Open. The closed timestamp is cleared
// and the created timestamp reset to the reopen moment, so resolution time
// always measures the latest open span. Reopening an open query is a no-op.
func (s *QueryService) Reopen(ctx context.Context, actor *domain.User, queryID int64) (*domain.Query, error) {
	transitioned, err := s.queries.Reopen(ctx, queryID, s.now())
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	query, err := s.queries.GetByID(ctx, queryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("query", map[string]any{"id": queryID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	if transitioned {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventQueryReopened,
			QueryID:   query.ID,
			OwnerID:   query.UserID,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Payload: events.QueryStatusPayload{
				OldStatus: domain.QueryStatusClosed,
				NewStatus: domain.QueryStatusOpen,
			},
		})
	}
	return query, nil
}

// ListForUser returns one client's queries with display filters applied.
func (s *QueryService) ListForUser(ctx context.Context, userID int64, filter ListFilter) ([]domain.Query, error) {
	queries, err := s.queries.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return analytics.Filter(queries, filter.Status, filter.Categories), nil
}

// ListAll returns the full query set with display filters applied.
func (s *QueryService) ListAll(ctx context.Context, filter ListFilter) ([]domain.Query, error) {
	queries, err := s.queries.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return analytics.Filter(queries, filter.Status, filter.Categories), nil
}

func (s *QueryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func checkRequired(missing map[string]any, field, value string) {
	if strings.TrimSpace(value) == "" {
		missing[field] = "required"
	}
}
