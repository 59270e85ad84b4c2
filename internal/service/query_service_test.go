package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/analytics"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// --------------------- fakes ---------------------

type fakeQueryRepo struct {
	mu      sync.Mutex
	rows    map[int64]*domain.Query
	nextID  int64
	listErr error
}

func newFakeQueryRepo() *fakeQueryRepo {
	return &fakeQueryRepo{rows: map[int64]*domain.Query{}, nextID: 1}
}

func (r *fakeQueryRepo) Create(_ context.Context, query *domain.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	query.ID = r.nextID
	r.nextID++
	copied := *query
	r.rows[query.ID] = &copied
	return nil
}

func (r *fakeQueryRepo) GetByID(_ context.Context, id int64) (*domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (r *fakeQueryRepo) ListByUser(_ context.Context, userID int64) ([]domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.Query
	for id := int64(1); id < r.nextID; id++ {
		if row, ok := r.rows[id]; ok && row.UserID == userID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *fakeQueryRepo) ListAll(_ context.Context) ([]domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.Query
	for id := int64(1); id < r.nextID; id++ {
		if row, ok := r.rows[id]; ok {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *fakeQueryRepo) Close(_ context.Context, id int64, closedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.Status != domain.QueryStatusOpen {
		return false, nil
	}
	row.Status = domain.QueryStatusClosed
	at := closedAt
	row.ClosedAt = &at
	return true, nil
}

func (r *fakeQueryRepo) Reopen(_ context.Context, id int64, reopenedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.Status != domain.QueryStatusClosed {
		return false, nil
	}
	row.Status = domain.QueryStatusOpen
	row.CreatedAt = reopenedAt
	row.ClosedAt = nil
	return true, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.EventType, 0, len(d.events))
	for _, event := range d.events {
		result = append(result, event.Type)
	}
	return result
}

// --------------------- setup ---------------------

var (
	testClient  = &domain.User{ID: 7, Username: "carol", Role: domain.RoleClient}
	testSupport = &domain.User{ID: 9, Username: "sam", Role: domain.RoleSupport}
)

func setupQueryService(t *testing.T) (*QueryService, *fakeQueryRepo, *recordingDispatcher) {
	t.Helper()
	repo := newFakeQueryRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewQueryService(QueryDependencies{QueryRepo: repo, Dispatcher: dispatcher})
	return svc, repo, dispatcher
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		Email:       "carol@example.com",
		Mobile:      "5550001111",
		Category:    "Bug Report",
		Heading:     "X",
		Description: "Y",
	}
}

// --------------------- Submit ---------------------

func TestSubmit_Success(t *testing.T) {
	svc, repo, dispatcher := setupQueryService(t)
	before := time.Now()

	query, err := svc.Submit(context.Background(), testClient, validSubmitInput())
	require.NoError(t, err)

	assert.Equal(t, domain.QueryStatusOpen, query.Status)
	assert.Nil(t, query.ClosedAt)
	assert.Equal(t, testClient.ID, query.UserID)
	assert.Equal(t, "Bug Report", query.Category)
	assert.WithinDuration(t, before, query.CreatedAt, 5*time.Second)

	stored, err := repo.GetByID(context.Background(), query.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryStatusOpen, stored.Status)
	assert.Equal(t, []events.EventType{events.EventQuerySubmitted}, dispatcher.types())
}

func TestSubmit_MissingFieldsNamed(t *testing.T) {
	svc, repo, _ := setupQueryService(t)

	input := validSubmitInput()
	input.Heading = ""
	input.Description = "   "

	_, err := svc.Submit(context.Background(), testClient, input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	domainErr := apperrors.ToDomainError(err)
	assert.Contains(t, domainErr.Details, "heading")
	assert.Contains(t, domainErr.Details, "description")
	assert.NotContains(t, domainErr.Details, "email")
	assert.Empty(t, repo.rows)
}

// --------------------- Close / Reopen ---------------------

func TestCloseThenReopen_RoundTrip(t *testing.T) {
	svc, _, dispatcher := setupQueryService(t)

	submitted, err := svc.Submit(context.Background(), testClient, validSubmitInput())
	require.NoError(t, err)

	closed, err := svc.Close(context.Background(), testSupport, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	reopened, err := svc.Reopen(context.Background(), testSupport, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryStatusOpen, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
	assert.False(t, reopened.CreatedAt.Before(submitted.CreatedAt))

	assert.Equal(t, []events.EventType{
		events.EventQuerySubmitted,
		events.EventQueryClosed,
		events.EventQueryReopened,
	}, dispatcher.types())
}

func TestClose_AlreadyClosedIsNoOp(t *testing.T) {
	svc, _, dispatcher := setupQueryService(t)

	submitted, err := svc.Submit(context.Background(), testClient, validSubmitInput())
	require.NoError(t, err)

	first, err := svc.Close(context.Background(), testSupport, submitted.ID)
	require.NoError(t, err)

	second, err := svc.Close(context.Background(), testSupport, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryStatusClosed, second.Status)
	require.NotNil(t, second.ClosedAt)
	assert.Equal(t, first.ClosedAt.Unix(), second.ClosedAt.Unix())

	// only one close event despite two calls
	assert.Equal(t, []events.EventType{
		events.EventQuerySubmitted,
		events.EventQueryClosed,
	}, dispatcher.types())
}

func TestClose_UnknownQuery(t *testing.T) {
	svc, _, _ := setupQueryService(t)

	_, err := svc.Close(context.Background(), testSupport, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReopen_UnknownQuery(t *testing.T) {
	svc, _, _ := setupQueryService(t)

	_, err := svc.Reopen(context.Background(), testSupport, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

// --------------------- Listing ---------------------

func TestListForUser_AppliesFilters(t *testing.T) {
	svc, _, _ := setupQueryService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, testClient, validSubmitInput())
	require.NoError(t, err)

	input := validSubmitInput()
	input.Category = "Login Issue"
	_, err = svc.Submit(ctx, testClient, input)
	require.NoError(t, err)

	other := &domain.User{ID: 99, Role: domain.RoleClient}
	_, err = svc.Submit(ctx, other, validSubmitInput())
	require.NoError(t, err)

	_, err = svc.Close(ctx, testSupport, first.ID)
	require.NoError(t, err)

	open, err := svc.ListForUser(ctx, testClient.ID, ListFilter{Status: analytics.StatusFilterOpen})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Login Issue", open[0].Category)

	all, err := svc.ListAll(ctx, ListFilter{Status: analytics.StatusFilterAll})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bugs, err := svc.ListAll(ctx, ListFilter{Status: analytics.StatusFilterAll, Categories: []string{"Bug Report"}})
	require.NoError(t, err)
	assert.Len(t, bugs, 2)
}
