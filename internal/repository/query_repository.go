package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// QueryRepository encapsulates support-query persistence. Listing returns the
// full set for a scope; filtering and aggregation happen in memory on the
// typed collection.
type QueryRepository interface {
	Create(ctx context.Context, query *domain.Query) error
	GetByID(ctx context.Context, id int64) (*domain.Query, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Query, error)
	ListAll(ctx context.Context) ([]domain.Query, error)
	Close(ctx context.Context, id int64, closedAt time.Time) (bool, error)
	Reopen(ctx context.Context, id int64, reopenedAt time.Time) (bool, error)
}

type queryRepository struct {
	pool *pgxpool.Pool
}

// NewQueryRepository instantiates the repository.
func NewQueryRepository(pool *pgxpool.Pool) QueryRepository {
	return &queryRepository{pool: pool}
}

func (r *queryRepository) Create(ctx context.Context, query *domain.Query) error {
	const stmt = `
        INSERT INTO queries (user_id, email, mobile, category, heading, description, status, query_created_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, stmt,
		query.UserID,
		query.Email,
		query.Mobile,
		query.Category,
		query.Heading,
		query.Description,
		query.Status,
		query.CreatedAt,
	).Scan(&query.ID)
}

func (r *queryRepository) GetByID(ctx context.Context, id int64) (*domain.Query, error) {
	const stmt = `
        SELECT id, user_id, email, mobile, category, heading, description, status,
               query_created_time, query_closed_time
        FROM queries WHERE id=$1`

	var query domain.Query
	if err := r.pool.QueryRow(ctx, stmt, id).Scan(
		&query.ID,
		&query.UserID,
		&query.Email,
		&query.Mobile,
		&query.Category,
		&query.Heading,
		&query.Description,
		&query.Status,
		&query.CreatedAt,
		&query.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *queryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Query, error) {
	const stmt = `
        SELECT id, user_id, email, mobile, category, heading, description, status,
               query_created_time, query_closed_time
        FROM queries WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQueries(rows)
}

func (r *queryRepository) ListAll(ctx context.Context) ([]domain.Query, error) {
	const stmt = `
        SELECT id, user_id, email, mobile, category, heading, description, status,
               query_created_time, query_closed_time
        FROM queries ORDER BY id`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQueries(rows)
}

// Close transitions Open->Closed in a single status-guarded statement.
// Returns false when no open row matched, which the service resolves into
// either a no-op (already closed) or a not-found error.
func (r *queryRepository) Close(ctx context.Context, id int64, closedAt time.Time) (bool, error) {
	const stmt = `
        UPDATE queries SET status=$1, query_closed_time=$2
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, stmt, domain.QueryStatusClosed, closedAt, id, domain.QueryStatusOpen)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// Reopen transitions Closed->Open, clearing the closed timestamp and
// resetting the created timestamp to the reopen moment.
func (r *queryRepository) Reopen(ctx context.Context, id int64, reopenedAt time.Time) (bool, error) {
	const stmt = `
        UPDATE queries SET status=$1, query_created_time=$2, query_closed_time=NULL
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, stmt, domain.QueryStatusOpen, reopenedAt, id, domain.QueryStatusClosed)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanQueries(rows pgx.Rows) ([]domain.Query, error) {
	var result []domain.Query
	for rows.Next() {
		var query domain.Query
		if err := rows.Scan(
			&query.ID,
			&query.UserID,
			&query.Email,
			&query.Mobile,
			&query.Category,
			&query.Heading,
			&query.Description,
			&query.Status,
			&query.CreatedAt,
			&query.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, query)
	}
	return result, rows.Err()
}
