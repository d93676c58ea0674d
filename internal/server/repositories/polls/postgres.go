// Package polls provides the PostgreSQL-backed repository for poll
// persistence and the retention queries the sweeper runs.
package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Alok0227/rallly/internal/common"
	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/server/models"
)

// PostgresRepository implements poll storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, poll *models.Poll) error {
	query := `
		INSERT INTO polls (id, owner_id, title, demo, created_at, touched_at, deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.ExecContext(ctx, query,
		poll.ID, poll.OwnerID, poll.Title, poll.Demo, poll.CreatedAt, poll.TouchedAt, poll.Deleted, poll.DeletedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Poll, error) {
	query := `
		SELECT id, owner_id, title, demo, created_at, touched_at, deleted, deleted_at
		FROM polls WHERE id = $1;
	`
	var p models.Poll
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Demo, &p.CreatedAt, &p.TouchedAt, &p.Deleted, &p.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

// Touch records activity on an active poll, pushing its relevance window out.
// Tombstoned polls are left alone.
func (r *PostgresRepository) Touch(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE polls SET touched_at = $2 WHERE id = $1 AND deleted = FALSE;`
	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ListExpiredDemos locks and returns demo polls past their lifetime.
// Run it inside the transaction that performs the cascade so a concurrent
// sweep blocks until the rows are gone.
func (r *PostgresRepository) ListExpiredDemos(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `SELECT id FROM polls WHERE demo = TRUE AND created_at < $1 FOR UPDATE;`
	return r.listIDs(ctx, query, cutoff)
}

func (r *PostgresRepository) DeleteExpiredDemos(ctx context.Context, ids []string, cutoff time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		`DELETE FROM polls WHERE id IN (%s) AND demo = TRUE AND created_at < $%d;`,
		dbx.Placeholders(1, len(ids)), len(ids)+1)
	return r.execCount(ctx, query, dbx.Args(ids, cutoff)...)
}

// SoftDeleteInactive tombstones polls whose last activity is strictly older
// than cutoff, unless some option of theirs still lies in the future.
func (r *PostgresRepository) SoftDeleteInactive(ctx context.Context, now, cutoff time.Time) (int64, error) {
	query := `
		UPDATE polls SET deleted = TRUE, deleted_at = $1
		WHERE deleted = FALSE
		AND COALESCE(touched_at, created_at) < $2
		AND NOT EXISTS (
			SELECT 1 FROM options o WHERE o.poll_id = polls.id AND o.start_at >= $1
		);
	`
	return r.execCount(ctx, query, now, cutoff)
}

// ListPurgeable locks and returns tombstoned polls past the grace period.
func (r *PostgresRepository) ListPurgeable(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `SELECT id FROM polls WHERE deleted = TRUE AND deleted_at < $1 FOR UPDATE;`
	return r.listIDs(ctx, query, cutoff)
}

func (r *PostgresRepository) DeletePurgeable(ctx context.Context, ids []string, cutoff time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		`DELETE FROM polls WHERE id IN (%s) AND deleted = TRUE AND deleted_at < $%d;`,
		dbx.Placeholders(1, len(ids)), len(ids)+1)
	return r.execCount(ctx, query, dbx.Args(ids, cutoff)...)
}

func (r *PostgresRepository) listIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select polls: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
