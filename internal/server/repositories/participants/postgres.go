// Package participants provides the PostgreSQL-backed repository for poll
// participants.
package participants

import (
	"context"
	"fmt"

	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/server/models"
)

// PostgresRepository implements participant storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `INSERT INTO participants (id, poll_id, name) VALUES ($1, $2, $3);`
	_, err := r.db.ExecContext(ctx, query, participant.ID, participant.PollID, participant.Name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByPollID(ctx context.Context, pollID string) ([]*models.Participant, error) {
	query := `SELECT id, poll_id, name FROM participants WHERE poll_id = $1;`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to select participants: %w", err)
	}
	defer rows.Close()

	var result []*models.Participant
	for rows.Next() {
		var item models.Participant
		if err := rows.Scan(&item.ID, &item.PollID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByPollIDs(ctx context.Context, pollIDs []string) (int64, error) {
	if len(pollIDs) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(`DELETE FROM participants WHERE poll_id IN (%s);`, dbx.Placeholders(1, len(pollIDs)))
	res, err := r.db.ExecContext(ctx, query, dbx.Args(pollIDs)...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
