// Package votes provides the PostgreSQL-backed repository for votes.
// Votes carry a denormalized poll_id so the whole dependent set of a poll
// can be removed without joining through options or participants.
package votes

import (
	"context"
	"fmt"

	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/server/models"
)

// PostgresRepository implements vote storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, option_id, participant_id, type)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.PollID, vote.OptionID, vote.ParticipantID, string(vote.Type))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByPollID(ctx context.Context, pollID string) ([]*models.Vote, error) {
	query := `SELECT id, poll_id, option_id, participant_id, type FROM votes WHERE poll_id = $1;`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to select votes: %w", err)
	}
	defer rows.Close()

	var result []*models.Vote
	for rows.Next() {
		var item models.Vote
		if err := rows.Scan(&item.ID, &item.PollID, &item.OptionID, &item.ParticipantID, &item.Type); err != nil {
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
	query := fmt.Sprintf(`DELETE FROM votes WHERE poll_id IN (%s);`, dbx.Placeholders(1, len(pollIDs)))
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
