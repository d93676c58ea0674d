package votes

import (
	"context"

	"github.com/Alok0227/rallly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, vote *models.Vote) error
	ListByPollID(ctx context.Context, pollID string) ([]*models.Vote, error)
	// DeleteByPollIDs removes every vote belonging to the given polls.
	DeleteByPollIDs(ctx context.Context, pollIDs []string) (int64, error)
}
