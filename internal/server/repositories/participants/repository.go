package participants

import (
	"context"

	"github.com/Alok0227/rallly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, participant *models.Participant) error
	ListByPollID(ctx context.Context, pollID string) ([]*models.Participant, error)
	// DeleteByPollIDs removes every participant belonging to the given polls.
	DeleteByPollIDs(ctx context.Context, pollIDs []string) (int64, error)
}
