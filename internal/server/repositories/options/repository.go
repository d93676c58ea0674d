package options

import (
	"context"

	"github.com/Alok0227/rallly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, option *models.Option) error
	ListByPollID(ctx context.Context, pollID string) ([]*models.Option, error)
	// DeleteByPollIDs removes every option belonging to the given polls.
	DeleteByPollIDs(ctx context.Context, pollIDs []string) (int64, error)
}
