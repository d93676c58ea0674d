package polls

import (
	"context"
	"time"

	"github.com/Alok0227/rallly/internal/server/models"
)

// Repository is the poll store surface the sweeper and its collaborators
// consume. The bulk operations are conditioned on current row state so
// that overlapping sweeps cannot double-count.
type Repository interface {
	Create(ctx context.Context, poll *models.Poll) error
	GetByID(ctx context.Context, id string) (*models.Poll, error)
	Touch(ctx context.Context, id string, now time.Time) error

	// ListExpiredDemos returns ids of demo polls created strictly before cutoff.
	ListExpiredDemos(ctx context.Context, cutoff time.Time) ([]string, error)
	// DeleteExpiredDemos removes the given polls, re-checking eligibility,
	// and reports how many rows were actually removed.
	DeleteExpiredDemos(ctx context.Context, ids []string, cutoff time.Time) (int64, error)

	// SoftDeleteInactive tombstones non-deleted polls whose last activity is
	// strictly before cutoff and that have no option starting at or after now.
	SoftDeleteInactive(ctx context.Context, now, cutoff time.Time) (int64, error)

	// ListPurgeable returns ids of polls tombstoned strictly before cutoff.
	ListPurgeable(ctx context.Context, cutoff time.Time) ([]string, error)
	// DeletePurgeable removes the given tombstoned polls, re-checking
	// eligibility, and reports how many rows were actually removed.
	DeletePurgeable(ctx context.Context, ids []string, cutoff time.Time) (int64, error)
}
