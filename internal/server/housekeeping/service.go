// Package housekeeping implements the retention sweep over polls and their
// dependent records.
//
// A sweep runs three passes in a fixed order:
//
//  1. demo expiry: demo polls past their lifetime are removed outright,
//  2. soft delete: inactive polls are tombstoned,
//  3. purge: tombstones past the grace period are removed with all their
//     votes, participants and options.
//
// Every threshold is compared with strict "<" against now minus the
// configured duration, in UTC: a poll exactly at a boundary survives until
// the next sweep. Because pass 2 stamps deleted_at with the sweep's own
// "now", a poll tombstoned in pass 2 can never be purged by pass 3 of the
// same sweep.
package housekeeping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/config"
	"github.com/Alok0227/rallly/internal/server/repositories/repomanager"
	"github.com/WatchBeam/clock"
)

// Result is the aggregate outcome of one sweep. Deleted sums the demo
// expiry and purge passes.
type Result struct {
	SoftDeleted int64 `json:"softDeleted"`
	Deleted     int64 `json:"deleted"`
}

// Service runs housekeeping sweeps. The clock is injected so every time
// boundary is testable with a synthetic "now".
type Service struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	cfg     *config.Config
	clock   clock.Clock
	logger  logging.Logger
	metrics *Metrics
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, c clock.Clock, l logging.Logger, m *Metrics) *Service {
	return &Service{
		db:      db,
		rm:      rm,
		cfg:     cfg,
		clock:   c,
		logger:  l.With("module", "housekeeping"),
		metrics: m,
	}
}

// Run executes one sweep. On a pass failure the sweep stops there and the
// error is surfaced; the returned Result still carries the counts of the
// passes that committed before the failure. Each mutation is conditioned
// on current row state, so re-running after a failure (or concurrently)
// never double-counts.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	started := s.clock.Now()
	res := &Result{}

	n, err := s.expireDemos(ctx, now)
	if err != nil {
		s.metrics.sweeps.WithLabelValues("error").Inc()
		s.logger.Error(ctx, "demo expiry pass failed", "error", err)
		return res, fmt.Errorf("demo expiry pass: %w", err)
	}
	res.Deleted += n
	s.metrics.deleted.WithLabelValues("demo").Add(float64(n))

	n, err = s.softDeleteInactive(ctx, now)
	if err != nil {
		s.metrics.sweeps.WithLabelValues("error").Inc()
		s.logger.Error(ctx, "soft-delete pass failed", "error", err)
		return res, fmt.Errorf("soft-delete pass: %w", err)
	}
	res.SoftDeleted = n
	s.metrics.softDeleted.Add(float64(n))

	n, err = s.purgeTombstoned(ctx, now)
	if err != nil {
		s.metrics.sweeps.WithLabelValues("error").Inc()
		s.logger.Error(ctx, "purge pass failed", "error", err)
		return res, fmt.Errorf("purge pass: %w", err)
	}
	res.Deleted += n
	s.metrics.deleted.WithLabelValues("purge").Add(float64(n))

	s.metrics.sweeps.WithLabelValues("ok").Inc()
	s.metrics.sweepDuration.Observe(s.clock.Now().Sub(started).Seconds())

	s.logger.Info(ctx, "sweep finished",
		"softDeleted", res.SoftDeleted,
		"deleted", res.Deleted,
	)

	return res, nil
}

// expireDemos removes demo polls created strictly before now-DemoLifetime,
// cascading to dependents inside one transaction. Demo polls never go
// through the tombstone stage.
func (s *Service) expireDemos(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.cfg.DemoLifetime)

	var n int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ids, err := s.rm.Polls(tx).ListExpiredDemos(ctx, cutoff)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.deleteDependents(ctx, tx, ids); err != nil {
			return err
		}
		n, err = s.rm.Polls(tx).DeleteExpiredDemos(ctx, ids, cutoff)
		return err
	})
	return n, err
}

// softDeleteInactive tombstones polls whose last activity is strictly
// before now-InactivityWindow and that have no option starting at or after
// now. One conditioned UPDATE; dependent records stay intact.
func (s *Service) softDeleteInactive(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.cfg.InactivityWindow)
	return s.rm.Polls(s.db).SoftDeleteInactive(ctx, now, cutoff)
}

// purgeTombstoned removes polls tombstoned strictly before now-GracePeriod
// along with all their dependents, in one transaction.
func (s *Service) purgeTombstoned(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.cfg.GracePeriod)

	var n int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ids, err := s.rm.Polls(tx).ListPurgeable(ctx, cutoff)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.deleteDependents(ctx, tx, ids); err != nil {
			return err
		}
		n, err = s.rm.Polls(tx).DeletePurgeable(ctx, ids, cutoff)
		return err
	})
	return n, err
}

// deleteDependents removes votes, then participants, then options for the
// given polls. Votes go first: they reference the other two.
func (s *Service) deleteDependents(ctx context.Context, tx dbx.DBTX, pollIDs []string) error {
	if _, err := s.rm.Votes(tx).DeleteByPollIDs(ctx, pollIDs); err != nil {
		return fmt.Errorf("deleting votes: %w", err)
	}
	if _, err := s.rm.Participants(tx).DeleteByPollIDs(ctx, pollIDs); err != nil {
		return fmt.Errorf("deleting participants: %w", err)
	}
	if _, err := s.rm.Options(tx).DeleteByPollIDs(ctx, pollIDs); err != nil {
		return fmt.Errorf("deleting options: %w", err)
	}
	return nil
}
