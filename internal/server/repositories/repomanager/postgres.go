package repomanager

import (
	"context"
	"database/sql"

	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/server/migrations"
	"github.com/Alok0227/rallly/internal/server/repositories/options"
	"github.com/Alok0227/rallly/internal/server/repositories/participants"
	"github.com/Alok0227/rallly/internal/server/repositories/polls"
	"github.com/Alok0227/rallly/internal/server/repositories/votes"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Polls(db dbx.DBTX) polls.Repository {
	return polls.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Options(db dbx.DBTX) options.Repository {
	return options.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Participants(db dbx.DBTX) participants.Repository {
	return participants.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Votes(db dbx.DBTX) votes.Repository {
	return votes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
