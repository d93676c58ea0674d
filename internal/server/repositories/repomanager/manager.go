// Package repomanager hands out entity repositories over any DBTX so the
// same repository code runs against *sql.DB and *sql.Tx alike.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Alok0227/rallly/internal/dbx"
	"github.com/Alok0227/rallly/internal/server/repositories/options"
	"github.com/Alok0227/rallly/internal/server/repositories/participants"
	"github.com/Alok0227/rallly/internal/server/repositories/polls"
	"github.com/Alok0227/rallly/internal/server/repositories/votes"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Polls(db dbx.DBTX) polls.Repository
	Options(db dbx.DBTX) options.Repository
	Participants(db dbx.DBTX) participants.Repository
	Votes(db dbx.DBTX) votes.Repository
}
