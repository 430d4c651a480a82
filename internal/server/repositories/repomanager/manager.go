// Package repomanager vends repositories bound to a dbx.DBTX, so services
// can run the same repository code on a pool or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the schema up to date and reports how many
	// migrations were applied.
	RunMigrations(ctx context.Context, db *sql.DB) (int, error)
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
