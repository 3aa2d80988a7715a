package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/archives"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/gamestates"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// attach them either to the pool or to an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	GameStates(db dbx.DBTX) gamestates.Repository
	Archives(db dbx.DBTX) archives.Repository
}
