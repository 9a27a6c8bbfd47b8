// Package repomanager wires repository constructors together so services can
// obtain repositories bound to either a live connection or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/seventour/seventour/internal/dbx"
	"github.com/seventour/seventour/internal/server/repositories/refreshtokens"
	"github.com/seventour/seventour/internal/server/repositories/tours"
	"github.com/seventour/seventour/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to the provided DBTX, which can
// be a *sql.DB or a *sql.Tx from dbx.WithTx.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tours(db dbx.DBTX) tours.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
