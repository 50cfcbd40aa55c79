// Package repomanager vends repository implementations and owns schema
// migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpashkov/videovault/internal/dbx"
	"github.com/mpashkov/videovault/internal/server/repositories/refreshtokens"
	"github.com/mpashkov/videovault/internal/server/repositories/users"
)

// RepositoryManager binds repository constructors to a storage backend.
// Repositories are handed a DBTX so callers can run them inside a
// transaction when needed.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
