package persist

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer runs a write statement. *store.Store satisfies it.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// LocalGateway runs allowlisted statements against the embedded store.
type LocalGateway struct {
	db    Execer
	allow Allowlist
}

// NewLocalGateway creates a gateway over db. A nil allowlist means
// DefaultAllowlist.
func NewLocalGateway(db Execer, allow Allowlist) *LocalGateway {
	if allow == nil {
		allow = DefaultAllowlist()
	}
	return &LocalGateway{db: db, allow: allow}
}

func (g *LocalGateway) Execute(ctx context.Context, stmt Statement) error {
	if err := g.allow.Check(stmt); err != nil {
		return err
	}
	if _, err := g.db.Exec(ctx, stmt.Query, stmt.Values...); err != nil {
		return fmt.Errorf("execute statement: %w", err)
	}
	return nil
}
