package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-drafty/internal/infrastructure/identity/port"
)

// PgAuthorizer answers document capability checks from the ACL table owned by
// the surrounding product.
type PgAuthorizer struct {
	pool *pgxpool.Pool
}

func NewPgAuthorizer(pool *pgxpool.Pool) *PgAuthorizer {
	return &PgAuthorizer{pool: pool}
}

var _ port.Authorizer = (*PgAuthorizer)(nil)

func (a *PgAuthorizer) HasDocumentAccess(ctx context.Context, userID, documentID string) (bool, error) {
	if a == nil || a.pool == nil {
		return false, errors.New("PgAuthorizer: nil pool")
	}
	var one int
	err := a.pool.QueryRow(ctx, `
		SELECT 1 FROM collab.document_acl
		WHERE document_id = $1 AND user_id = $2
	`, documentID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
