package port

import (
	"context"
	"errors"
)

// Principal is the resolved caller identity. The collaboration core never
// sees raw credentials, only this.
type Principal struct {
	UserID       string
	EnterpriseID string
	Role         string
}

// Resolver turns an opaque caller credential into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (Principal, error)
}

// Authorizer answers document capability checks for a resolved user.
type Authorizer interface {
	HasDocumentAccess(ctx context.Context, userID, documentID string) (bool, error)
}

// ErrUnauthenticated is returned by resolvers for missing, malformed or
// expired credentials.
var ErrUnauthenticated = errors.New("identity: invalid or missing credential")
