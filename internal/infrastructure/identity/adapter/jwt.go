package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"go-drafty/internal/infrastructure/identity/port"
)

// Claims carries the identity fields the core needs alongside the registered
// set.
type Claims struct {
	UserID       string `json:"user_id"`
	EnterpriseID string `json:"enterprise_id"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver validates HS256 tokens minted by the identity service and maps
// their claims to a Principal.
type JWTResolver struct {
	key []byte
}

// NewJWTResolverFromEnv constructs a resolver using the JWT_SECRET
// environment variable.
func NewJWTResolverFromEnv() (*JWTResolver, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("jwt: JWT_SECRET environment variable is not set")
	}
	return &JWTResolver{key: []byte(secret)}, nil
}

var _ port.Resolver = (*JWTResolver)(nil)

func (r *JWTResolver) Resolve(_ context.Context, credential string) (port.Principal, error) {
	if credential == "" {
		return port.Principal{}, port.ErrUnauthenticated
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return r.key, nil
	})
	if err != nil || !token.Valid {
		return port.Principal{}, port.ErrUnauthenticated
	}
	if claims.UserID == "" {
		return port.Principal{}, port.ErrUnauthenticated
	}
	return port.Principal{
		UserID:       claims.UserID,
		EnterpriseID: claims.EnterpriseID,
		Role:         claims.Role,
	}, nil
}
