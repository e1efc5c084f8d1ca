package auth

import (
	"context"
	"errors"
	"strings"
)

// Gate failure conditions. Verification failures deliberately collapse into
// a single condition: the gate never tells the caller why a token was bad.
var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrInvalidCredential = errors.New("invalid or expired credential")
)

// TokenVerifier is the external identity provider: it verifies a bearer
// token string and returns a stable user identifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Gate extracts and verifies a bearer credential and resolves it to a
// caller identity.
type Gate struct {
	verifier TokenVerifier
}

// NewGate creates an authentication gate on top of an identity provider.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authenticate requires the header to match "Bearer <token>" exactly and
// resolves the token to an actor id.
func (g *Gate) Authenticate(ctx context.Context, rawHeaderValue string) (string, error) {
	token, ok := strings.CutPrefix(rawHeaderValue, "Bearer ")
	if !ok || token == "" {
		return "", ErrMissingCredential
	}

	uid, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return "", ErrInvalidCredential
	}
	return uid, nil
}
