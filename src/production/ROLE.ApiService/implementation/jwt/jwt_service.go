package jwt

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds verifier configuration.
type Config struct {
	SecretKey string
	Issuer    string
}

// Claims are the token claims this service understands. The caller identity
// is the standard subject claim, with a uid claim accepted as an alternative
// for tokens minted by older issuers.
type Claims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// Service verifies bearer tokens and resolves them to a user identifier.
// It is the concrete identity provider behind the authentication gate.
type Service struct {
	config Config
}

// NewService creates a new token verification service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// Verify validates a token and returns the stable user identifier it names.
func (s *Service) Verify(_ context.Context, tokenString string) (string, error) {
	options := []jwt.ParserOption{}
	if s.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.SecretKey), nil
	}, options...)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	uid := claims.Subject
	if uid == "" {
		uid = claims.UID
	}
	if uid == "" {
		return "", errors.New("token names no subject")
	}
	return uid, nil
}
