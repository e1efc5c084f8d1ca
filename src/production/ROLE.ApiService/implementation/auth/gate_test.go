package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	uid string
	err error
	// last token handed to Verify
	token string
}

func (v *stubVerifier) Verify(_ context.Context, token string) (string, error) {
	v.token = token
	return v.uid, v.err
}

func TestAuthenticateAcceptsBearerToken(t *testing.T) {
	verifier := &stubVerifier{uid: "user-123"}
	gate := NewGate(verifier)

	uid, err := gate.Authenticate(context.Background(), "Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
	assert.Equal(t, "abc.def.ghi", verifier.token)
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	gate := NewGate(&stubVerifier{uid: "user-123"})

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"bearer abc",
		"Basic abc",
		"Token abc",
	} {
		_, err := gate.Authenticate(context.Background(), header)
		assert.ErrorIs(t, err, ErrMissingCredential, "header %q", header)
	}
}

func TestAuthenticateCollapsesVerifierFailures(t *testing.T) {
	gate := NewGate(&stubVerifier{err: errors.New("signature mismatch")})

	_, err := gate.Authenticate(context.Background(), "Bearer forged")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
