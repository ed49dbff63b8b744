package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func verifiedContext(t *testing.T, svc Service, claims map[string]interface{}) context.Context {
	t.Helper()
	_, tokenString, err := svc.JWTAuth().Encode(claims)
	require.NoError(t, err)

	var captured context.Context
	handler := jwtauth.Verifier(svc.JWTAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, captured)
	return captured
}

func TestSessionFromContext(t *testing.T) {
	svc := NewJWTService(testSecret)
	ctx := verifiedContext(t, svc, map[string]interface{}{
		"user_id": "12",
		"name":    "Rina",
		"role":    "admin",
	})

	session, err := svc.SessionFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", session.UserID)
	assert.Equal(t, "Rina", session.Name)
	assert.True(t, session.IsAdmin())
}

func TestSessionFromContext_NumericSubjectFallback(t *testing.T) {
	svc := NewJWTService(testSecret)
	ctx := verifiedContext(t, svc, map[string]interface{}{
		"sub":  "44",
		"role": "customer",
	})

	session, err := svc.SessionFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "44", session.UserID)
	assert.False(t, session.IsAdmin())
}

func TestSessionFromContext_NoToken(t *testing.T) {
	svc := NewJWTService(testSecret)
	_, err := svc.SessionFromContext(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
}
