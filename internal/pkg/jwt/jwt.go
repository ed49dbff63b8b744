package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const RoleAdmin = "admin"

var (
	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrAdminOnly    = errors.New("admin access required")
)

// Session is the cashier identity carried by a verified token.
type Session struct {
	UserID string
	Name   string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	SessionFromContext(ctx context.Context) (Session, error)
}

// JWTService verifies HS256 session tokens issued by the identity provider.
// It never issues tokens itself.
type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// SessionFromContext reads the token verified by jwtauth.Verifier.
func (j *JWTService) SessionFromContext(ctx context.Context) (Session, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Session{}, ErrInvalidToken
	}

	session := Session{
		UserID: claimString(claims, "user_id"),
		Name:   claimString(claims, "name"),
		Role:   claimString(claims, "role"),
	}
	if session.UserID == "" {
		session.UserID = token.Subject()
	}
	return session, nil
}

func claimString(claims map[string]interface{}, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
