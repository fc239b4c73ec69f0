package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AnonymousHeader marks a request as an anonymous local-mode session.
// The client that opted out of an account sends it on every call.
const AnonymousHeader = "X-Planner-Anonymous"

// TokenManager validates the HS256 bearer tokens the identity service
// issues. This package only reads tokens; issuing them (and everything
// upstream of that: sign-up, passwords, recovery) belongs to that
// external service.
type TokenManager struct {
	secretKey []byte
}

// Claims are the session claims carried in a token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewTokenManager creates a token manager with the given signing secret.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey)}
}

// Validate parses and validates a token, returning the claims if valid.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Sign mints a token for the given owner. Only tests use it; in
// production tokens come from the identity service.
func (m *TokenManager) Sign(userID, email string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// Resolver maps an HTTP request to a Session: a valid bearer token is a
// remote session owned by the token's user, the anonymous header is a
// local session, anything else is no session at all.
type Resolver struct {
	tokens *TokenManager
}

// NewResolver creates a resolver. tokens may be nil, in which case
// remote sessions are never resolved (local-only deployment).
func NewResolver(tokens *TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve determines the session for one request.
func (r *Resolver) Resolve(req *http.Request) Session {
	if auth := req.Header.Get("Authorization"); auth != "" && r.tokens != nil {
		parts := strings.Split(auth, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := r.tokens.Validate(parts[1]); err == nil {
				return Session{Owner: claims.UserID, Mode: ModeRemote}
			}
		}
		// Bad credentials resolve to no session, not to anonymous.
		return Session{Mode: ModeNone}
	}

	if req.Header.Get(AnonymousHeader) != "" {
		return Session{Mode: ModeLocal}
	}

	return Session{Mode: ModeNone}
}
