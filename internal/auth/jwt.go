package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the fixed validity window of issued tokens. There is no
// revocation; a token stays valid until it expires.
const tokenTTL = time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// identityKey is the context key for the authenticated identity.
type contextKey string

const identityKey = contextKey("identity")

// Service issues and verifies signed identity tokens with a
// process-wide secret injected at startup.
type Service struct {
	secret []byte
}

// NewService creates a token service for the given signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a new token carrying the username claim, valid for one
// hour from issuance.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string. Expired or tampered
// tokens fail here.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware creates a middleware gating write routes. A missing
// bearer token fails with 401 before the handler runs; an invalid or
// expired one fails with 403.
func (s *Service) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			claims, err := s.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the claims the middleware resolved for this request.
func Identity(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*Claims)
	return claims, ok
}
