package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two token flavors. They are structurally
// identical but must never be accepted interchangeably: an access
// token cannot refresh a session and a refresh token cannot authorize
// a request.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Token validation failures. Callers may distinguish them for logging
// only; the HTTP layer collapses all of them into one generic 401.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrWrongKind        = errors.New("token kind mismatch")
)

// TokenService issues and validates signed HS256 tokens. The current
// time is always injected by the caller so validation is deterministic
// and there is no hidden wall-clock read inside the service.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a TokenService. The access TTL must be
// strictly shorter than the refresh TTL; this is an invariant of the
// session model, not a convention.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token service: token lifetimes must be positive")
	}
	if accessTTL >= refreshTTL {
		return nil, fmt.Errorf("token service: access TTL %s must be shorter than refresh TTL %s",
			accessTTL, refreshTTL)
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue signs a token for subject expiring at now plus the lifetime of
// the given kind. Claims follow the usual layout: subject (sub), kind
// (type), expiration (exp) and issued at (iat).
func (s *TokenService) Issue(subject string, kind TokenKind, now time.Time) (string, error) {
	ttl := s.accessTTL
	if kind == TokenRefresh {
		ttl = s.refreshTTL
	}
	now = now.UTC()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": string(kind),
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate checks signature, expiry and kind against the injected
// clock and returns the encoded subject. Expiry is compared here
// rather than by the jwt library so that `now` is the only time
// source.
func (s *TokenService) Validate(token string, kind TokenKind, now time.Time) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	tok, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSignature
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSignature
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", ErrInvalidSignature
	}
	if !now.UTC().Before(time.Unix(int64(exp), 0)) {
		return "", ErrExpired
	}

	if k, _ := claims["type"].(string); k != string(kind) {
		return "", ErrWrongKind
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidSignature
	}
	return sub, nil
}
