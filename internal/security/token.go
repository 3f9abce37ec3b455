package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret is returned when token issuance is attempted without a
	// configured signing secret. This is a deployment error, never a
	// per-request condition.
	ErrNoSecret = errors.New("token signing secret is not configured")

	// ErrEmptySubject is returned when a token is requested for a zero
	// user ID.
	ErrEmptySubject = errors.New("token subject must not be empty")
)

// TokenService issues and verifies stateless HS256 session tokens. A token
// carries a single subject (the user ID) and is valid for a fixed window
// from issuance; there is no server-side registry and no per-token
// revocation short of rotating the secret.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

// CreateForUser creates a token for the given user ID using the default TTL.
func (t *TokenService) CreateForUser(userID int64) (string, error) {
	return t.CreateWithTTL(userID, t.expiresIn)
}

// CreateWithTTL creates a token for the given user ID with an explicit TTL.
func (t *TokenService) CreateWithTTL(userID int64, ttl time.Duration) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	if userID == 0 {
		return "", ErrEmptySubject
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseSubject validates a token and returns the user ID it was issued for.
// Forged, malformed, and expired tokens all fail the same way; callers at
// the HTTP boundary must not distinguish between them in responses.
func (t *TokenService) ParseSubject(tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrSignatureInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenMalformed
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject", jwt.ErrTokenMalformed)
	}
	return id, nil
}
