package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for malformed, foreign, expired or incomplete tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies bearer tokens.
// It owns the signing key and the clock used for both issuing and expiry checks.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a JWTService.
type Option func(*JWTService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *JWTService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken signs a token for userID.
func (s *JWTService) GenerateToken(userID uint) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
