package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTokenExpiry is used when no expiry is configured.
	DefaultAccessTokenExpiry = time.Hour
	// DefaultRefreshTokenExpiry is used when no refresh expiry is configured.
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// ErrWrongTokenKind is returned when a refresh token is presented as an
// access token or the other way around.
var ErrWrongTokenKind = errors.New("wrong token kind")

// Claims represents JWT claims. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Rol   string `json:"rol"`
	Kind  string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret and expiries.
func NewJWTService(secret string, accessExpiry, refreshExpiry time.Duration) *JWTService {
	if accessExpiry <= 0 {
		accessExpiry = DefaultAccessTokenExpiry
	}
	if refreshExpiry <= 0 {
		refreshExpiry = DefaultRefreshTokenExpiry
	}
	return &JWTService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// AccessExpiry returns the configured access token lifetime.
func (s *JWTService) AccessExpiry() time.Duration { return s.accessExpiry }

// RefreshExpiry returns the configured refresh token lifetime.
func (s *JWTService) RefreshExpiry() time.Duration { return s.refreshExpiry }

// GenerateAccessToken signs a short lived token for the user. Every access
// token carries its own id so it can be blacklisted on logout.
func (s *JWTService) GenerateAccessToken(userID, email, rol string) (string, error) {
	_, token, err := s.sign(kindAccess, userID, email, rol, s.accessExpiry)
	return token, err
}

// GenerateRefreshToken generates a new refresh token for the user.
// The refresh token ID is returned separately for storage in Redis.
func (s *JWTService) GenerateRefreshToken(userID, email, rol string) (tokenID string, token string, err error) {
	return s.sign(kindRefresh, userID, email, rol, s.refreshExpiry)
}

func (s *JWTService) sign(kind, userID, email, rol string, ttl time.Duration) (string, string, error) {
	now := time.Now()
	tokenID := uuid.NewString()
	claims := &Claims{
		Email: email,
		Rol:   rol,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return tokenID, token, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}

	return claims, nil
}

// ValidateAccessToken validates tokenString and requires an access token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateKind(tokenString, kindAccess)
}

// ValidateRefreshToken validates tokenString and requires a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateKind(tokenString, kindRefresh)
}

func (s *JWTService) validateKind(tokenString, kind string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	if claims.ID == "" {
		return nil, errors.New("token ID not found")
	}
	return claims, nil
}

// ExtractTokenID extracts the token ID (JTI) from a token.
func (s *JWTService) ExtractTokenID(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("token ID not found")
	}
	return claims.ID, nil
}

// Remaining returns how long the claims stay valid, never negative.
func Remaining(c *Claims) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}
