package auth

import (
	"context"
	"errors"
	"time"

	"festivales/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	accessTokenKeyPrefix  = "blacklist:access_token:"
)

// ErrRefreshTokenNotFound is returned when a refresh token is unknown or expired.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// Session is what the store keeps for a live refresh token.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, session Session, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (*Session, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore handles storage and retrieval of tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, session Session, ttl time.Duration) error {
	return cache.SetJSON(ctx, s.cache, refreshTokenKeyPrefix+tokenID, session, ttl)
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*Session, error) {
	var session Session
	if !cache.GetJSON(ctx, s.cache, refreshTokenKeyPrefix+tokenID, &session) {
		return nil, ErrRefreshTokenNotFound
	}
	return &session, nil
}

func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

// BlacklistAccessToken adds an access token to the blacklist until it expires.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, accessTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted checks if an access token is blacklisted.
// Redis being unavailable reads as not blacklisted.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, accessTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
