package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carrental/internal/cache"
	"carrental/internal/model"
)

const refreshTokenKeyPrefix = "refresh_token:"

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, principal Principal, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (Principal, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
// Keys expire together with the token, so revocation is just a delete.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores the principal behind a refresh token with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, principal Principal, ttl time.Duration) error {
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves the principal for a refresh token ID.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (Principal, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return Principal{}, fmt.Errorf("refresh token not found")
	}

	var principal Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		return Principal{}, fmt.Errorf("unmarshal principal: %w", err)
	}
	if principal.Username == "" || (principal.Role != model.RoleUser && principal.Role != model.RoleAdmin) {
		return Principal{}, fmt.Errorf("invalid principal in token store")
	}
	return principal, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
