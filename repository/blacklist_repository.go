package repository

import (
	"context"
	"go-jobs-api/logger"
	"time"
)

// IBlacklistRepository defines the contract for access token revocation.
// A revoked token is marked in Redis until its natural expiry, at which point
// the marker becomes unnecessary and simply falls out of the store.
type IBlacklistRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type BlacklistRepository struct {
	client ICacheClient
}

func NewBlacklistRepository(client ICacheClient) *BlacklistRepository {
	return &BlacklistRepository{client: client}
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// Revoke writes the marker with the token's remaining lifetime. A token that
// has already expired needs no entry, so non-positive TTLs are skipped.
func (r *BlacklistRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to blacklist access token")
		return err
	}
	return nil
}

func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to check access token blacklist")
		return false, err
	}
	return n > 0, nil
}
