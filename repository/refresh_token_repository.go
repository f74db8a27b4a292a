package repository

import (
	"context"
	"fmt"
	"go-jobs-api/logger"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRefreshTokenRepository defines the contract for the Redis-backed refresh
// token store. A record maps (userID, jti) to the exact token string issued;
// once the TTL runs out the token is implicitly revoked.
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID, jti, token string, ttl time.Duration) error
	Get(ctx context.Context, userID, jti string) (string, error)
	Delete(ctx context.Context, userID, jti string) error
}

type RefreshTokenRepository struct {
	client ICacheClient
}

func NewRefreshTokenRepository(client ICacheClient) *RefreshTokenRepository {
	return &RefreshTokenRepository{client: client}
}

func refreshKey(userID, jti string) string {
	return fmt.Sprintf("refresh:%s:%s", userID, jti)
}

// Save upserts the record, overwriting any prior value for the same key.
func (r *RefreshTokenRepository) Save(ctx context.Context, userID, jti, token string, ttl time.Duration) error {
	key := refreshKey(userID, jti)
	if err := r.client.Set(ctx, key, token, ttl).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
			"jti":     jti,
		}).WithError(err).Error("Failed to save refresh token")
		return err
	}
	return nil
}

// Get returns the stored token string, or "" with a nil error when the record
// has expired or been deleted. An empty result means "revoked" to callers.
func (r *RefreshTokenRepository) Get(ctx context.Context, userID, jti string) (string, error) {
	token, err := r.client.Get(ctx, refreshKey(userID, jti)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
			"jti":     jti,
		}).WithError(err).Error("Failed to get refresh token")
		return "", err
	}
	return token, nil
}

// Delete removes the record. Deleting an absent record is a no-op.
func (r *RefreshTokenRepository) Delete(ctx context.Context, userID, jti string) error {
	if err := r.client.Del(ctx, refreshKey(userID, jti)).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
			"jti":     jti,
		}).WithError(err).Error("Failed to delete refresh token")
		return err
	}
	return nil
}
