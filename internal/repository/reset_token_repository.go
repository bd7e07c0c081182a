package repository

import (
	"context"
	"errors"
	"skillup_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

type ResetTokenRepository struct {
	Redis *redis.Client
}

func NewResetTokenRepository(rdb *redis.Client) *ResetTokenRepository {
	return &ResetTokenRepository{Redis: rdb}
}

func resetTokenKey(hash string) string { return "password_reset:" + hash }

func (r *ResetTokenRepository) SaveResetToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error {
	return r.Redis.Set(ctx, resetTokenKey(tokenHash), email, ttl).Err()
}

func (r *ResetTokenRepository) ConsumeResetToken(ctx context.Context, tokenHash string) (string, error) {
	email, err := r.Redis.GetDel(ctx, resetTokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", util.ErrResetTokenInvalid
	}
	return email, err
}
