package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

func loginFailKey(email string) string {
	return "login_fail:" + email
}

// LoginAttemptRepository 记录本地认证的连续登录失败次数
type LoginAttemptRepository struct {
	Redis *redis.Client
}

func NewLoginAttemptRepository(rdb *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{Redis: rdb}
}

func (r *LoginAttemptRepository) Failures(ctx context.Context, email string) (int, error) {
	n, err := r.Redis.Get(ctx, loginFailKey(email)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// RecordFailure 计数加一，窗口从第一次失败开始计算
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, email string, window time.Duration) (int, error) {
	key := loginFailKey(email)
	n, err := r.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.Redis.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.Redis.Del(ctx, loginFailKey(email)).Err()
}
