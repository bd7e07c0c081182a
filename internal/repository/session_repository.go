package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

func sessionKey(id string) string { return fmt.Sprintf("session:%s", id) }
func planKey(id string) string    { return fmt.Sprintf("plan:%s", id) }
func filterKey(id string) string  { return fmt.Sprintf("filter:%s", id) }

// sessionTTL 会话相关的 key 与会话同时过期
func sessionTTL(s *model.Session) time.Duration {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

type SessionRepository struct {
	Redis *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{Redis: rdb}
}

func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, sessionKey(session.ID), data, sessionTTL(session)).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.Redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete 删除会话以及它的学习计划和筛选状态
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, sessionKey(id), planKey(id), filterKey(id)).Err()
}
