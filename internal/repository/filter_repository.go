package repository

import (
	"context"
	"encoding/json"
	"errors"
	"skillup_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// FilterRepository 保存首页的搜索词和分类
type FilterRepository struct {
	Redis *redis.Client
}

func NewFilterRepository(rdb *redis.Client) *FilterRepository {
	return &FilterRepository{Redis: rdb}
}

func (r *FilterRepository) Get(ctx context.Context, sessionID string) (model.FilterState, error) {
	data, err := r.Redis.Get(ctx, filterKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.DefaultFilterState(), nil
	}
	if err != nil {
		return model.FilterState{}, err
	}

	state := model.DefaultFilterState()
	if err := json.Unmarshal(data, &state); err != nil {
		return model.FilterState{}, err
	}
	return state, nil
}

func (r *FilterRepository) Save(ctx context.Context, session *model.Session, state model.FilterState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, filterKey(session.ID), data, sessionTTL(session)).Err()
}
