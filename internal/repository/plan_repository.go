package repository

import (
	"context"
	"errors"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

// 乐观锁冲突时的最大重试次数
const planUpdateRetries = 3

// PlanRepository 每个会话一份学习计划，随会话过期
type PlanRepository struct {
	Redis *redis.Client
}

func NewPlanRepository(rdb *redis.Client) *PlanRepository {
	return &PlanRepository{Redis: rdb}
}

func (r *PlanRepository) Get(ctx context.Context, sessionID string) (*catalog.PlanList, error) {
	return loadPlan(ctx, r.Redis, planKey(sessionID))
}

func loadPlan(ctx context.Context, cmd redis.Cmdable, key string) (*catalog.PlanList, error) {
	plan := catalog.NewPlanList()
	data, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return plan, nil
	}
	if err != nil {
		return nil, err
	}
	if err := plan.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return plan, nil
}

// Update 在 WATCH 事务中读取、修改并写回计划，mutate 返回 false 时不写入
func (r *PlanRepository) Update(ctx context.Context, session *model.Session, mutate func(*catalog.PlanList) bool) (*catalog.PlanList, bool, error) {
	key := planKey(session.ID)
	var (
		result  *catalog.PlanList
		changed bool
	)

	txf := func(tx *redis.Tx) error {
		plan, err := loadPlan(ctx, tx, key)
		if err != nil {
			return err
		}
		changed = mutate(plan)
		result = plan
		if !changed {
			return nil
		}

		data, err := plan.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, sessionTTL(session))
			return nil
		})
		return err
	}

	for i := 0; i < planUpdateRetries; i++ {
		err := r.Redis.Watch(ctx, txf, key)
		if err == nil {
			return result, changed, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, false, err
	}
	return nil, false, util.ErrConcurrentUpdate
}
