package service

import (
	"context"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
)

// 服务依赖的存储接口，由 repository 包实现，测试中使用内存实现

type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type PlanStore interface {
	Get(ctx context.Context, sessionID string) (*catalog.PlanList, error)
	Update(ctx context.Context, session *model.Session, mutate func(*catalog.PlanList) bool) (*catalog.PlanList, bool, error)
}

type FilterStore interface {
	Get(ctx context.Context, sessionID string) (model.FilterState, error)
	Save(ctx context.Context, session *model.Session, state model.FilterState) error
}

// LeaderboardCache 以目录版本区分缓存，version 取自读取时的快照
type LeaderboardCache interface {
	Get(ctx context.Context, version uint64, period model.LeaderboardPeriod) ([]model.LeaderboardEntry, bool, error)
	Set(ctx context.Context, version uint64, period model.LeaderboardPeriod, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type CatalogPersister interface {
	Replace(ctx context.Context, seed *catalog.Seed) error
	Load(ctx context.Context) (*catalog.Seed, error)
}
