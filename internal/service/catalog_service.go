package service

import (
	"context"
	"fmt"
	"skillup_backend/internal/catalog"
	"skillup_backend/pkg/configwatcher"
	"skillup_backend/pkg/logger"
	"skillup_backend/pkg/monitoring"
	"sync"

	"go.uber.org/zap"
)

// CatalogService 负责加载目录并在内存中提供快照
type CatalogService struct {
	Source      CatalogSource
	Store       *catalog.Store
	Persister   CatalogPersister
	Leaderboard LeaderboardCache

	// 串行化加载，避免热加载与手动加载交错写库
	loadMu sync.Mutex
}

func NewCatalogService(source CatalogSource, store *catalog.Store, persister CatalogPersister, leaderboard LeaderboardCache) *CatalogService {
	return &CatalogService{
		Source:      source,
		Store:       store,
		Persister:   persister,
		Leaderboard: leaderboard,
	}
}

func (s *CatalogService) Snapshot() *catalog.Catalog {
	return s.Store.Snapshot()
}

// Load 从数据来源读取目录，校验通过后写库并替换内存快照。
// 来源不可用且内存中还没有目录时，回退到数据库中上一次保存的目录。
func (s *CatalogService) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	seed, err := s.Source.Fetch(ctx)
	if err != nil {
		monitoring.CatalogReloads.WithLabelValues(s.Source.Name(), "error").Inc()
		if s.Store.Snapshot().Version > 0 {
			return nil, fmt.Errorf("fetching catalog from %s: %w", s.Source.Name(), err)
		}
		return s.loadPersisted(ctx, err)
	}

	if s.Persister != nil {
		if perr := s.Persister.Replace(ctx, seed); perr != nil {
			logger.Log.Warn("Failed to persist catalog", zap.Error(perr))
		}
	}

	c := s.swap(ctx, seed)
	monitoring.CatalogReloads.WithLabelValues(s.Source.Name(), "success").Inc()
	logger.Log.Info("Catalog loaded",
		zap.String("source", s.Source.Name()),
		zap.Uint64("version", c.Version),
		zap.Int("courses", len(c.Courses)))
	return c, nil
}

func (s *CatalogService) loadPersisted(ctx context.Context, cause error) (*catalog.Catalog, error) {
	if s.Persister == nil {
		return nil, fmt.Errorf("fetching catalog from %s: %w", s.Source.Name(), cause)
	}

	seed, err := s.Persister.Load(ctx)
	if err != nil || seed == nil {
		return nil, fmt.Errorf("fetching catalog from %s: %w", s.Source.Name(), cause)
	}
	if err := seed.Normalize(); err != nil {
		return nil, err
	}

	logger.Log.Warn("Catalog source unavailable, using persisted catalog",
		zap.String("source", s.Source.Name()), zap.Error(cause))
	return s.swap(ctx, seed), nil
}

func (s *CatalogService) swap(ctx context.Context, seed *catalog.Seed) *catalog.Catalog {
	c := s.Store.Replace(seed)
	if s.Leaderboard != nil {
		if err := s.Leaderboard.Invalidate(ctx); err != nil {
			logger.Log.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
		}
	}
	return c
}

// Watch 本地文件来源时监听文件变化并重新加载，阻塞直到 ctx 取消
func (s *CatalogService) Watch(ctx context.Context) error {
	local, ok := s.Source.(*LocalFileSource)
	if !ok {
		return nil
	}
	return configwatcher.Watch(ctx, local.Path, configwatcher.DefaultDebounce, func() {
		if _, err := s.Load(ctx); err != nil {
			logger.Log.Error("Catalog reload failed, keeping previous version", zap.Error(err))
		}
	})
}
