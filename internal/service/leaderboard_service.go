package service

import (
	"context"
	"fmt"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/logger"

	"go.uber.org/zap"
)

const podiumSize = 3

type RankedEntry struct {
	model.LeaderboardEntry
	Progress float64 `json:"progress"`
}

// YourRank 当前用户所在行，名字替换为会话中的展示名
type YourRank struct {
	RankedEntry
	Summary string `json:"summary"`
}

type Leaderboard struct {
	Period  model.LeaderboardPeriod   `json:"period"`
	Periods []model.LeaderboardPeriod `json:"periods"`
	Podium  []RankedEntry             `json:"podium"`
	Entries []RankedEntry             `json:"entries"`
	You     *YourRank                 `json:"you,omitempty"`
}

type LeaderboardService struct {
	Catalog *CatalogService
	Cache   LeaderboardCache
}

func NewLeaderboardService(catalogService *CatalogService, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{Catalog: catalogService, Cache: cache}
}

// Leaderboard period 为空时默认周榜
func (s *LeaderboardService) Leaderboard(ctx context.Context, session *model.Session, period model.LeaderboardPeriod) (*Leaderboard, error) {
	if period == "" {
		period = model.PeriodWeekly
	}
	if !period.IsValid() {
		return nil, util.ErrUnknownPeriod
	}

	snap := s.Catalog.Snapshot()
	entries := s.entries(ctx, snap, period)

	lb := &Leaderboard{
		Period:  period,
		Periods: model.LeaderboardPeriods,
		Podium:  make([]RankedEntry, 0, podiumSize),
		Entries: make([]RankedEntry, 0, len(entries)),
	}
	for i, e := range entries {
		ranked := RankedEntry{LeaderboardEntry: e, Progress: e.Progress()}
		if i < podiumSize {
			lb.Podium = append(lb.Podium, ranked)
		}
		lb.Entries = append(lb.Entries, ranked)
	}

	if self, ok := snap.Self[period]; ok {
		self.Name = session.Name()
		lb.You = &YourRank{
			RankedEntry: RankedEntry{LeaderboardEntry: self, Progress: self.Progress()},
			Summary:     fmt.Sprintf("#%d • %d pts • 🔥 %dd", self.Rank, self.Points, self.Streak),
		}
	}
	return lb, nil
}

// entries 优先读 Redis 缓存，缓存不可用时直接使用内存快照
func (s *LeaderboardService) entries(ctx context.Context, snap *catalog.Catalog, period model.LeaderboardPeriod) []model.LeaderboardEntry {
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, snap.Version, period)
		if err != nil {
			logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
		} else if ok {
			return cached
		}
	}

	entries := snap.Leaderboard[period]
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, snap.Version, period, entries); err != nil {
			logger.Log.Warn("Leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries
}
