package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func testSession(id string) *model.Session {
	return &model.Session{
		ID:          id,
		UserID:      "u-" + id,
		Email:       id + "@skillup.dev",
		DisplayName: "Learner",
		Provider:    "local",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func assertAbout(t *testing.T, want, got time.Duration) {
	t.Helper()
	assert.True(t, got > want-time.Minute && got <= want, "ttl %s, want about %s", got, want)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	sessions := NewSessionRepository(rdb)
	plans := NewPlanRepository(rdb)
	filters := NewFilterRepository(rdb)
	s := testSession("s1")

	_, err := sessions.Get(ctx, "s1")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	require.NoError(t, sessions.Save(ctx, s))
	got, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, s.Email, got.Email)
	assert.Equal(t, s.Provider, got.Provider)

	_, _, err = plans.Update(ctx, s, func(p *catalog.PlanList) bool {
		return p.Add(model.NewCourse("Kotlin Basics", model.LevelBeginner, "4h", "Programming"))
	})
	require.NoError(t, err)
	require.NoError(t, filters.Save(ctx, s, model.FilterState{SearchText: "kot", Category: "Programming"}))

	require.NoError(t, sessions.Delete(ctx, "s1"))
	for _, key := range []string{"session:s1", "plan:s1", "filter:s1"} {
		assert.False(t, mr.Exists(key), key)
	}
	_, err = sessions.Get(ctx, "s1")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSessionScopedKeysExpireWithSession(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	s := testSession("s1")

	require.NoError(t, NewSessionRepository(rdb).Save(ctx, s))
	_, _, err := NewPlanRepository(rdb).Update(ctx, s, func(p *catalog.PlanList) bool {
		return p.Add(model.NewCourse("Kotlin Basics", model.LevelBeginner, "4h", "Programming"))
	})
	require.NoError(t, err)
	require.NoError(t, NewFilterRepository(rdb).Save(ctx, s, model.FilterState{SearchText: "ui", Category: "Design"}))

	for _, key := range []string{"session:s1", "plan:s1", "filter:s1"} {
		assertAbout(t, time.Hour, mr.TTL(key))
	}

	mr.FastForward(time.Hour + time.Second)
	for _, key := range []string{"session:s1", "plan:s1", "filter:s1"} {
		assert.False(t, mr.Exists(key), key)
	}

	plan, err := NewPlanRepository(rdb).Get(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, plan.Len())
	state, err := NewFilterRepository(rdb).Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFilterState(), state)
}

func TestFilterRepository_RoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	filters := NewFilterRepository(rdb)
	s := testSession("s1")

	state, err := filters.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFilterState(), state)

	want := model.FilterState{SearchText: "swift", Category: "Programming"}
	require.NoError(t, filters.Save(ctx, s, want))
	state, err = filters.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, state)
}

func TestPlanRepository_UnchangedIsNotWritten(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	plans := NewPlanRepository(rdb)
	s := testSession("s1")

	plan, changed, err := plans.Update(ctx, s, func(p *catalog.PlanList) bool {
		return p.RemoveTitle("Kotlin Basics")
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, plan.Len())
	assert.False(t, mr.Exists("plan:s1"))
}

func TestPlanRepository_ConcurrentUpdatesKeepTitlesUnique(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	plans := NewPlanRepository(rdb)
	s := testSession("s1")

	const workers = 20
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		added       = map[string]bool{}
		conflicts   int
		otherErrors []error
	)
	for i := 0; i < workers; i++ {
		title := "Kotlin Basics"
		if i%2 == 1 {
			title = fmt.Sprintf("Course %02d", i)
		}
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			_, _, err := plans.Update(ctx, s, func(p *catalog.PlanList) bool {
				return p.Add(model.NewCourse(title, model.LevelBeginner, "2h", "Programming"))
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				added[title] = true
			case errors.Is(err, util.ErrConcurrentUpdate):
				conflicts++
			default:
				otherErrors = append(otherErrors, err)
			}
		}(title)
	}
	wg.Wait()

	assert.Empty(t, otherErrors)
	plan, err := plans.Get(ctx, "s1")
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, c := range plan.Items() {
		assert.False(t, seen[c.Title], "duplicate %q", c.Title)
		seen[c.Title] = true
	}
	// 成功返回的更新都必须落盘，失败的只能是冲突
	assert.Equal(t, added, seen)
	assert.LessOrEqual(t, conflicts, workers-1)
}

func TestPlanRepository_GivesUpAfterRetries(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	plans := NewPlanRepository(rdb)
	s := testSession("s1")
	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = other.Close() })

	attempts := 0
	_, _, err := plans.Update(ctx, s, func(p *catalog.PlanList) bool {
		attempts++
		// 每次读完之后都有另一个连接改写同一个 key
		require.NoError(t, other.Set(ctx, "plan:s1", fmt.Sprintf(`[{"title":"Other %d"}]`, attempts), 0).Err())
		return p.Add(model.NewCourse("Kotlin Basics", model.LevelBeginner, "4h", "Programming"))
	})

	assert.ErrorIs(t, err, util.ErrConcurrentUpdate)
	assert.Equal(t, planUpdateRetries, attempts)
	plan, err := plans.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, plan.Contains("Kotlin Basics"))
}

func TestResetTokenRepository_SingleUse(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	tokens := NewResetTokenRepository(rdb)

	require.NoError(t, tokens.SaveResetToken(ctx, "hash-1", "maya@skillup.dev", 15*time.Minute))
	assertAbout(t, 15*time.Minute, mr.TTL("password_reset:hash-1"))

	email, err := tokens.ConsumeResetToken(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "maya@skillup.dev", email)
	assert.False(t, mr.Exists("password_reset:hash-1"))

	_, err = tokens.ConsumeResetToken(ctx, "hash-1")
	assert.ErrorIs(t, err, util.ErrResetTokenInvalid)
}

func TestResetTokenRepository_Expires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	tokens := NewResetTokenRepository(rdb)

	require.NoError(t, tokens.SaveResetToken(ctx, "hash-1", "maya@skillup.dev", 15*time.Minute))
	mr.FastForward(16 * time.Minute)

	_, err := tokens.ConsumeResetToken(ctx, "hash-1")
	assert.ErrorIs(t, err, util.ErrResetTokenInvalid)
}

func TestLoginAttemptRepository_WindowStartsAtFirstFailure(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	attempts := NewLoginAttemptRepository(rdb)
	const window = 15 * time.Minute

	n, err := attempts.Failures(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = attempts.RecordFailure(ctx, "a@b.com", window)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assertAbout(t, window, mr.TTL("login_fail:a@b.com"))

	mr.FastForward(5 * time.Minute)
	n, err = attempts.RecordFailure(ctx, "a@b.com", window)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	// 后续失败不会延长窗口
	assertAbout(t, 10*time.Minute, mr.TTL("login_fail:a@b.com"))

	n, err = attempts.Failures(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mr.FastForward(11 * time.Minute)
	n, err = attempts.Failures(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoginAttemptRepository_Reset(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	attempts := NewLoginAttemptRepository(rdb)

	for i := 0; i < 3; i++ {
		_, err := attempts.RecordFailure(ctx, "a@b.com", time.Minute)
		require.NoError(t, err)
	}
	require.NoError(t, attempts.Reset(ctx, "a@b.com"))
	assert.False(t, mr.Exists("login_fail:a@b.com"))

	n, err := attempts.RecordFailure(ctx, "a@b.com", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLeaderboardCache_KeyedByVersion(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	cache := NewLeaderboardCache(rdb, 5*time.Minute)
	v1 := []model.LeaderboardEntry{{Period: model.PeriodWeekly, Rank: 1, Name: "Old", Points: 10}}
	v2 := []model.LeaderboardEntry{{Period: model.PeriodWeekly, Rank: 1, Name: "New", Points: 20}}

	_, ok, err := cache.Get(ctx, 1, model.PeriodWeekly)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, 1, model.PeriodWeekly, v1))
	require.NoError(t, cache.Set(ctx, 2, model.PeriodWeekly, v2))
	assertAbout(t, 5*time.Minute, mr.TTL("leaderboard:2:weekly"))

	got, ok, err := cache.Get(ctx, 2, model.PeriodWeekly)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New", got[0].Name)

	got, ok, err = cache.Get(ctx, 1, model.PeriodWeekly)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Old", got[0].Name)

	_, ok, err = cache.Get(ctx, 2, model.PeriodMonthly)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeaderboardCache_InvalidateDropsAllVersions(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	cache := NewLeaderboardCache(rdb, time.Minute)

	require.NoError(t, cache.Invalidate(ctx))

	entries := []model.LeaderboardEntry{{Period: model.PeriodWeekly, Rank: 1, Name: "Aarav", Points: 10}}
	require.NoError(t, cache.Set(ctx, 1, model.PeriodWeekly, entries))
	require.NoError(t, cache.Set(ctx, 2, model.PeriodMonthly, entries))
	require.NoError(t, NewSessionRepository(rdb).Save(ctx, testSession("s1")))

	require.NoError(t, cache.Invalidate(ctx))
	assert.Equal(t, []string{"session:s1"}, mr.Keys())

	_, ok, err := cache.Get(ctx, 2, model.PeriodMonthly)
	require.NoError(t, err)
	assert.False(t, ok)
}
