package service

import (
	"context"
	"errors"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/config"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"sync"
	"time"
)

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*model.Session)}
}

func (m *memSessions) Save(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type memPlans struct {
	mu    sync.Mutex
	plans map[string][]byte
}

func newMemPlans() *memPlans {
	return &memPlans{plans: make(map[string][]byte)}
}

func (m *memPlans) Get(ctx context.Context, sessionID string) (*catalog.PlanList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(sessionID)
}

func (m *memPlans) load(sessionID string) (*catalog.PlanList, error) {
	plan := catalog.NewPlanList()
	if data, ok := m.plans[sessionID]; ok {
		if err := plan.UnmarshalJSON(data); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func (m *memPlans) Update(ctx context.Context, session *model.Session, mutate func(*catalog.PlanList) bool) (*catalog.PlanList, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, err := m.load(session.ID)
	if err != nil {
		return nil, false, err
	}
	if !mutate(plan) {
		return plan, false, nil
	}
	data, err := plan.MarshalJSON()
	if err != nil {
		return nil, false, err
	}
	m.plans[session.ID] = data
	return plan, true, nil
}

type memFilters struct {
	mu     sync.Mutex
	states map[string]model.FilterState
}

func newMemFilters() *memFilters {
	return &memFilters{states: make(map[string]model.FilterState)}
}

func (m *memFilters) Get(ctx context.Context, sessionID string) (model.FilterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[sessionID]; ok {
		return s, nil
	}
	return model.DefaultFilterState(), nil
}

func (m *memFilters) Save(ctx context.Context, session *model.Session, state model.FilterState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[session.ID] = state
	return nil
}

type lbKey struct {
	version uint64
	period  model.LeaderboardPeriod
}

type memLeaderboard struct {
	entries     map[lbKey][]model.LeaderboardEntry
	gets        int
	invalidated int
}

func newMemLeaderboard() *memLeaderboard {
	return &memLeaderboard{entries: make(map[lbKey][]model.LeaderboardEntry)}
}

func (m *memLeaderboard) Get(ctx context.Context, version uint64, period model.LeaderboardPeriod) ([]model.LeaderboardEntry, bool, error) {
	m.gets++
	e, ok := m.entries[lbKey{version, period}]
	return e, ok, nil
}

func (m *memLeaderboard) Set(ctx context.Context, version uint64, period model.LeaderboardPeriod, entries []model.LeaderboardEntry) error {
	m.entries[lbKey{version, period}] = entries
	return nil
}

func (m *memLeaderboard) Invalidate(ctx context.Context) error {
	m.invalidated++
	m.entries = make(map[lbKey][]model.LeaderboardEntry)
	return nil
}

type memPersister struct {
	seed       *catalog.Seed
	replaced   int
	replaceErr error
}

func (m *memPersister) Replace(ctx context.Context, seed *catalog.Seed) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced++
	m.seed = seed
	return nil
}

func (m *memPersister) Load(ctx context.Context) (*catalog.Seed, error) {
	return m.seed, nil
}

type stubSource struct {
	seed *catalog.Seed
	err  error
}

func (s *stubSource) Fetch(ctx context.Context) (*catalog.Seed, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.seed, nil
}

func (s *stubSource) Name() string { return "stub" }

// fakeGateway 记录调用次数，返回预设结果
type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	identity *authgateway.Identity
	err      error
}

func (g *fakeGateway) record() (*authgateway.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.identity, g.err
}

func (g *fakeGateway) SignIn(ctx context.Context, email, password string) (*authgateway.Identity, error) {
	return g.record()
}

func (g *fakeGateway) SignUp(ctx context.Context, email, password string) (*authgateway.Identity, error) {
	return g.record()
}

func (g *fakeGateway) SendPasswordReset(ctx context.Context, email string) error {
	_, err := g.record()
	return err
}

func (g *fakeGateway) Name() string { return "fake" }

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
}

func loadedCatalog() *CatalogService {
	svc := NewCatalogService(BuiltinSource{}, catalog.NewStore(), nil, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func testSession() *model.Session {
	return &model.Session{ID: "sid-1", UserID: "uid-1", Email: "ana@example.com", DisplayName: "Ana", ExpiresAt: time.Now().Add(time.Hour)}
}

var errBoom = errors.New("boom")
