// Package servicetest 提供服务层存储接口的内存实现，供 handler 测试使用。
package servicetest

import (
	"context"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"sync"
)

type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*model.Session)}
}

func (m *Sessions) Save(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *Sessions) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return s, nil
}

func (m *Sessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type Plans struct {
	mu    sync.Mutex
	plans map[string][]model.Course
}

func NewPlans() *Plans {
	return &Plans{plans: make(map[string][]model.Course)}
}

func (m *Plans) Get(ctx context.Context, sessionID string) (*catalog.PlanList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return catalog.NewPlanList(m.plans[sessionID]...), nil
}

func (m *Plans) Update(ctx context.Context, session *model.Session, mutate func(*catalog.PlanList) bool) (*catalog.PlanList, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan := catalog.NewPlanList(m.plans[session.ID]...)
	changed := mutate(plan)
	if changed {
		m.plans[session.ID] = plan.Items()
	}
	return plan, changed, nil
}

type Filters struct {
	mu     sync.Mutex
	states map[string]model.FilterState
}

func NewFilters() *Filters {
	return &Filters{states: make(map[string]model.FilterState)}
}

func (m *Filters) Get(ctx context.Context, sessionID string) (model.FilterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[sessionID]; ok {
		return s, nil
	}
	return model.DefaultFilterState(), nil
}

func (m *Filters) Save(ctx context.Context, session *model.Session, state model.FilterState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[session.ID] = state
	return nil
}

// Gateway 返回预设结果的认证网关
type Gateway struct {
	mu       sync.Mutex
	Identity *authgateway.Identity
	Err      error
	Calls    int
}

func (g *Gateway) result() (*authgateway.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++
	return g.Identity, g.Err
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (*authgateway.Identity, error) {
	return g.result()
}

func (g *Gateway) SignUp(ctx context.Context, email, password string) (*authgateway.Identity, error) {
	return g.result()
}

func (g *Gateway) SendPasswordReset(ctx context.Context, email string) error {
	_, err := g.result()
	return err
}

func (g *Gateway) Name() string { return "test" }
