package service

import (
	"context"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/monitoring"
)

// PlanResult 计划变更后的提示语与最新列表
type PlanResult struct {
	Message string         `json:"-"`
	Changed bool           `json:"changed"`
	Plan    []model.Course `json:"plan"`
}

type PlanService struct {
	Catalog *CatalogService
	Plans   PlanStore
}

func NewPlanService(catalogService *CatalogService, plans PlanStore) *PlanService {
	return &PlanService{Catalog: catalogService, Plans: plans}
}

func (s *PlanService) List(ctx context.Context, session *model.Session) ([]model.Course, error) {
	plan, err := s.Plans.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return plan.Items(), nil
}

// Add 按标题加入计划，重复加入不改变列表
func (s *PlanService) Add(ctx context.Context, session *model.Session, title string) (*PlanResult, error) {
	course, ok := s.Catalog.Snapshot().Course(title)
	if !ok {
		monitoring.PlanMutations.WithLabelValues("add", "not_found").Inc()
		return nil, util.ErrCourseNotFound
	}

	plan, changed, err := s.Plans.Update(ctx, session, func(p *catalog.PlanList) bool {
		return p.Add(course)
	})
	if err != nil {
		monitoring.PlanMutations.WithLabelValues("add", "error").Inc()
		return nil, err
	}

	if !changed {
		monitoring.PlanMutations.WithLabelValues("add", "noop").Inc()
		return &PlanResult{Message: util.MsgAlreadyInPlan, Plan: plan.Items()}, nil
	}
	monitoring.PlanMutations.WithLabelValues("add", "changed").Inc()
	return &PlanResult{Message: util.MsgAddedToPlan, Changed: true, Plan: plan.Items()}, nil
}

// Remove 不要求课程仍在目录中，目录重新加载后也能移除
func (s *PlanService) Remove(ctx context.Context, session *model.Session, title string) (*PlanResult, error) {
	plan, changed, err := s.Plans.Update(ctx, session, func(p *catalog.PlanList) bool {
		return p.RemoveTitle(title)
	})
	if err != nil {
		monitoring.PlanMutations.WithLabelValues("remove", "error").Inc()
		return nil, err
	}

	if !changed {
		monitoring.PlanMutations.WithLabelValues("remove", "noop").Inc()
		return &PlanResult{Message: util.MsgNotInPlan, Plan: plan.Items()}, nil
	}
	monitoring.PlanMutations.WithLabelValues("remove", "changed").Inc()
	return &PlanResult{Message: util.MsgRemovedFromPlan, Changed: true, Plan: plan.Items()}, nil
}
