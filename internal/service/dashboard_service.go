package service

import (
	"context"
	"fmt"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dashboardSubtitle = "Let’s hit today’s learning goal!"

type QuickStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DailyGoal struct {
	Label    string  `json:"label"`
	Minutes  int     `json:"minutes"`
	Progress float64 `json:"progress"`
}

// Dashboard 首页数据
type Dashboard struct {
	Greeting      string            `json:"greeting"`
	Subtitle      string            `json:"subtitle"`
	DailyGoal     DailyGoal         `json:"dailyGoal"`
	Stats         []QuickStat       `json:"stats"`
	Categories    []string          `json:"categories"`
	Filter        model.FilterState `json:"filter"`
	Continue      []model.Course    `json:"continue"`
	Popular       []model.Course    `json:"popular"`
	Suggestions   []model.Course    `json:"suggestions"`
	Plan          []model.Course    `json:"plan"`
	NoResults     bool              `json:"noResults"`
	NoResultsHint string            `json:"noResultsHint,omitempty"`
}

type SearchResult struct {
	Continue []model.Course `json:"continue"`
	Popular  []model.Course `json:"popular"`
}

type CourseDetail struct {
	model.Course
	Description string            `json:"description"`
	InPlan      bool              `json:"inPlan"`
	Navigation  *model.Navigation `json:"navigation"`
}

type DashboardService struct {
	Catalog *CatalogService
	Cache   *catalog.FilterCache
	Plans   PlanStore
	Filters FilterStore

	printer *message.Printer
}

func NewDashboardService(catalogService *CatalogService, cache *catalog.FilterCache, plans PlanStore, filters FilterStore) *DashboardService {
	return &DashboardService{
		Catalog: catalogService,
		Cache:   cache,
		Plans:   plans,
		Filters: filters,
		printer: message.NewPrinter(language.English),
	}
}

// Dashboard 按会话保存的筛选状态组装首页
func (s *DashboardService) Dashboard(ctx context.Context, session *model.Session) (*Dashboard, error) {
	state, err := s.Filters.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	plan, err := s.Plans.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	snap := s.Catalog.Snapshot()
	// 目录重新加载后分类可能已不存在
	if !snap.HasCategory(state.Category) {
		state.Category = model.CategoryAll
	}

	d := &Dashboard{
		Greeting:    fmt.Sprintf("Hi, %s 👋", session.Name()),
		Subtitle:    dashboardSubtitle,
		DailyGoal:   s.dailyGoal(snap),
		Stats:       s.quickStats(snap),
		Categories:  snap.Categories,
		Filter:      state,
		Continue:    s.Cache.Filter(snap, model.SectionContinue, state.SearchText, state.Category),
		Popular:     s.Cache.Filter(snap, model.SectionPopular, state.SearchText, state.Category),
		Suggestions: catalog.Suggest(snap.Courses, state.SearchText),
		Plan:        plan.Items(),
	}
	if len(d.Continue) == 0 && len(d.Popular) == 0 && strings.TrimSpace(state.SearchText) != "" {
		d.NoResults = true
		d.NoResultsHint = util.MsgNoResultsHint
	}
	return d, nil
}

// UpdateFilter 保存筛选状态，分类发生变化时返回提示语
func (s *DashboardService) UpdateFilter(ctx context.Context, session *model.Session, state model.FilterState) (*Dashboard, string, error) {
	if state.Category == "" {
		state.Category = model.CategoryAll
	}
	if !s.Catalog.Snapshot().HasCategory(state.Category) {
		return nil, "", util.ErrUnknownCategory
	}

	prev, err := s.Filters.Get(ctx, session.ID)
	if err != nil {
		return nil, "", err
	}
	if err := s.Filters.Save(ctx, session, state); err != nil {
		return nil, "", err
	}

	d, err := s.Dashboard(ctx, session)
	if err != nil {
		return nil, "", err
	}

	msg := ""
	if prev.Category != state.Category {
		msg = util.MsgFilteredPrefix + state.Category
	}
	return d, msg, nil
}

// Search 无状态搜索，不影响会话中的筛选状态
func (s *DashboardService) Search(searchText, category string) (*SearchResult, error) {
	if category == "" {
		category = model.CategoryAll
	}
	snap := s.Catalog.Snapshot()
	if !snap.HasCategory(category) {
		return nil, util.ErrUnknownCategory
	}
	return &SearchResult{
		Continue: s.Cache.Filter(snap, model.SectionContinue, searchText, category),
		Popular:  s.Cache.Filter(snap, model.SectionPopular, searchText, category),
	}, nil
}

func (s *DashboardService) Suggestions(searchText string) []model.Course {
	return catalog.Suggest(s.Catalog.Snapshot().Courses, searchText)
}

// CourseDetail 课程详情页数据，session 为空时不返回计划状态
func (s *DashboardService) CourseDetail(ctx context.Context, session *model.Session, title string) (*CourseDetail, error) {
	course, ok := s.Catalog.Snapshot().Course(title)
	if !ok {
		return nil, util.ErrCourseNotFound
	}

	detail := &CourseDetail{
		Course:      course,
		Description: course.Description(),
		Navigation:  model.CourseDetailNavigation(course),
	}
	if session != nil {
		plan, err := s.Plans.Get(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		detail.InPlan = plan.Contains(course.Title)
	}
	return detail, nil
}

func (s *DashboardService) quickStats(snap *catalog.Catalog) []QuickStat {
	self := selfEntry(snap)
	return []QuickStat{
		{Label: "Points", Value: s.printer.Sprintf("%d", self.Points)},
		{Label: "Streak", Value: s.printer.Sprintf("%d days", self.Streak)},
		{Label: "Courses", Value: s.printer.Sprintf("%d", snap.Stats.EnrolledCourses)},
	}
}

func (s *DashboardService) dailyGoal(snap *catalog.Catalog) DailyGoal {
	return DailyGoal{
		Label:    fmt.Sprintf("Daily Goal: %d mins", snap.Stats.DailyGoalMinutes),
		Minutes:  snap.Stats.DailyGoalMinutes,
		Progress: snap.Stats.DailyGoalProgress,
	}
}

// selfEntry 首页统计使用总榜中的个人数据
func selfEntry(snap *catalog.Catalog) model.LeaderboardEntry {
	for _, p := range []model.LeaderboardPeriod{model.PeriodAllTime, model.PeriodMonthly, model.PeriodWeekly} {
		if e, ok := snap.Self[p]; ok {
			return e
		}
	}
	return model.LeaderboardEntry{}
}
