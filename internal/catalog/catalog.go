package catalog

import (
	"sync"

	"skillup_backend/internal/model"
)

// Catalog 某一版本的只读目录快照
type Catalog struct {
	Version      uint64
	Categories   []string // 首项恒为 All
	Courses      []model.Course
	Leaderboard  map[model.LeaderboardPeriod][]model.LeaderboardEntry
	Self         map[model.LeaderboardPeriod]model.LeaderboardEntry
	Achievements []model.Achievement
	Stats        Stats
}

// Stats 首页顶部的统计卡片
type Stats struct {
	EnrolledCourses   int     `yaml:"enrolled_courses"`
	DailyGoalMinutes  int     `yaml:"daily_goal_minutes"`
	DailyGoalProgress float64 `yaml:"daily_goal_progress"` // 0~1
}

// Section 返回某个首页列表中的课程，保持原顺序
func (c *Catalog) Section(section model.CourseSection) []model.Course {
	out := make([]model.Course, 0, len(c.Courses))
	for _, course := range c.Courses {
		if course.Section == section {
			out = append(out, course)
		}
	}
	return out
}

func (c *Catalog) Course(title string) (model.Course, bool) {
	for _, course := range c.Courses {
		if course.Title == title {
			return course, true
		}
	}
	return model.Course{}, false
}

// HasCategory All 也算合法分类
func (c *Catalog) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// Store 持有当前目录快照，重新加载时整体替换
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	version uint64
}

func NewStore() *Store {
	return &Store{}
}

// Replace 用 seed 构建新快照并返回，版本号单调递增
func (s *Store) Replace(seed *Seed) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	c := seed.build(s.version)
	s.current = c
	return c
}

// Snapshot 未加载时返回空目录
func (s *Store) Snapshot() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return &Catalog{
			Categories:  []string{model.CategoryAll},
			Leaderboard: map[model.LeaderboardPeriod][]model.LeaderboardEntry{},
			Self:        map[model.LeaderboardPeriod]model.LeaderboardEntry{},
		}
	}
	return s.current
}
