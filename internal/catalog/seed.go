package catalog

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
)

// Seed 目录数据文件（YAML）的结构
type Seed struct {
	Categories []string `yaml:"categories"`
	Courses    struct {
		Continue []model.Course `yaml:"continue"`
		Popular  []model.Course `yaml:"popular"`
	} `yaml:"courses"`
	Leaderboard  []model.LeaderboardEntry `yaml:"leaderboard"`
	Achievements []model.Achievement      `yaml:"achievements"`
	Stats        Stats                    `yaml:"stats"`
}

// ParseSeed 解析并校验 YAML 目录数据
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidCatalog, err)
	}
	if err := seed.Normalize(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Marshal 导出为 YAML
func (s *Seed) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Normalize 补全默认值并检查不变量
func (s *Seed) Normalize() error {
	seenCategory := map[string]bool{}
	categories := make([]string, 0, len(s.Categories))
	for _, name := range s.Categories {
		name = strings.TrimSpace(name)
		if name == "" || name == model.CategoryAll || seenCategory[name] {
			continue
		}
		seenCategory[name] = true
		categories = append(categories, name)
	}
	s.Categories = categories

	titles := map[string]bool{}
	fix := func(list []model.Course, section model.CourseSection) error {
		for i := range list {
			c := &list[i]
			c.Title = strings.TrimSpace(c.Title)
			if c.Title == "" {
				return fmt.Errorf("%w: course without title in %s", util.ErrInvalidCatalog, section)
			}
			if titles[c.Title] {
				return fmt.Errorf("%w: duplicate course title %q", util.ErrInvalidCatalog, c.Title)
			}
			titles[c.Title] = true
			if !c.Level.IsValid() {
				return fmt.Errorf("%w: course %q has unknown level %q", util.ErrInvalidCatalog, c.Title, c.Level)
			}
			if c.Category == "" {
				c.Category = model.DefaultCategory
			}
			c.Section = section
		}
		return nil
	}
	if err := fix(s.Courses.Continue, model.SectionContinue); err != nil {
		return err
	}
	if err := fix(s.Courses.Popular, model.SectionPopular); err != nil {
		return err
	}
	// 课程用到但未声明的分类追加到末尾，否则按分类筛选时无法选中
	for _, list := range [][]model.Course{s.Courses.Continue, s.Courses.Popular} {
		for _, c := range list {
			if !seenCategory[c.Category] {
				seenCategory[c.Category] = true
				s.Categories = append(s.Categories, c.Category)
			}
		}
	}

	ranks := map[model.LeaderboardPeriod]map[int]bool{}
	selves := map[model.LeaderboardPeriod]bool{}
	for _, e := range s.Leaderboard {
		if !e.Period.IsValid() {
			return fmt.Errorf("%w: unknown leaderboard period %q", util.ErrInvalidCatalog, e.Period)
		}
		if e.Rank <= 0 {
			return fmt.Errorf("%w: rank must be positive, got %d", util.ErrInvalidCatalog, e.Rank)
		}
		if e.Points < 0 || e.Streak < 0 {
			return fmt.Errorf("%w: negative points or streak for %q", util.ErrInvalidCatalog, e.Name)
		}
		if e.IsSelf {
			if selves[e.Period] {
				return fmt.Errorf("%w: more than one self entry in %s", util.ErrInvalidCatalog, e.Period)
			}
			selves[e.Period] = true
			continue
		}
		if ranks[e.Period] == nil {
			ranks[e.Period] = map[int]bool{}
		}
		if ranks[e.Period][e.Rank] {
			return fmt.Errorf("%w: duplicate rank %d in %s", util.ErrInvalidCatalog, e.Rank, e.Period)
		}
		ranks[e.Period][e.Rank] = true
	}

	if s.Stats.EnrolledCourses < 0 || s.Stats.DailyGoalMinutes < 0 {
		return fmt.Errorf("%w: stats must not be negative", util.ErrInvalidCatalog)
	}
	if s.Stats.DailyGoalProgress < 0 || s.Stats.DailyGoalProgress > 1 {
		return fmt.Errorf("%w: daily_goal_progress must be within [0, 1]", util.ErrInvalidCatalog)
	}
	return nil
}

// Flatten 课程按 continue、popular 顺序排列，并写入位置
func (s *Seed) Flatten() []model.Course {
	out := make([]model.Course, 0, len(s.Courses.Continue)+len(s.Courses.Popular))
	out = append(out, s.Courses.Continue...)
	out = append(out, s.Courses.Popular...)
	for i := range out {
		out[i].Position = i
	}
	return out
}

// FromRecords 由数据库中的记录还原 seed
func FromRecords(categories []model.Category, courses []model.Course, entries []model.LeaderboardEntry, achievements []model.Achievement, stats Stats) *Seed {
	s := &Seed{Leaderboard: entries, Achievements: achievements, Stats: stats}
	for _, c := range categories {
		s.Categories = append(s.Categories, c.Name)
	}
	for _, c := range courses {
		if c.Section == model.SectionContinue {
			s.Courses.Continue = append(s.Courses.Continue, c)
		} else {
			s.Courses.Popular = append(s.Courses.Popular, c)
		}
	}
	return s
}

func (s *Seed) build(version uint64) *Catalog {
	c := &Catalog{
		Version:      version,
		Categories:   append([]string{model.CategoryAll}, s.Categories...),
		Courses:      s.Flatten(),
		Leaderboard:  map[model.LeaderboardPeriod][]model.LeaderboardEntry{},
		Self:         map[model.LeaderboardPeriod]model.LeaderboardEntry{},
		Achievements: append([]model.Achievement(nil), s.Achievements...),
		Stats:        s.Stats,
	}
	for _, e := range s.Leaderboard {
		if e.IsSelf {
			c.Self[e.Period] = e
			continue
		}
		c.Leaderboard[e.Period] = append(c.Leaderboard[e.Period], e)
	}
	for period := range c.Leaderboard {
		sortByRank(c.Leaderboard[period])
	}
	return c
}

func sortByRank(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
}
