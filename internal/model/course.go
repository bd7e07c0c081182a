package model

// CourseLevel 课程难度
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

func (l CourseLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// CourseSection 首页上课程所在的列表
type CourseSection string

const (
	SectionContinue CourseSection = "continue"
	SectionPopular  CourseSection = "popular"
)

const (
	// DefaultCategory 未指定分类时使用
	DefaultCategory = "General"
	// CategoryAll 分类筛选的通配值
	CategoryAll = "All"
)

// swagger:model Course
type Course struct {
	BaseModel `yaml:"-"`
	Title     string        `gorm:"size:150;uniqueIndex;not null" json:"title" yaml:"title"`
	Level     CourseLevel   `gorm:"size:20;not null" json:"level" yaml:"level"`
	Duration  string        `gorm:"size:50" json:"duration" yaml:"duration"`
	Category  string        `gorm:"size:50;not null;default:'General'" json:"category" yaml:"category"`
	Section   CourseSection `gorm:"size:20;index" json:"section" yaml:"-"`
	Position  int           `gorm:"default:0" json:"-" yaml:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// NewCourse 构造课程，分类为空时回落到 General
func NewCourse(title string, level CourseLevel, duration, category string) Course {
	if category == "" {
		category = DefaultCategory
	}
	return Course{Title: title, Level: level, Duration: duration, Category: category}
}

// Description 课程详情页展示的简介
func (c Course) Description() string {
	return "This is a detailed overview of " + c.Title + "."
}

// swagger:model Category
type Category struct {
	BaseModel
	Name     string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Position int    `gorm:"default:0" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
