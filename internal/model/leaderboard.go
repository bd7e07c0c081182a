package model

// LeaderboardPeriod 排行榜统计周期
type LeaderboardPeriod string

const (
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodAllTime LeaderboardPeriod = "all-time"
)

var LeaderboardPeriods = []LeaderboardPeriod{PeriodWeekly, PeriodMonthly, PeriodAllTime}

func (p LeaderboardPeriod) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}
	return false
}

// ProgressCap 进度条满格对应的积分
const ProgressCap = 5000

// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	BaseModel `yaml:"-"`
	Period    LeaderboardPeriod `gorm:"size:20;index;not null" json:"period" yaml:"period"`
	Rank      int               `gorm:"not null" json:"rank" yaml:"rank"`
	Name      string            `gorm:"size:100;not null" json:"name" yaml:"name"`
	Points    int               `gorm:"default:0" json:"points" yaml:"points"`
	Streak    int               `gorm:"default:0" json:"streak" yaml:"streak"` // 连续学习天数
	Level     CourseLevel       `gorm:"size:20" json:"level" yaml:"level"`
	IsSelf    bool              `gorm:"default:false" json:"isSelf" yaml:"self"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

// Progress 返回 0~1 之间的进度
func (e LeaderboardEntry) Progress() float64 {
	p := e.Points
	if p > ProgressCap {
		p = ProgressCap
	}
	if p < 0 {
		p = 0
	}
	return float64(p) / ProgressCap
}
