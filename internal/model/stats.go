package model

// CatalogStats 目录附带的统计数据，只保存一行
type CatalogStats struct {
	BaseModel
	EnrolledCourses   int     `gorm:"default:0" json:"enrolledCourses"`
	DailyGoalMinutes  int     `gorm:"default:0" json:"dailyGoalMinutes"`
	DailyGoalProgress float64 `gorm:"default:0" json:"dailyGoalProgress"`
}

func (CatalogStats) TableName() string {
	return "catalog_stats"
}
