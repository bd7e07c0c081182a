package repository

import (
	"context"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 持久化最近一次成功加载的目录
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// Replace 在一个事务里清空并写入目录表
func (r *CatalogRepository) Replace(ctx context.Context, seed *catalog.Seed) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Category{},
			&model.Course{},
			&model.LeaderboardEntry{},
			&model.Achievement{},
			&model.CatalogStats{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				return err
			}
		}

		categories := make([]model.Category, 0, len(seed.Categories))
		for i, name := range seed.Categories {
			categories = append(categories, model.Category{Name: name, Position: i})
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}

		courses := seed.Flatten()
		if len(courses) > 0 {
			if err := tx.Create(&courses).Error; err != nil {
				return err
			}
		}

		if len(seed.Leaderboard) > 0 {
			entries := append([]model.LeaderboardEntry(nil), seed.Leaderboard...)
			if err := tx.CreateInBatches(&entries, 100).Error; err != nil {
				return err
			}
		}

		if len(seed.Achievements) > 0 {
			achievements := append([]model.Achievement(nil), seed.Achievements...)
			for i := range achievements {
				achievements[i].Position = i
			}
			if err := tx.Create(&achievements).Error; err != nil {
				return err
			}
		}

		return tx.Create(&model.CatalogStats{
			EnrolledCourses:   seed.Stats.EnrolledCourses,
			DailyGoalMinutes:  seed.Stats.DailyGoalMinutes,
			DailyGoalProgress: seed.Stats.DailyGoalProgress,
		}).Error
	})
}

// Load 读取已保存的目录，表为空时返回 nil
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Seed, error) {
	db := r.DB.WithContext(ctx)

	var courses []model.Course
	if err := db.Order("position").Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}

	var categories []model.Category
	if err := db.Order("position").Find(&categories).Error; err != nil {
		return nil, err
	}

	var entries []model.LeaderboardEntry
	if err := db.Order("period, `rank`").Find(&entries).Error; err != nil {
		return nil, err
	}

	var achievements []model.Achievement
	if err := db.Order("position").Find(&achievements).Error; err != nil {
		return nil, err
	}

	var stats model.CatalogStats
	if err := db.Limit(1).Find(&stats).Error; err != nil {
		return nil, err
	}

	return catalog.FromRecords(categories, courses, entries, achievements,
		catalog.Stats{
			EnrolledCourses:   stats.EnrolledCourses,
			DailyGoalMinutes:  stats.DailyGoalMinutes,
			DailyGoalProgress: stats.DailyGoalProgress,
		}), nil
}
