package database

import (
	"fmt"
	"skillup_backend/internal/config"
	"skillup_backend/internal/model"
	"skillup_backend/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models 需要自动迁移的表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.LeaderboardEntry{},
		&model.Achievement{},
		&model.CatalogStats{},
	}
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := gormlogger.Warn
	if mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established")

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}
