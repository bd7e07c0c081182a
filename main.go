// @title SkillUp 后端 API
// @version 1.0
// @description SkillUp 学习应用的后端服务：认证、首页、课程、学习计划、排行榜与个人资料。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"skillup_backend/internal/app"
	"skillup_backend/internal/config"
	"skillup_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件 config.yaml 所在目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
