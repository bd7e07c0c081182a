// 导出课程目录 YAML
//
// 默认导出内置示例数据，-from-db 时导出数据库中最近一次保存的目录。
// -publish 会把结果写回 catalog.source 指向的位置（本地文件、MinIO 或 OSS），
// 开启 catalog.watch 的实例会自动重新加载。
//
// 用法: go run scripts/export_catalog.go [-config configs] [-out seed.yaml] [-from-db] [-publish]

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/config"
	"skillup_backend/internal/repository"
	"skillup_backend/internal/service"
	"skillup_backend/pkg/database"
	"skillup_backend/pkg/logger"
	"time"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	out := flag.String("out", "", "输出文件，为空时输出到标准输出")
	fromDB := flag.Bool("from-db", false, "导出数据库中保存的目录")
	publish := flag.Bool("publish", false, "写回 catalog.source")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	seed := catalog.DefaultSeed()
	if *fromDB {
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		persisted, err := repository.NewCatalogRepository(db).Load(ctx)
		if err != nil {
			log.Fatalf("读取目录失败: %v", err)
		}
		if persisted == nil {
			log.Fatal("数据库中没有目录")
		}
		seed = persisted
	}

	data, err := seed.Marshal()
	if err != nil {
		log.Fatalf("序列化失败: %v", err)
	}

	if *publish {
		source, err := service.NewCatalogSource(cfg)
		if err != nil {
			log.Fatalf("初始化目录来源失败: %v", err)
		}
		publisher, ok := source.(service.CatalogPublisher)
		if !ok {
			log.Fatalf("目录来源 %s 不支持写回", source.Name())
		}
		if err := publisher.Publish(ctx, data); err != nil {
			log.Fatalf("写回失败: %v", err)
		}
		log.Printf("已写回 %s: %s", source.Name(), cfg.Catalog.Path)
		return
	}

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("写文件失败: %v", err)
	}
	log.Printf("已导出到 %s", *out)
}
