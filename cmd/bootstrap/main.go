// Package main 系统初始化工具：建表与向量集合
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"hookline-ai-api/internal/config"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/infrastructure/persistence/milvus"
	"hookline-ai-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 迁移业务表
	fmt.Println("Migrating database schema...")
	if err := dataLayer.PgClient.AutoMigrate(
		&entity.Generation{},
		&entity.GenerationJob{},
		&entity.LLMUsageEvent{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Database schema migrated.")

	// 4. 创建 Milvus 集合（不可达时跳过）
	milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		fmt.Printf("Milvus not available, skipping vector collection setup: %v\n", err)
	} else {
		defer func() { _ = milvusClient.Close() }()
		repo := milvus.NewRepository(milvusClient)
		if err := repo.EnsureHooklinesCollection(ctx); err != nil {
			log.Fatalf("failed to ensure hooklines collection: %v", err)
		}
		fmt.Println("Milvus hooklines collection ready.")
	}

	fmt.Println("Bootstrap completed successfully.")
}
