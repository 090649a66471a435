// Package main 数据库与向量集合初始化工具
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"storyverse-api/internal/config"
	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/infrastructure/persistence/milvus"
	"storyverse-api/internal/infrastructure/persistence/postgres"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 1. PostgreSQL 迁移
	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	fmt.Println("Running database migrations...")
	if err := pg.DB().WithContext(ctx).AutoMigrate(
		&entity.Story{},
		&entity.Character{},
		&entity.Location{},
		&entity.Item{},
		&entity.Event{},
		&entity.Scene{},
		&entity.Plotline{},
		&entity.CharacterRelationship{},
		&entity.EventDependency{},
		&entity.CharacterArc{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	fmt.Println("Database migrations completed.")

	// 2. 示例数据（可选，两条写入在同一事务中）
	if os.Getenv("BOOTSTRAP_SEED_DEMO") == "true" {
		fmt.Println("Seeding demo story...")
		txMgr := postgres.NewTxManager(pg)
		storyRepo := postgres.NewStoryRepository(pg)
		characterRepo := postgres.NewCharacterRepository(pg)

		err := txMgr.WithTransaction(ctx, func(txCtx context.Context) error {
			story := entity.NewStory("Demo Story", uuid.New().String())
			if err := storyRepo.Create(txCtx, story); err != nil {
				return err
			}
			demo := entity.NewCharacter("Demo Protagonist", entity.RoleProtagonist, 0.9)
			demo.ID = uuid.New().String()
			demo.StoryID = story.ID
			demo.StoryWorldID = story.StoryWorldID
			demo.Description = "Seeded character for smoke testing the read endpoints."
			return characterRepo.Create(txCtx, demo)
		})
		if err != nil {
			log.Fatalf("failed to seed demo story: %v", err)
		}
		fmt.Println("Demo story seeded.")
	}

	// 3. Milvus 集合初始化（可选）
	if cfg.Vector.Milvus.Enabled {
		fmt.Println("Ensuring Milvus collections...")
		milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
		if err != nil {
			log.Fatalf("failed to connect milvus: %v", err)
		}
		defer milvusClient.Close()

		repo := milvus.NewRepository(milvusClient)
		if err := repo.EnsureCharacterProfilesCollection(ctx); err != nil {
			log.Fatalf("failed to ensure character profiles collection: %v", err)
		}
		fmt.Println("Milvus collections ready.")
	} else {
		fmt.Println("Milvus disabled, skipping vector setup.")
	}

	fmt.Println("Bootstrap completed successfully.")
}
