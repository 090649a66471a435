// Package wire 提供手工依赖装配
package wire

import (
	"context"

	"storyverse-api/internal/application/extraction"
	"storyverse-api/internal/application/importer"
	"storyverse-api/internal/config"
	"storyverse-api/internal/infrastructure/embedding"
	"storyverse-api/internal/infrastructure/persistence/milvus"
	"storyverse-api/internal/infrastructure/persistence/postgres"
	"storyverse-api/internal/infrastructure/persistence/redis"
	"storyverse-api/internal/interfaces/http/handler"
	"storyverse-api/internal/interfaces/http/router"
	"storyverse-api/pkg/logger"
)

// DataLayer 数据层依赖容器
type DataLayer struct {
	PgClient  *postgres.Client
	TxManager *postgres.TxManager

	StoryRepo        *postgres.StoryRepository
	CharacterRepo    *postgres.CharacterRepository
	LocationRepo     *postgres.LocationRepository
	ItemRepo         *postgres.ItemRepository
	EventRepo        *postgres.EventRepository
	SceneRepo        *postgres.SceneRepository
	PlotlineRepo     *postgres.PlotlineRepository
	RelationshipRepo *postgres.RelationshipRepository
	DependencyRepo   *postgres.DependencyRepository
	ArcRepo          *postgres.ArcRepository

	RedisClient *redis.Client
	Cache       *redis.Cache
	RateLimiter *redis.RateLimiter

	// Milvus 可选，未启用时为 nil
	MilvusClient *milvus.Client
	VectorRepo   *milvus.Repository
}

// InitializeDataLayer 初始化数据层
func InitializeDataLayer(ctx context.Context, cfg *config.Config) (*DataLayer, func(), error) {
	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		_ = pg.Close()
		return nil, nil, err
	}

	dl := &DataLayer{
		PgClient:  pg,
		TxManager: postgres.NewTxManager(pg),

		StoryRepo:        postgres.NewStoryRepository(pg),
		CharacterRepo:    postgres.NewCharacterRepository(pg),
		LocationRepo:     postgres.NewLocationRepository(pg),
		ItemRepo:         postgres.NewItemRepository(pg),
		EventRepo:        postgres.NewEventRepository(pg),
		SceneRepo:        postgres.NewSceneRepository(pg),
		PlotlineRepo:     postgres.NewPlotlineRepository(pg),
		RelationshipRepo: postgres.NewRelationshipRepository(pg),
		DependencyRepo:   postgres.NewDependencyRepository(pg),
		ArcRepo:          postgres.NewArcRepository(pg),

		RedisClient: redisClient,
		Cache:       redis.NewCache(redisClient),
		RateLimiter: redis.NewRateLimiter(redisClient),
	}

	if cfg.Vector.Milvus.Enabled {
		milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
		if err != nil {
			// Milvus 不可用时降级运行，相似检索不可用
			logger.Warn(ctx, "Milvus 连接失败，向量检索已禁用", "error", err)
		} else {
			dl.MilvusClient = milvusClient
			dl.VectorRepo = milvus.NewRepository(milvusClient)
		}
	}

	cleanup := func() {
		if dl.MilvusClient != nil {
			_ = dl.MilvusClient.Close()
		}
		_ = dl.RedisClient.Close()
		_ = dl.PgClient.Close()
	}
	return dl, cleanup, nil
}

// App 应用容器
type App struct {
	Router    *router.Router
	DataLayer *DataLayer
}

// buildOverrides 将配置覆盖表转换为流水线覆盖表
func buildOverrides(cfg *config.ExtractionConfig) map[string]extraction.CharacterOverride {
	if len(cfg.Overrides) == 0 {
		return nil
	}
	out := make(map[string]extraction.CharacterOverride, len(cfg.Overrides))
	for name, o := range cfg.Overrides {
		out[name] = extraction.CharacterOverride{
			Role:        o.Role,
			Logline:     o.Logline,
			Description: o.Description,
		}
	}
	return out
}

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	dl, cleanup, err := InitializeDataLayer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	overrides := buildOverrides(&cfg.Extraction)
	pipelines := map[string]*extraction.Pipeline{
		"server": extraction.NewPipeline(extraction.ServerProfile(), overrides, dl.CharacterRepo),
		"client": extraction.NewPipeline(extraction.ClientProfile(), overrides, dl.CharacterRepo),
	}
	defaultProfile := cfg.Extraction.Profile
	if _, ok := pipelines[defaultProfile]; !ok {
		defaultProfile = "server"
	}
	pipeline := pipelines[defaultProfile]

	embedClient := embedding.NewClient(&cfg.Embedding)

	var indexer importer.VectorIndexer
	if dl.VectorRepo != nil {
		indexer = &milvusIndexer{repo: dl.VectorRepo}
	}

	importSvc := importer.NewService(importer.Repositories{
		Story:        dl.StoryRepo,
		Character:    dl.CharacterRepo,
		Location:     dl.LocationRepo,
		Item:         dl.ItemRepo,
		Event:        dl.EventRepo,
		Scene:        dl.SceneRepo,
		Plotline:     dl.PlotlineRepo,
		Relationship: dl.RelationshipRepo,
		Dependency:   dl.DependencyRepo,
		Arc:          dl.ArcRepo,
	}, embedClient, indexer)

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(dl.PgClient, dl.RedisClient, dl.MilvusClient),
		Extraction: handler.NewExtractionHandler(pipelines, defaultProfile, dl.Cache, &cfg.Extraction),
		Story:      handler.NewStoryHandler(dl.StoryRepo, pipeline, importSvc, dl.Cache),
		Character:  handler.NewCharacterHandler(dl.CharacterRepo, embedClient, dl.VectorRepo),
	}

	app := &App{
		Router:    router.New(cfg, handlers, dl.RateLimiter),
		DataLayer: dl,
	}
	return app, cleanup, nil
}

// milvusIndexer 将导入层的档案写入 Milvus
type milvusIndexer struct {
	repo *milvus.Repository
}

func (m *milvusIndexer) InsertCharacterProfiles(ctx context.Context, storyWorldID string, profiles []*importer.CharacterProfile) error {
	out := make([]*milvus.CharacterProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, &milvus.CharacterProfile{
			ID:           p.CharacterID,
			Vector:       p.Vector,
			StoryWorldID: storyWorldID,
			CharacterID:  p.CharacterID,
			Name:         p.Name,
			Role:         p.Role,
			Description:  p.Description,
		})
	}
	return m.repo.InsertProfiles(ctx, storyWorldID, out)
}
