//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/application/job"
	"hookline-ai-api/internal/config"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/internal/infrastructure/embedding"
	"hookline-ai-api/internal/infrastructure/llm"
	"hookline-ai-api/internal/infrastructure/messaging"
	"hookline-ai-api/internal/infrastructure/persistence/milvus"
	"hookline-ai-api/internal/infrastructure/persistence/postgres"
	"hookline-ai-api/internal/infrastructure/persistence/redis"
	"hookline-ai-api/internal/interfaces/http/handler"
	"hookline-ai-api/internal/interfaces/http/router"
	"hookline-ai-api/pkg/logger"
)

// Worker 异步任务执行器依赖容器
type Worker struct {
	RedisClient *redis.Client
	Jobs        *job.Service
}

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient       *postgres.Client
	TxManager      *postgres.TxManager
	GenerationRepo *postgres.GenerationRepository
	JobRepo        *postgres.JobRepository
	LLMUsageRepo   *postgres.LLMUsageRepository
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		EmbeddingSet,
		MilvusAppSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeWorker 初始化异步任务执行器依赖
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		EmbeddingSet,
		MilvusAppSet,
		GenerationSet,
		wire.Struct(new(Worker), "*"),
	)
	return nil, nil, nil
}

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		postgres.NewTxManager,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewGenerationRepository,
	postgres.NewJobRepository,
	postgres.NewLLMUsageRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.GenerationRepository), new(*postgres.GenerationRepository)),
	wire.Bind(new(repository.JobRepository), new(*postgres.JobRepository)),
	wire.Bind(new(repository.LLMUsageRepository), new(*postgres.LLMUsageRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewPromptCache,
	wire.Bind(new(hookline.PromptCache), new(*redis.PromptCache)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
	wire.Bind(new(job.Publisher), new(*messaging.Producer)),
)

// EmbeddingSet 可选 Embedder（不可用时禁用语义打分与向量检索）
var EmbeddingSet = wire.NewSet(
	ProvideEmbedderOptional,
)

// MilvusAppSet API 网关可选 Milvus（不可达时不阻塞启动）
var MilvusAppSet = wire.NewSet(
	ProvideMilvusClientOptional,
	ProvideMilvusRepositoryOptional,
	ProvideCandidateIndexerOptional,
	ProvideVectorIndexerOptional,
)

// GenerationSet 文案生成应用层提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	llm.NewEinoGateway,
	wire.Bind(new(hookline.LLMGateway), new(*llm.EinoGateway)),
	ProvideGenerationConfig,
	hookline.NewGenerator,
	ProvideJobService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	redis.NewRateLimiter,
	handler.NewHealthHandler,
	handler.NewHooklineHandler,
	handler.NewCatalogHandler,
	handler.NewJobHandler,
	handler.NewGenerationHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

func ProvideMilvusClientOptional(ctx context.Context, cfg *config.Config) (*milvus.Client, func(), error) {
	client, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		logger.Warn(ctx, "milvus not available, vector features disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func ProvideMilvusRepositoryOptional(client *milvus.Client) *milvus.Repository {
	if client == nil {
		return nil
	}
	return milvus.NewRepository(client)
}

func ProvideCandidateIndexerOptional(repo *milvus.Repository, embedder hookline.Embedder) *milvus.CandidateIndexer {
	if repo == nil || embedder == nil {
		return nil
	}
	return milvus.NewCandidateIndexer(repo, embedder)
}

func ProvideVectorIndexerOptional(indexer *milvus.CandidateIndexer) hookline.VectorIndexer {
	if indexer == nil {
		return nil
	}
	return indexer
}

func ProvideEmbedderOptional(ctx context.Context, cfg *config.Config) (hookline.Embedder, error) {
	gateway, err := embedding.NewGateway(ctx, cfg)
	if err != nil {
		logger.Warn(ctx, "embedding not available, semantic scoring disabled", "error", err.Error())
		return nil, nil
	}
	return gateway, nil
}

// ProvideGenerationConfig 提供生成流水线配置
func ProvideGenerationConfig(cfg *config.Config) config.GenerationConfig {
	return cfg.Generation
}

// ProvideJobService 提供异步任务服务
func ProvideJobService(jobs repository.JobRepository, publisher job.Publisher, generator *hookline.Generator, cfg *config.Config) *job.Service {
	maxRetries := cfg.Messaging.RedisStream.RetryLimit
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return job.NewService(jobs, publisher, generator, maxRetries)
}
