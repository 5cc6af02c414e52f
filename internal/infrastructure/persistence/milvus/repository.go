// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Repository 向量检索仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量检索仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SearchParams 检索参数
type SearchParams struct {
	QueryVector []float32
	Format      string
	Language    string
	Tone        string
	MinScore    int64
	TopK        int
}

// SearchResult 检索结果
type SearchResult struct {
	ID           string
	Similarity   float32
	Text         string
	GenerationID string
	Format       string
	Language     string
	Score        int64
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := entity.NewIndexHNSW(
		entity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// CreatePartition 创建分区
func (r *Repository) CreatePartition(ctx context.Context, collection, format string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreatePartition",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("partition", PartitionName(format)),
		))
	defer span.End()

	collName := r.client.CollectionName(collection)
	return r.client.milvus.CreatePartition(ctx, collName, PartitionName(format))
}

// InsertHooklines 插入文案候选
func (r *Repository) InsertHooklines(ctx context.Context, format string, hooklines []*Hookline) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertHooklines",
		trace.WithAttributes(
			attribute.String("format", format),
			attribute.Int("count", len(hooklines)),
		))
	defer span.End()

	if len(hooklines) == 0 {
		return nil
	}

	collName := r.client.CollectionName(CollectionHooklines)
	partitionName := PartitionName(format)

	// 确保分区存在
	has, _ := r.client.milvus.HasPartition(ctx, collName, partitionName)
	if !has {
		if err := r.CreatePartition(ctx, CollectionHooklines, format); err != nil {
			return err
		}
	}

	ids := make([]string, len(hooklines))
	vectors := make([][]float32, len(hooklines))
	generationIDs := make([]string, len(hooklines))
	formats := make([]string, len(hooklines))
	languages := make([]string, len(hooklines))
	tones := make([]string, len(hooklines))
	scores := make([]int64, len(hooklines))
	texts := make([]string, len(hooklines))

	for i, h := range hooklines {
		ids[i] = h.ID
		vectors[i] = h.Vector
		generationIDs[i] = h.GenerationID
		formats[i] = h.Format
		languages[i] = h.Language
		tones[i] = h.Tone
		scores[i] = h.Score
		texts[i] = h.Text
	}

	idCol := entity.NewColumnVarChar("id", ids)
	vectorCol := entity.NewColumnFloatVector("vector", VectorDimension, vectors)
	generationCol := entity.NewColumnVarChar("generation_id", generationIDs)
	formatCol := entity.NewColumnVarChar("format", formats)
	languageCol := entity.NewColumnVarChar("language", languages)
	toneCol := entity.NewColumnVarChar("tone", tones)
	scoreCol := entity.NewColumnInt64("score", scores)
	textCol := entity.NewColumnVarChar("text", texts)

	_, err := r.client.milvus.Insert(ctx, collName, partitionName,
		idCol, vectorCol, generationCol, formatCol, languageCol, toneCol, scoreCol, textCol)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert hooklines: %w", err)
	}

	return nil
}

// SearchHooklines 检索相似文案候选
func (r *Repository) SearchHooklines(ctx context.Context, params *SearchParams) ([]*SearchResult, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchHooklines",
		trace.WithAttributes(
			attribute.String("format", params.Format),
			attribute.String("language", params.Language),
			attribute.Int("top_k", params.TopK),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionHooklines)

	// 按格式限定分区；格式为空时跨全部分区检索
	var partitions []string
	if params.Format != "" {
		partitionName := PartitionName(params.Format)
		if has, err := r.client.milvus.HasPartition(ctx, collName, partitionName); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to check partition: %w", err)
		} else if !has {
			return []*SearchResult{}, nil
		}
		partitions = []string{partitionName}
	}

	filter := ""
	appendFilter := func(expr string) {
		if filter != "" {
			filter += " && "
		}
		filter += expr
	}
	if params.Language != "" {
		appendFilter(fmt.Sprintf(`language == "%s"`, params.Language))
	}
	if params.Tone != "" {
		appendFilter(fmt.Sprintf(`tone == "%s"`, params.Tone))
	}
	if params.MinScore > 0 {
		appendFilter(fmt.Sprintf(`score >= %d`, params.MinScore))
	}

	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	results, err := r.client.milvus.Search(ctx,
		collName,
		partitions,
		filter,
		[]string{"id", "text", "generation_id", "format", "language", "score"},
		[]entity.Vector{entity.FloatVector(params.QueryVector)},
		"vector",
		entity.COSINE,
		params.TopK,
		sp,
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var searchResults []*SearchResult
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			sr := &SearchResult{
				Similarity: result.Scores[i],
			}

			if idCol, ok := result.Fields.GetColumn("id").(*entity.ColumnVarChar); ok {
				sr.ID = idCol.Data()[i]
			}
			if textCol, ok := result.Fields.GetColumn("text").(*entity.ColumnVarChar); ok {
				sr.Text = textCol.Data()[i]
			}
			if genCol, ok := result.Fields.GetColumn("generation_id").(*entity.ColumnVarChar); ok {
				sr.GenerationID = genCol.Data()[i]
			}
			if formatCol, ok := result.Fields.GetColumn("format").(*entity.ColumnVarChar); ok {
				sr.Format = formatCol.Data()[i]
			}
			if langCol, ok := result.Fields.GetColumn("language").(*entity.ColumnVarChar); ok {
				sr.Language = langCol.Data()[i]
			}
			if scoreCol, ok := result.Fields.GetColumn("score").(*entity.ColumnInt64); ok {
				sr.Score = scoreCol.Data()[i]
			}

			searchResults = append(searchResults, sr)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(searchResults)))
	return searchResults, nil
}

// DeleteByGeneration 删除某次生成的全部候选
func (r *Repository) DeleteByGeneration(ctx context.Context, format, generationID string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.DeleteByGeneration",
		trace.WithAttributes(attribute.String("generation_id", generationID)))
	defer span.End()

	collName := r.client.CollectionName(CollectionHooklines)
	partitionName := PartitionName(format)

	if has, err := r.client.milvus.HasPartition(ctx, collName, partitionName); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to check partition: %w", err)
	} else if !has {
		return nil
	}

	filter := fmt.Sprintf(`generation_id == "%s"`, generationID)
	if err := r.client.milvus.Delete(ctx, collName, partitionName, filter); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete hooklines: %w", err)
	}
	return nil
}

// RebuildIndex 重建索引
func (r *Repository) RebuildIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.RebuildIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	if err := r.client.milvus.ReleaseCollection(ctx, collName); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to release collection: %w", err)
	}

	if err := r.client.milvus.DropIndex(ctx, collName, "vector"); err != nil {
		// 忽略索引不存在的错误
	}

	if err := r.CreateIndex(ctx, collection); err != nil {
		return err
	}

	return r.client.milvus.LoadCollection(ctx, collName, false)
}

// EnsureHooklinesCollection 确保 hooklines 集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureHooklinesCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionHooklines)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, HooklinesSchema()); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionHooklines)
	}

	return r.client.LoadCollection(ctx, CollectionHooklines)
}
