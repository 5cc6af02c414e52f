package milvus

import (
	"context"
	"fmt"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/pkg/logger"
)

// CandidateIndexer 将生成的候选写入向量索引，并支持相似检索
type CandidateIndexer struct {
	repo     *Repository
	embedder hookline.Embedder
}

// NewCandidateIndexer 创建候选索引器
func NewCandidateIndexer(repo *Repository, embedder hookline.Embedder) *CandidateIndexer {
	return &CandidateIndexer{repo: repo, embedder: embedder}
}

var _ hookline.VectorIndexer = (*CandidateIndexer)(nil)

// IndexCandidates 将一次生成的有效候选嵌入并写入索引。
// 单条候选嵌入失败只跳过该条，不影响其余候选。
func (x *CandidateIndexer) IndexCandidates(ctx context.Context, gen *entity.Generation, candidates []entity.Candidate) error {
	if x == nil || x.repo == nil || x.embedder == nil {
		return nil
	}
	if gen == nil || len(candidates) == 0 {
		return nil
	}

	hooklines := make([]*Hookline, 0, len(candidates))
	for _, c := range candidates {
		if !c.Valid || c.Text == "" {
			continue
		}

		vec, err := x.embedder.Embed(ctx, c.Text)
		if err != nil {
			logger.Warn(ctx, "candidate embedding failed, skipping index",
				"generation_id", gen.ID, "candidate_id", c.ID, "error", err)
			continue
		}

		hooklines = append(hooklines, &Hookline{
			ID:           gen.ID + ":" + c.ID,
			Vector:       toFloat32(vec),
			GenerationID: gen.ID,
			Format:       gen.Format,
			Language:     gen.Language,
			Tone:         gen.Tone,
			Score:        int64(c.Score),
			Text:         c.Text,
		})
	}

	if len(hooklines) == 0 {
		return nil
	}
	return x.repo.InsertHooklines(ctx, gen.Format, hooklines)
}

// SimilarHookline 相似文案检索结果
type SimilarHookline struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	GenerationID string  `json:"generation_id"`
	Format       string  `json:"format"`
	Language     string  `json:"language"`
	Score        int64   `json:"score"`
	Similarity   float32 `json:"similarity"`
}

// SearchSimilar 按文本检索相似的历史候选
func (x *CandidateIndexer) SearchSimilar(ctx context.Context, text, format, language string, topK int) ([]*SimilarHookline, error) {
	if x == nil || x.repo == nil || x.embedder == nil {
		return nil, fmt.Errorf("vector index not configured")
	}
	if topK <= 0 {
		topK = 10
	}

	vec, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results, err := x.repo.SearchHooklines(ctx, &SearchParams{
		QueryVector: toFloat32(vec),
		Format:      format,
		Language:    language,
		TopK:        topK,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*SimilarHookline, 0, len(results))
	for _, r := range results {
		out = append(out, &SimilarHookline{
			ID:           r.ID,
			Text:         r.Text,
			GenerationID: r.GenerationID,
			Format:       r.Format,
			Language:     r.Language,
			Score:        r.Score,
			Similarity:   r.Similarity,
		})
	}
	return out, nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}
