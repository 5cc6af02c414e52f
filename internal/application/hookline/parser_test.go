package hookline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/pkg/errors"
)

// fakeEmbedder 按文本查表返回固定向量
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	fail    map[string]error
	calls   []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if err, ok := f.fail[text]; ok {
		return nil, err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float64{1, 0}, nil
}

func TestRandomParserBasics(t *testing.T) {
	raw := "\nPremière accroche\n# un commentaire du modèle\n\n\"Deuxième accroche\"\nTroisième accroche\n"
	candidates, err := NewRandomParser().Parse(context.Background(), raw, "")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	texts := make(map[string]bool)
	ids := make(map[string]bool)
	for _, c := range candidates {
		texts[c.Text] = true
		ids[c.ID] = true
		assert.GreaterOrEqual(t, c.Score, 0)
		assert.LessOrEqual(t, c.Score, 100)
	}
	// 引号已剥除，注释行已丢弃
	assert.True(t, texts["Deuxième accroche"])
	assert.False(t, texts["# un commentaire du modèle"])
	assert.True(t, ids["phrase-1"] && ids["phrase-2"] && ids["phrase-3"])

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRandomParserEmptyOutput(t *testing.T) {
	_, err := NewRandomParser().Parse(context.Background(), "   \n\t\n", "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeParseFailed))
}

func TestStripOuterQuotes(t *testing.T) {
	assert.Equal(t, "accroche", stripOuterQuotes(`"accroche"`))
	assert.Equal(t, "accroche", stripOuterQuotes("«accroche»"))
	assert.Equal(t, "accroche", stripOuterQuotes(`"accroche`))
	assert.Equal(t, `il a dit "oui" hier`, stripOuterQuotes(`il a dit "oui" hier`))
}

func rawLines(lines ...string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func TestSemanticParserCountGateBeforeEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{}
	parser := NewSemanticParser(embedder, 10, 3)

	_, err := parser.Parse(context.Background(), rawLines("une", "deux", "trois"), "concept")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLineCountMismatch))
	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "3")
	// 闸门先于任何嵌入调用
	assert.Empty(t, embedder.calls)
}

func TestSemanticParserScoresAndSorts(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float64{
			"concept":  {1, 0},
			"aligned":  {1, 0},
			"halfway":  {1, 1},
			"opposite": {-1, 0},
		},
	}
	parser := NewSemanticParser(embedder, 3, 2)

	candidates, err := parser.Parse(context.Background(), rawLines("opposite", "halfway", "aligned"), "concept")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "aligned", candidates[0].Text)
	assert.Equal(t, 100, candidates[0].Score)
	assert.Equal(t, "halfway", candidates[1].Text)
	assert.Equal(t, 71, candidates[1].Score)
	// 负相似度压到 0，不与哨兵分混淆
	assert.Equal(t, "opposite", candidates[2].Text)
	assert.Equal(t, 0, candidates[2].Score)
}

func TestSemanticParserReferenceFailureAborts(t *testing.T) {
	embedder := &fakeEmbedder{
		fail: map[string]error{"concept": assert.AnError},
	}
	parser := NewSemanticParser(embedder, 2, 2)

	_, err := parser.Parse(context.Background(), rawLines("une", "deux"), "concept")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeScoringFailed))
	// 参考嵌入失败后不再发起单行调用
	assert.Equal(t, []string{"concept"}, embedder.calls)
}

func TestSemanticParserPerLineFailureIsolated(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float64{
			"concept": {1, 0},
			"bonne":   {1, 0},
			"autre":   {1, 1},
		},
		fail: map[string]error{"cassée": assert.AnError},
	}
	parser := NewSemanticParser(embedder, 3, 3)

	candidates, err := parser.Parse(context.Background(), rawLines("cassée", "bonne", "autre"), "concept")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	// 失败行拿哨兵分并垫底，兄弟行照常打分
	assert.Equal(t, "bonne", candidates[0].Text)
	assert.Equal(t, "autre", candidates[1].Text)
	assert.Equal(t, "cassée", candidates[2].Text)
	assert.Equal(t, entity.ScoreUnavailable, candidates[2].Score)
	assert.False(t, candidates[2].Scored())
	// 全部 3 行都发起了嵌入调用
	assert.Len(t, embedder.calls, 4)
}

func TestSemanticParserEmptyReference(t *testing.T) {
	parser := NewSemanticParser(&fakeEmbedder{}, 1, 1)
	_, err := parser.Parse(context.Background(), "une ligne", "   ")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeParseFailed))
}

func TestSemanticParserIDsAssignedBeforeSorting(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float64{
			"concept": {1, 0},
			"faible":  {0, 1},
			"forte":   {1, 0},
		},
	}
	parser := NewSemanticParser(embedder, 2, 2)

	candidates, err := parser.Parse(context.Background(), rawLines("faible", "forte"), "concept")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// 标识按原始行序分配，排序只影响位置
	assert.Equal(t, "forte", candidates[0].Text)
	assert.Equal(t, "phrase-2", candidates[0].ID)
	assert.Equal(t, "faible", candidates[1].Text)
	assert.Equal(t, "phrase-1", candidates[1].ID)
}
