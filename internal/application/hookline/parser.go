package hookline

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/vectormath"
)

// Embedder 嵌入网关边界。调用方不做重试，超时由实现方控制。
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Parser 将 LLM 原始输出解析为打分后的候选列表
type Parser interface {
	Parse(ctx context.Context, rawText, reference string) ([]entity.Candidate, error)
}

// quoteRunes 剥除候选行首尾引号时识别的引号字符
const quoteRunes = `"'“”«»`

// splitCandidateLines 按行切分，丢弃空行与 # 开头的注释行
func splitCandidateLines(rawText string) []string {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// stripOuterQuotes 各剥除一个行首引号与一个行尾引号（若存在）
func stripOuterQuotes(s string) string {
	runes := []rune(s)
	if len(runes) > 0 && strings.ContainsRune(quoteRunes, runes[0]) {
		runes = runes[1:]
	}
	if len(runes) > 0 && strings.ContainsRune(quoteRunes, runes[len(runes)-1]) {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimSpace(string(runes))
}

// RandomParser 占位打分解析器：分值为 [0,100] 的伪随机整数，
// 不是真实质量信号，仅用于在嵌入打分不可用时维持排序语义。
type RandomParser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomParser 创建占位打分解析器
func NewRandomParser() *RandomParser {
	return &RandomParser{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Parse 解析原始输出并随机打分，按分值降序返回。
// reference 参数在该模式下不参与计算。
func (p *RandomParser) Parse(_ context.Context, rawText, _ string) ([]entity.Candidate, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.New(errors.CodeParseFailed, "empty LLM output").
			WithDetail("expected at least one non-blank line, received empty or whitespace-only text")
	}

	lines := splitCandidateLines(rawText)
	candidates := make([]entity.Candidate, 0, len(lines))
	for i, line := range lines {
		candidates = append(candidates, entity.Candidate{
			ID:    candidateID(i + 1),
			Text:  stripOuterQuotes(line),
			Score: p.randomScore(),
		})
	}

	sortByScoreDesc(candidates)
	return candidates, nil
}

func (p *RandomParser) randomScore() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(101)
}

// SemanticParser 嵌入相似度打分解析器。
// 行数闸门先于任何嵌入调用：行数不等于期望值时直接失败，不做部分接受。
type SemanticParser struct {
	embedder      Embedder
	expectedLines int
	concurrency   int
}

// NewSemanticParser 创建相似度打分解析器。
// expectedLines <=0 时取 10，concurrency <=0 时取 5。
func NewSemanticParser(embedder Embedder, expectedLines, concurrency int) *SemanticParser {
	if expectedLines <= 0 {
		expectedLines = 10
	}
	if concurrency <= 0 {
		concurrency = 5
	}
	return &SemanticParser{
		embedder:      embedder,
		expectedLines: expectedLines,
		concurrency:   concurrency,
	}
}

// Parse 解析并按参考文本的嵌入相似度打分。
// 参考嵌入失败中止整批；单行嵌入失败仅该候选记哨兵分 -1，
// 不取消兄弟调用。最终按分值降序，全部 -1 候选固定排在末尾。
func (p *SemanticParser) Parse(ctx context.Context, rawText, reference string) ([]entity.Candidate, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.New(errors.CodeParseFailed, "empty LLM output").
			WithDetail("expected at least one non-blank line, received empty or whitespace-only text")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, errors.New(errors.CodeParseFailed, "empty reference text").
			WithDetail("semantic scoring requires a non-empty reference concept")
	}

	lines := splitCandidateLines(rawText)
	if len(lines) != p.expectedLines {
		return nil, errors.New(errors.CodeLineCountMismatch, "unexpected candidate line count").
			WithDetailf("expected exactly %d lines, received %d", p.expectedLines, len(lines))
	}

	refVec, err := p.embedder.Embed(ctx, reference)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeScoringFailed, "embed reference text")
	}

	candidates := make([]entity.Candidate, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, line := range lines {
		candidates[i] = entity.Candidate{
			ID:    candidateID(i + 1),
			Text:  stripOuterQuotes(line),
			Score: entity.ScoreUnavailable,
		}
		g.Go(func() error {
			// 单行失败只留哨兵分，不向 errgroup 冒泡，避免取消兄弟调用
			vec, embErr := p.embedder.Embed(gctx, candidates[i].Text)
			if embErr != nil {
				return nil
			}
			sim, simErr := vectormath.Cosine(refVec, vec)
			if simErr != nil {
				return nil
			}
			candidates[i].Score = similarityScore(sim)
			return nil
		})
	}
	_ = g.Wait()

	sortByScoreDesc(candidates)
	return candidates, nil
}

// similarityScore 余弦相似度换算为 [0,100] 整数分
func similarityScore(sim float64) int {
	score := int(math.Round(sim * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// candidateID 候选标识，n 从 1 开始
func candidateID(n int) string {
	return "phrase-" + strconv.Itoa(n)
}

// sortByScoreDesc 分值降序稳定排序，哨兵分 -1 始终垫底
func sortByScoreDesc(candidates []entity.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Scored() != b.Scored() {
			return a.Scored()
		}
		return a.Score > b.Score
	})
}
