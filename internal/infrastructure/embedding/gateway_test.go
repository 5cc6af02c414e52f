package embedding

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/retry"
)

type stubProvider struct {
	vector []float64
	err    error
	calls  int
}

func (s *stubProvider) EmbedText(context.Context, string) ([]float64, error) {
	s.calls++
	return s.vector, s.err
}

func testRetryCfg() retry.Config {
	return retry.Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  5 * time.Millisecond,
		Multiplier:      1,
	}
}

func TestGatewayEmbed(t *testing.T) {
	provider := &stubProvider{vector: []float64{0.1, 0.2, 0.3}}
	gw := NewGatewayWithProvider(provider, 100, testRetryCfg())

	vec, err := gw.Embed(context.Background(), "une accroche")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestGatewayEmptyText(t *testing.T) {
	provider := &stubProvider{vector: []float64{1}}
	gw := NewGatewayWithProvider(provider, 100, testRetryCfg())

	_, err := gw.Embed(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
	// 不发起远端调用
	assert.Zero(t, provider.calls)
}

func TestGatewayTextTooLong(t *testing.T) {
	provider := &stubProvider{vector: []float64{1}}
	gw := NewGatewayWithProvider(provider, 10, testRetryCfg())

	_, err := gw.Embed(context.Background(), strings.Repeat("é", 11))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmbeddingTooLong))
	assert.Contains(t, err.(*errors.AppError).Detail, "10")
	assert.Contains(t, err.(*errors.AppError).Detail, "11")
	assert.Zero(t, provider.calls)
}

func TestGatewayMaxLengthCountsRunes(t *testing.T) {
	provider := &stubProvider{vector: []float64{1}}
	gw := NewGatewayWithProvider(provider, 10, testRetryCfg())

	// 10 个多字节字符不超限
	_, err := gw.Embed(context.Background(), strings.Repeat("é", 10))
	require.NoError(t, err)
}

func TestGatewayProviderFailure(t *testing.T) {
	provider := &stubProvider{err: assert.AnError}
	gw := NewGatewayWithProvider(provider, 100, testRetryCfg())

	_, err := gw.Embed(context.Background(), "texte")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmbeddingFailed))
	assert.GreaterOrEqual(t, provider.calls, 1)
}

func TestGatewayPermanentFailureNotRetried(t *testing.T) {
	provider := &stubProvider{err: &StatusError{StatusCode: 401}}
	gw := NewGatewayWithProvider(provider, 100, testRetryCfg())

	_, err := gw.Embed(context.Background(), "texte")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmbeddingFailed))
	// 鉴权类 4xx 不重试
	assert.Equal(t, 1, provider.calls)
}

type recoveringProvider struct {
	calls int
}

func (p *recoveringProvider) EmbedText(context.Context, string) ([]float64, error) {
	p.calls++
	if p.calls == 1 {
		return nil, &StatusError{StatusCode: 503}
	}
	return []float64{0.5}, nil
}

func TestGatewayTransientFailureRetried(t *testing.T) {
	provider := &recoveringProvider{}
	cfg := retry.Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  time.Second,
		Multiplier:      1,
	}
	gw := NewGatewayWithProvider(provider, 100, cfg)

	vec, err := gw.Embed(context.Background(), "texte")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, vec)
	assert.Equal(t, 2, provider.calls)
}

func TestGatewayEmptyVector(t *testing.T) {
	provider := &stubProvider{vector: []float64{}}
	gw := NewGatewayWithProvider(provider, 100, testRetryCfg())

	_, err := gw.Embed(context.Background(), "texte")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmbeddingMalformed))
}

func TestCheckDimension(t *testing.T) {
	assert.NoError(t, CheckDimension([]float64{1, 2, 3}, 3))
	assert.NoError(t, CheckDimension([]float64{1, 2, 3}, 0))
	assert.Error(t, CheckDimension([]float64{1, 2}, 3))
}
