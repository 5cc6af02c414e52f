package vectormath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineIdentical(t *testing.T) {
	got, err := Cosine([]float64{1, 0}, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-12)
}

func TestCosineOrthogonal(t *testing.T) {
	got, err := Cosine([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-12)
}

func TestCosineOpposite(t *testing.T) {
	got, err := Cosine([]float64{1, 2, 3}, []float64{-1, -2, -3})
	require.NoError(t, err)
	assert.InDelta(t, -1, got, 1e-12)
}

func TestCosineZeroMagnitude(t *testing.T) {
	got, err := Cosine([]float64{0, 0}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, float64(0), got)
}

func TestCosineLengthMismatch(t *testing.T) {
	_, err := Cosine([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestCosineEmpty(t *testing.T) {
	_, err := Cosine(nil, []float64{1})
	require.Error(t, err)

	_, err = Cosine([]float64{1}, []float64{})
	require.Error(t, err)
}

func TestCosineNonFinite(t *testing.T) {
	_, err := Cosine([]float64{1, math.NaN()}, []float64{1, 2})
	require.Error(t, err)

	_, err = Cosine([]float64{1, 2}, []float64{math.Inf(1), 2})
	require.Error(t, err)
}

func TestCosineClampsDrift(t *testing.T) {
	// 大量同向分量可能因浮点误差略超 1
	a := make([]float64, 5000)
	for i := range a {
		a[i] = 0.123456789
	}
	got, err := Cosine(a, a)
	require.NoError(t, err)
	assert.LessOrEqual(t, got, float64(1))
	assert.InDelta(t, 1, got, 1e-9)
}

func TestCosineChunkedMatchesSinglePass(t *testing.T) {
	a := make([]float64, 3000)
	b := make([]float64, 3000)
	for i := range a {
		a[i] = math.Sin(float64(i))
		b[i] = math.Cos(float64(i) / 3)
	}

	single, err := Cosine(a, b)
	require.NoError(t, err)
	chunked, err := CosineChunked(a, b)
	require.NoError(t, err)
	assert.InDelta(t, single, chunked, 1e-12)
}
