// Package vectormath 提供向量相似度计算
package vectormath

import (
	"fmt"
	"math"
)

// chunkSize 分块计算的块大小，用于限制单次迭代的工作集
const chunkSize = 1024

// Cosine 计算两个向量的余弦相似度，返回值在 [-1, 1]。
// 任一向量模长为 0 时返回 0，避免除零；结果做夹取以吸收浮点漂移。
func Cosine(a, b []float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// CosineChunked 分块版本，数值上与 Cosine 等价，适用于超大向量。
func CosineChunked(a, b []float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}

	var dot, normA, normB float64
	for start := 0; start < len(a); start += chunkSize {
		end := start + chunkSize
		if end > len(a) {
			end = len(a)
		}
		for i := start; i < end; i++ {
			dot += a[i] * b[i]
			normA += a[i] * a[i]
			normB += b[i] * b[i]
		}
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

func checkVectors(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("vectors must be non-empty: len(a)=%d len(b)=%d", len(a), len(b))
	}
	if len(a) != len(b) {
		return fmt.Errorf("vector length mismatch: len(a)=%d len(b)=%d", len(a), len(b))
	}
	for i := range a {
		if isInvalid(a[i]) || isInvalid(b[i]) {
			return fmt.Errorf("vectors contain non-finite element at index %d", i)
		}
	}
	return nil
}

func isInvalid(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func clamp(f float64) float64 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}
