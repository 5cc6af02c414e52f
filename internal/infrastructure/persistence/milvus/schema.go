// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionHooklines 已生成文案候选集合
	CollectionHooklines = "hooklines"

	// VectorDimension 向量维度
	VectorDimension = 1024
)

// HooklinesSchema 文案候选 Collection Schema
func HooklinesSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionHooklines,
		Description:    "Generated hookline candidates for semantic similarity search",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "128",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "1024",
				},
			},
			{
				Name:     "generation_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "format",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "32",
				},
			},
			{
				Name:     "language",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "16",
				},
			},
			{
				Name:     "tone",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "32",
				},
			},
			{
				Name:     "score",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "text",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "1024",
				},
			},
		},
	}
}

// Hookline 文案候选数据结构
type Hookline struct {
	ID           string    `json:"id"`
	Vector       []float32 `json:"vector"`
	GenerationID string    `json:"generation_id"`
	Format       string    `json:"format"`
	Language     string    `json:"language"`
	Tone         string    `json:"tone"`
	Score        int64     `json:"score"`
	Text         string    `json:"text"`
}

// PartitionName 生成分区名称（按文案格式分区）
func PartitionName(format string) string {
	return "fmt_" + format
}
