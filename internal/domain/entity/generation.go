// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"time"
)

// GenerationStatus 生成记录状态
type GenerationStatus string

const (
	GenerationStatusSucceeded GenerationStatus = "succeeded"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// ScoringMode 候选打分模式
type ScoringMode string

const (
	ScoringModeRandom   ScoringMode = "random"
	ScoringModeSemantic ScoringMode = "semantic"
)

// ValidScoringMode 检查打分模式是否合法
func ValidScoringMode(mode ScoringMode) bool {
	return mode == ScoringModeRandom || mode == ScoringModeSemantic
}

// Generation 一次文案生成记录，含请求参数与全部候选
type Generation struct {
	ID                 string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductName        string           `json:"product_name" gorm:"type:varchar(255);not null"`
	ProductDescription string           `json:"product_description" gorm:"type:text"`
	Format             string           `json:"format" gorm:"type:varchar(32);index;not null"`
	Tone               string           `json:"tone" gorm:"type:varchar(32);not null"`
	Language           string           `json:"language" gorm:"type:varchar(16);not null"`
	ScoringMode        ScoringMode      `json:"scoring_mode" gorm:"type:varchar(16);not null"`
	Status             GenerationStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	PromptFingerprint  string           `json:"prompt_fingerprint" gorm:"type:varchar(64);index"`
	Candidates         json.RawMessage  `json:"candidates,omitempty" gorm:"type:jsonb"`
	ErrorMessage       string           `json:"error_message,omitempty" gorm:"type:text"`
	Provider           string           `json:"provider" gorm:"type:varchar(32)"`
	Model              string           `json:"model" gorm:"type:varchar(64)"`
	TokensPrompt       int              `json:"tokens_prompt" gorm:"not null;default:0"`
	TokensCompletion   int              `json:"tokens_completion" gorm:"not null;default:0"`
	DurationMs         int              `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt          time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Generation) TableName() string {
	return "generations"
}

// SetCandidates 序列化候选列表
func (g *Generation) SetCandidates(candidates []Candidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	g.Candidates = data
	return nil
}

// DecodeCandidates 反序列化候选列表
func (g *Generation) DecodeCandidates() ([]Candidate, error) {
	if len(g.Candidates) == 0 {
		return nil, nil
	}
	var candidates []Candidate
	if err := json.Unmarshal(g.Candidates, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}
