// Package entity 定义领域实体
package entity

// Candidate 一条解析并打分后的候选文案
type Candidate struct {
	ID               string   `json:"id"`
	Text             string   `json:"text"`
	Score            int      `json:"score"`
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// ScoreUnavailable 单行打分失败时的哨兵分值，排序时始终排在末尾
const ScoreUnavailable = -1

// Scored 分值是否有效
func (c Candidate) Scored() bool {
	return c.Score != ScoreUnavailable
}
