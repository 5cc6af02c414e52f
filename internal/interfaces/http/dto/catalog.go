// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"hookline-ai-api/internal/domain/catalog"
)

// FormatResponse 格式目录项响应
type FormatResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Platforms   []string `json:"platforms,omitempty"`
	MaxLength   int      `json:"max_length,omitempty"`
}

// ToneResponse 语气目录项响应
type ToneResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// LanguageResponse 语言目录项响应
type LanguageResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Formality string `json:"formality"`
}

// FormatListResponse 格式目录响应
type FormatListResponse struct {
	Formats []*FormatResponse `json:"formats"`
}

// ToneListResponse 语气目录响应
type ToneListResponse struct {
	Tones []*ToneResponse `json:"tones"`
}

// LanguageListResponse 语言目录响应
type LanguageListResponse struct {
	Languages []*LanguageResponse `json:"languages"`
}

// ToFormatListResponse 将格式目录转换为响应 DTO
func ToFormatListResponse(defs []catalog.FormatDefinition) *FormatListResponse {
	resp := &FormatListResponse{Formats: make([]*FormatResponse, 0, len(defs))}
	for _, d := range defs {
		resp.Formats = append(resp.Formats, &FormatResponse{
			ID:          string(d.ID),
			Name:        d.Name,
			Description: d.Description,
			Platforms:   d.Platforms,
			MaxLength:   d.MaxLength,
		})
	}
	return resp
}

// ToToneListResponse 将语气目录转换为响应 DTO
func ToToneListResponse(defs []catalog.ToneDefinition) *ToneListResponse {
	resp := &ToneListResponse{Tones: make([]*ToneResponse, 0, len(defs))}
	for _, d := range defs {
		resp.Tones = append(resp.Tones, &ToneResponse{
			ID:    string(d.ID),
			Label: d.Label,
		})
	}
	return resp
}

// ToLanguageListResponse 将语言目录转换为响应 DTO
func ToLanguageListResponse(defs []catalog.LanguageDefinition) *LanguageListResponse {
	resp := &LanguageListResponse{Languages: make([]*LanguageResponse, 0, len(defs))}
	for _, d := range defs {
		resp.Languages = append(resp.Languages, &LanguageResponse{
			Code:      d.Code,
			Name:      d.Name,
			Formality: string(d.Formality),
		})
	}
	return resp
}
