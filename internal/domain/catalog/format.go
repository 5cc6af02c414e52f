// Package catalog 提供格式/语气/语言三类只读静态目录。
// 目录在进程启动时即固定，所有查询无副作用，可并发调用。
package catalog

import (
	"sort"
	"strings"

	"hookline-ai-api/pkg/errors"
)

// Format 内容格式标识
type Format string

const (
	FormatTagline   Format = "tagline"
	FormatCTA       Format = "cta"
	FormatTweet     Format = "tweet"
	FormatEmail     Format = "email"
	FormatInstagram Format = "instagram"
	FormatLinkedIn  Format = "linkedin"
)

// FormatDefinition 格式目录项
type FormatDefinition struct {
	ID          Format   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Platforms   []string `json:"platforms"`
	// Roles 用于提示词中的专业角色设定
	Roles []string `json:"roles"`
	// MaxLength 可选的字符长度提示，0 表示无限制
	MaxLength int `json:"max_length,omitempty"`
}

var formats = map[Format]FormatDefinition{
	FormatTagline: {
		ID:          FormatTagline,
		Name:        "Tagline",
		Description: "A short memorable brand phrase that captures the essence of a product",
		Platforms:   []string{"website", "print", "billboard"},
		Roles:       []string{"brand strategist", "senior copywriter"},
		MaxLength:   60,
	},
	FormatCTA: {
		ID:          FormatCTA,
		Name:        "Call to action",
		Description: "An imperative phrase pushing the reader to act immediately",
		Platforms:   []string{"landing page", "email", "ads"},
		Roles:       []string{"conversion copywriter", "growth marketer"},
		MaxLength:   40,
	},
	FormatTweet: {
		ID:          FormatTweet,
		Name:        "Tweet",
		Description: "A punchy social post optimized for engagement and reposts",
		Platforms:   []string{"twitter", "x"},
		Roles:       []string{"social media manager", "community builder"},
		MaxLength:   280,
	},
	FormatEmail: {
		ID:          FormatEmail,
		Name:        "Email subject",
		Description: "An email subject line maximizing open rate without clickbait",
		Platforms:   []string{"email"},
		Roles:       []string{"email marketing specialist", "CRM copywriter"},
		MaxLength:   70,
	},
	FormatInstagram: {
		ID:          FormatInstagram,
		Name:        "Instagram caption",
		Description: "A caption hook for the first visible line of an Instagram post",
		Platforms:   []string{"instagram"},
		Roles:       []string{"social media manager", "content creator"},
		MaxLength:   125,
	},
	FormatLinkedIn: {
		ID:          FormatLinkedIn,
		Name:        "LinkedIn hook",
		Description: "An opening line for a LinkedIn post aimed at professionals",
		Platforms:   []string{"linkedin"},
		Roles:       []string{"B2B copywriter", "thought leadership ghostwriter"},
		MaxLength:   150,
	},
}

// FormatByID 按标识查询格式定义，未知标识返回 CodeFormatNotFound。
func FormatByID(id Format) (FormatDefinition, error) {
	def, ok := formats[id]
	if !ok {
		return FormatDefinition{}, errors.New(errors.CodeFormatNotFound, "format not found").
			WithDetailf("expected one of %s, received %q", strings.Join(FormatIDs(), ", "), id)
	}
	return def, nil
}

// FormatIDs 返回全部格式标识（字典序，便于稳定输出）
func FormatIDs() []string {
	ids := make([]string, 0, len(formats))
	for id := range formats {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// Formats 返回全部格式定义（按标识字典序）
func Formats() []FormatDefinition {
	out := make([]FormatDefinition, 0, len(formats))
	for _, id := range FormatIDs() {
		out = append(out, formats[Format(id)])
	}
	return out
}
