package catalog

import (
	"sort"
	"strings"

	"hookline-ai-api/pkg/errors"
)

// Formality 语言正式程度分类
type Formality string

const (
	FormalityFormal   Formality = "formal"
	FormalityInformal Formality = "informal"
	FormalityMixed    Formality = "mixed"
)

// LanguageDefinition 语言目录项
type LanguageDefinition struct {
	Code string `json:"code"`
	Name string `json:"name"`
	// CulturalNotes 文化层面的自由文本写作指引
	CulturalNotes []string  `json:"cultural_notes"`
	Formality     Formality `json:"formality"`
}

var languages = map[string]LanguageDefinition{
	"fr": {
		Code: "fr",
		Name: "Français",
		CulturalNotes: []string{
			"Le vouvoiement reste la norme en communication commerciale",
			"Les jeux de mots et doubles sens sont très appréciés",
			"Éviter les anglicismes inutiles, préférer les équivalents français",
		},
		Formality: FormalityFormal,
	},
	"en-US": {
		Code: "en-US",
		Name: "English (US)",
		CulturalNotes: []string{
			"Casual, benefit-driven phrasing performs best",
			"Contractions are natural and expected",
			"Avoid corporate jargon and hedging language",
		},
		Formality: FormalityInformal,
	},
	"es": {
		Code: "es",
		Name: "Español",
		CulturalNotes: []string{
			"El tuteo funciona bien en marketing digital",
			"La calidez y la cercanía son más persuasivas que la agresividad",
		},
		Formality: FormalityMixed,
	},
	"de": {
		Code: "de",
		Name: "Deutsch",
		CulturalNotes: []string{
			"Die Sie-Form ist im Geschäftskontext verpflichtend",
			"Präzision und Klarheit überzeugen mehr als Superlative",
		},
		Formality: FormalityFormal,
	},
	"ar": {
		Code: "ar",
		Name: "العربية",
		CulturalNotes: []string{
			"Eloquence and rhythm carry strong persuasive weight",
			"Respect formal register in commercial messaging",
		},
		Formality: FormalityFormal,
	},
	"pt-BR": {
		Code: "pt-BR",
		Name: "Português (Brasil)",
		CulturalNotes: []string{
			"Tom caloroso e descontraído gera mais engajamento",
			"Gírias leves são aceitáveis em redes sociais",
		},
		Formality: FormalityInformal,
	},
}

// LanguageByCode 按完整代码查询语言定义，未知代码返回 CodeLanguageNotFound。
func LanguageByCode(code string) (LanguageDefinition, error) {
	def, ok := languages[code]
	if !ok {
		return LanguageDefinition{}, errors.New(errors.CodeLanguageNotFound, "language not found").
			WithDetailf("expected one of %s, received %q", strings.Join(LanguageCodes(), ", "), code)
	}
	return def, nil
}

// PrimarySubtag 提取语言代码的主子标签：en-US -> en，pt_BR -> pt。
// 仅用于文化层与动词表查找；格式层与语气层不做归一化。
func PrimarySubtag(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return code[:i]
	}
	return code
}

// LanguageCodes 返回全部语言代码（字典序）
func LanguageCodes() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Languages 返回全部语言定义（按代码字典序）
func Languages() []LanguageDefinition {
	out := make([]LanguageDefinition, 0, len(languages))
	for _, code := range LanguageCodes() {
		out = append(out, languages[code])
	}
	return out
}
