package catalog

import (
	"sort"
	"strings"

	"hookline-ai-api/pkg/errors"
)

// Tone 语气标识
type Tone string

const (
	ToneHumorous  Tone = "humorous"
	ToneInspiring Tone = "inspiring"
	ToneDirect    Tone = "direct"
	ToneLuxurious Tone = "luxurious"
	ToneUrgent    Tone = "urgent"
	ToneFriendly  Tone = "friendly"
)

// VerbFallbackLanguage 动词表缺失目标语言时的兜底语言。
// 这是数据层的固定默认值，不随调用配置。
const VerbFallbackLanguage = "fr"

// ToneDefinition 语气目录项
type ToneDefinition struct {
	ID    Tone   `json:"id"`
	Label string `json:"label"`
	// Verbs 按语言主子标签索引的祈使动词表
	Verbs map[string][]string `json:"verbs"`
}

// VerbsFor 返回目标语言主子标签对应的动词表，缺失时回退到 fr。
func (t ToneDefinition) VerbsFor(lang string) []string {
	if verbs, ok := t.Verbs[lang]; ok && len(verbs) > 0 {
		return verbs
	}
	return t.Verbs[VerbFallbackLanguage]
}

var tones = map[Tone]ToneDefinition{
	ToneHumorous: {
		ID:    ToneHumorous,
		Label: "Humorous",
		Verbs: map[string][]string{
			"fr": {"riez", "osez", "craquez", "savourez", "lâchez"},
			"en": {"laugh", "dare", "grab", "enjoy", "unleash"},
			"es": {"ríe", "atrévete", "disfruta"},
		},
	},
	ToneInspiring: {
		ID:    ToneInspiring,
		Label: "Inspiring",
		Verbs: map[string][]string{
			"fr": {"imaginez", "osez", "réalisez", "transformez", "élevez"},
			"en": {"imagine", "dare", "achieve", "transform", "elevate"},
			"de": {"stellen", "wagen", "erreichen"},
		},
	},
	ToneDirect: {
		ID:    ToneDirect,
		Label: "Direct",
		Verbs: map[string][]string{
			"fr": {"commencez", "essayez", "obtenez", "téléchargez", "réservez"},
			"en": {"start", "try", "get", "download", "book"},
			"es": {"empieza", "prueba", "consigue", "descarga"},
			"pt": {"comece", "experimente", "obtenha"},
		},
	},
	ToneLuxurious: {
		ID:    ToneLuxurious,
		Label: "Luxurious",
		Verbs: map[string][]string{
			"fr": {"découvrez", "savourez", "contemplez", "offrez-vous"},
			"en": {"discover", "indulge", "savor", "treat yourself"},
		},
	},
	ToneUrgent: {
		ID:    ToneUrgent,
		Label: "Urgent",
		Verbs: map[string][]string{
			"fr": {"profitez", "saisissez", "agissez", "réservez", "foncez"},
			"en": {"act", "seize", "hurry", "claim", "book"},
			"de": {"sichern", "handeln", "zugreifen"},
		},
	},
	ToneFriendly: {
		ID:    ToneFriendly,
		Label: "Friendly",
		Verbs: map[string][]string{
			"fr": {"venez", "rejoignez", "partagez", "profitez"},
			"en": {"come", "join", "share", "enjoy"},
			"ar": {"انضم", "شارك", "استمتع"},
		},
	},
}

// ToneByID 按标识查询语气定义，未知标识返回 CodeToneNotFound。
func ToneByID(id Tone) (ToneDefinition, error) {
	def, ok := tones[id]
	if !ok {
		return ToneDefinition{}, errors.New(errors.CodeToneNotFound, "tone not found").
			WithDetailf("expected one of %s, received %q", strings.Join(ToneIDs(), ", "), id)
	}
	return def, nil
}

// ToneIDs 返回全部语气标识（字典序）
func ToneIDs() []string {
	ids := make([]string, 0, len(tones))
	for id := range tones {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// Tones 返回全部语气定义（按标识字典序）
func Tones() []ToneDefinition {
	out := make([]ToneDefinition, 0, len(tones))
	for _, id := range ToneIDs() {
		out = append(out, tones[Tone(id)])
	}
	return out
}
