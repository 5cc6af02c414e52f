package constraint

import "hookline-ai-api/internal/domain/catalog"

// 静态规则表。四层按固定优先级合并：
// global -> format -> cultural(语言主子标签) -> tone，后者覆盖前者。

var globalRules = Set{
	KeyMinWords:       3,
	KeyMaxWords:       12,
	KeyNoCliches:      true,
	KeyForbiddenWords: []string{"synergie", "révolutionnaire", "leader mondial", "cliquez ici"},
}

var formatRules = map[catalog.Format]Set{
	catalog.FormatTagline: {
		KeyMinWords:           2,
		KeyMaxWords:           8,
		KeyPreferAlliteration: true,
		KeyMaxSyllables:       12,
		KeyEmojiAllowed:       false,
	},
	catalog.FormatCTA: {
		KeyMinWords:          2,
		KeyMaxWords:          6,
		KeyMustStartWithVerb: true,
		KeyRequiresUrgency:   true,
		KeyEmojiAllowed:      false,
	},
	catalog.FormatTweet: {
		KeyMaxWords:           20,
		KeyRequiresEngagement: true,
		KeyEmojiAllowed:       true,
	},
	catalog.FormatEmail: {
		KeyMaxWords:           10,
		KeyRequiresBenefit:    true,
		KeyUsePersonalization: true,
	},
	catalog.FormatInstagram: {
		KeyMaxWords:     15,
		KeyUseWordplay:  true,
		KeyEmojiAllowed: true,
	},
	catalog.FormatLinkedIn: {
		KeyMaxWords:        16,
		KeyRequiresBenefit: true,
		KeyEmojiAllowed:    false,
	},
}

// culturalRules 按语言主子标签索引（en-US 与 en-GB 共用 en 层）
var culturalRules = map[string]Set{
	"fr": {
		KeyAvoidAnglicisms:   true,
		KeyAvoidSuperlatives: []string{"incroyable", "meilleur", "ultime", "exceptionnel"},
	},
	"en": {
		KeyAvoidSuperlatives: []string{"best-ever", "ultimate", "revolutionary"},
	},
	"de": {
		KeyAvoidSuperlatives: []string{"bester", "ultimativ", "revolutionär"},
	},
	"es": {
		KeyAvoidSuperlatives: []string{"increíble", "el mejor"},
	},
	"ar": {
		KeyEmojiAllowed: false,
	},
}

var toneRules = map[catalog.Tone]Set{
	catalog.ToneHumorous: {
		KeyUseWordplay: true,
	},
	catalog.ToneInspiring: {
		KeyRequiresBenefit: true,
	},
	catalog.ToneDirect: {
		KeyMustStartWithVerb: true,
	},
	catalog.ToneLuxurious: {
		KeyEmojiAllowed:      false,
		KeyAvoidSuperlatives: []string{"cheap", "discount", "pas cher", "promo"},
	},
	catalog.ToneUrgent: {
		KeyRequiresUrgency: true,
	},
	catalog.ToneFriendly: {
		KeyEmojiAllowed: true,
	},
}

// Resolve 计算 (format, language, tone) 的有效约束集。
// 纯函数：静态表只读，缺失的层贡献空集合，不产生错误。
// 语言仅在文化层查找前归一化为主子标签。
func Resolve(format catalog.Format, language string, tone catalog.Tone) Set {
	set := globalRules.clone()

	if layer, ok := formatRules[format]; ok {
		set.merge(layer)
	}
	if layer, ok := culturalRules[catalog.PrimarySubtag(language)]; ok {
		set.merge(layer)
	}
	if layer, ok := toneRules[tone]; ok {
		set.merge(layer)
	}

	return set
}
