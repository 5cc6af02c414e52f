// Package constraint 提供生成约束的静态规则表、合并解析与文本校验。
package constraint

// Set 扁平的规则集合：规则名 -> 规则值（bool / 数值 / 字符串列表）。
// 每次请求按 (format, language, tone) 重新合并得到，不做持久化。
type Set map[string]any

// 全局层必定存在的四个规则键
const (
	KeyMinWords       = "minWords"
	KeyMaxWords       = "maxWords"
	KeyNoCliches      = "noCliches"
	KeyForbiddenWords = "forbiddenWords"

	KeyMustStartWithVerb  = "mustStartWithVerb"
	KeyRequiresBenefit    = "requiresBenefit"
	KeyRequiresUrgency    = "requiresUrgency"
	KeyRequiresEngagement = "requiresEngagement"
	KeyPreferAlliteration = "preferAlliteration"
	KeyUseWordplay        = "useWordplay"
	KeyUsePersonalization = "usePersonalization"
	KeyMaxSyllables       = "maxSyllables"
	KeyAvoidAnglicisms    = "avoidAnglicisms"
	KeyAvoidSuperlatives  = "avoidSuperlatives"
	KeyEmojiAllowed       = "emojiAllowed"
)

// Bool 读取布尔规则；键缺失或类型不符时返回 false。
func (s Set) Bool(key string) bool {
	v, ok := s[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Has 判断键是否存在
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Int 读取数值规则；键缺失或类型不符时第二返回值为 false。
// 合并与反序列化过程中数值可能以 int 或 float64 出现，两种都接受。
func (s Set) Int(key string) (int, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Strings 读取字符串列表规则；键缺失或类型不符时返回 nil。
func (s Set) Strings(key string) []string {
	v, ok := s[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// merge 将 overlay 覆盖到 s 上，键冲突时 overlay 获胜。
func (s Set) merge(overlay Set) {
	for k, v := range overlay {
		s[k] = v
	}
}

// clone 浅拷贝，保证静态表不被调用方修改
func (s Set) clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
