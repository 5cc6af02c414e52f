package constraint

import (
	"fmt"
	"strings"
)

// referenceVerbs 动词起始检查的固定参考表。
// 检查为 4 字符前缀启发式，不是真正的词法分析，只能近似覆盖变位形式。
var referenceVerbs = []string{
	"commencez", "démarrez", "essayez", "téléchargez", "obtenez", "réservez", "découvrez",
}

// Result 校验结果
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate 按约束集校验候选文本。
// 规则按固定顺序检查并全部累积，不短路；缺失的规则键视为不适用。
func Validate(text string, set Set) Result {
	words := splitWords(text)
	var errs []string

	if min, ok := set.Int(KeyMinWords); ok && len(words) < min {
		errs = append(errs, fmt.Sprintf("too few words: got %d, minimum %d", len(words), min))
	}

	if max, ok := set.Int(KeyMaxWords); ok && len(words) > max {
		errs = append(errs, fmt.Sprintf("too many words: got %d, maximum %d", len(words), max))
	}

	if forbidden := set.Strings(KeyForbiddenWords); len(forbidden) > 0 {
		if hits := matchTerms(words, forbidden); len(hits) > 0 {
			errs = append(errs, "forbidden words found: "+strings.Join(hits, ", "))
		}
	}

	if superlatives := set.Strings(KeyAvoidSuperlatives); len(superlatives) > 0 {
		if hits := matchTerms(words, superlatives); len(hits) > 0 {
			errs = append(errs, "superlatives to avoid found: "+strings.Join(hits, ", "))
		}
	}

	if set.Bool(KeyMustStartWithVerb) {
		if len(words) == 0 {
			errs = append(errs, "empty text cannot start with an imperative verb")
		} else if !startsWithVerbPrefix(words[0]) {
			errs = append(errs, fmt.Sprintf("first word %q does not start with an imperative verb", words[0]))
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// splitWords 按空白切分并丢弃空 token
func splitWords(text string) []string {
	return strings.Fields(text)
}

// matchTerms 对每个词做大小写不敏感的子串匹配，返回命中的原始词
func matchTerms(words []string, terms []string) []string {
	var hits []string
	for _, word := range words {
		lower := strings.ToLower(word)
		for _, term := range terms {
			if term == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(term)) {
				hits = append(hits, word)
				break
			}
		}
	}
	return hits
}

// startsWithVerbPrefix 检查首词是否以参考动词的前 4 个字符开头
func startsWithVerbPrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, verb := range referenceVerbs {
		runes := []rune(verb)
		prefixLen := 4
		if len(runes) < prefixLen {
			prefixLen = len(runes)
		}
		if strings.HasPrefix(lower, string(runes[:prefixLen])) {
			return true
		}
	}
	return false
}
