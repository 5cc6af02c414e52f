// Package hookline 实现文案生成的核心流水线：提示词编译、输出解析与打分、编排。
package hookline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/constraint"
	"hookline-ai-api/pkg/errors"
)

// PromptInput 提示词编译入参
type PromptInput struct {
	Concept     string
	Description string
	Format      catalog.Format
	Tone        catalog.Tone
	Language    string
	// LineCount 要求模型产出的行数，<=0 时取 10
	LineCount int
}

// formatPlurals 目标数量指令中格式名的自然语言复数表。
// 查不到时直接回退到原始格式标识。
var formatPlurals = map[catalog.Format]string{
	catalog.FormatTagline:   "taglines",
	catalog.FormatCTA:       "calls to action",
	catalog.FormatTweet:     "tweet hooks",
	catalog.FormatEmail:     "email subject lines",
	catalog.FormatInstagram: "Instagram captions",
	catalog.FormatLinkedIn:  "LinkedIn hooks",
}

// examplePair 正反示例对
type examplePair struct {
	Good string
	Bad  string
	Why  string
}

// examplePairs 按格式索引的示例表，缺失条目回退到 tagline。
var examplePairs = map[catalog.Format]examplePair{
	catalog.FormatTagline: {
		Good: "La fraîcheur qui réveille vos matins",
		Bad:  "Notre produit est le meilleur produit révolutionnaire du marché",
		Why:  "the good one paints a sensory scene in few words; the bad one stacks empty superlatives",
	},
	catalog.FormatCTA: {
		Good: "Essayez gratuitement pendant 30 jours",
		Bad:  "Cliquez ici pour en savoir plus sur notre offre",
		Why:  "the good one opens with a verb and a concrete benefit; the bad one is a generic filler pattern",
	},
	catalog.FormatTweet: {
		Good: "On a remplacé 3 outils par un seul. Voici ce qui a changé.",
		Bad:  "Découvrez notre incroyable solution innovante dès aujourd'hui !",
		Why:  "the good one creates curiosity with a concrete claim; the bad one is promotional noise",
	},
}

// CompilePrompt 将一次生成请求编译为完整提示词。
// 纯字符串装配：无网络调用、无随机性，相同入参产出相同文本。
// 格式/语气/语言任一无法在静态目录中解析时返回错误。
func CompilePrompt(in PromptInput, set constraint.Set) (string, error) {
	format, err := catalog.FormatByID(in.Format)
	if err != nil {
		return "", errors.Wrap(err, errors.CodePromptCompileFailed, "compile prompt")
	}
	tone, err := catalog.ToneByID(in.Tone)
	if err != nil {
		return "", errors.Wrap(err, errors.CodePromptCompileFailed, "compile prompt")
	}
	language, err := catalog.LanguageByCode(in.Language)
	if err != nil {
		return "", errors.Wrap(err, errors.CodePromptCompileFailed, "compile prompt")
	}

	lineCount := in.LineCount
	if lineCount <= 0 {
		lineCount = 10
	}
	verbs := tone.VerbsFor(catalog.PrimarySubtag(in.Language))

	var b strings.Builder

	writePersonaSection(&b, format)
	writeObjectiveSection(&b, format, in.Concept, in.Description, lineCount)
	writeVoiceSection(&b, tone, language, verbs)
	writeConstraintsSection(&b, set)
	writeTechniquesSection(&b, set)
	writeExampleSection(&b, format.ID)
	writeForbiddenSection(&b, set)
	writeChecklistSection(&b, set)
	writeOutputSection(&b, language, lineCount)

	return strings.TrimSpace(b.String()), nil
}

// PromptFingerprint 提示词指纹，用于缓存键与生成记录关联
func PromptFingerprint(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func writePersonaSection(b *strings.Builder, format catalog.FormatDefinition) {
	b.WriteString("You are a ")
	b.WriteString(strings.Join(format.Roles, " and "))
	b.WriteString(" crafting ")
	b.WriteString(strings.ToLower(format.Name))
	b.WriteString(" copy for ")
	b.WriteString(strings.Join(format.Platforms, ", "))
	b.WriteString(".\n")
	b.WriteString(format.Description)
	b.WriteString(".\n\n")
}

func writeObjectiveSection(b *strings.Builder, format catalog.FormatDefinition, concept, description string, lineCount int) {
	plural, ok := formatPlurals[format.ID]
	if !ok {
		plural = string(format.ID)
	}
	b.WriteString("## Objective\n")
	fmt.Fprintf(b, "generate exactly %d %s for concept: %q\n", lineCount, plural, concept)
	if desc := strings.TrimSpace(description); desc != "" {
		b.WriteString("Concept details: ")
		b.WriteString(desc)
		b.WriteString("\n")
	}
	if format.MaxLength > 0 {
		fmt.Fprintf(b, "Each line must stay under %d characters.\n", format.MaxLength)
	}
	b.WriteString("\n")
}

func writeVoiceSection(b *strings.Builder, tone catalog.ToneDefinition, language catalog.LanguageDefinition, verbs []string) {
	b.WriteString("## Language and voice\n")
	fmt.Fprintf(b, "Write every line in %s (%s), with %s register.\n", language.Name, language.Code, language.Formality)
	fmt.Fprintf(b, "Tone: %s.\n", strings.ToLower(tone.Label))
	if len(verbs) > 0 {
		b.WriteString("Favor imperative verbs such as: ")
		b.WriteString(strings.Join(verbs, ", "))
		b.WriteString(".\n")
	}
	for _, note := range language.CulturalNotes {
		b.WriteString(note)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// writeConstraintsSection 由约束集动态生成编号规则列表。
// 编号在渲染列表内部连续递增，与规则本身无固定绑定。
func writeConstraintsSection(b *strings.Builder, set constraint.Set) {
	b.WriteString("## Constraints\n")
	n := 0
	rule := func(text string) {
		n++
		fmt.Fprintf(b, "%d. %s\n", n, text)
	}

	minWords, _ := set.Int(constraint.KeyMinWords)
	maxWords, _ := set.Int(constraint.KeyMaxWords)
	rule(fmt.Sprintf("Between %d and %d words per line.", minWords, maxWords))
	rule("No filler words.")
	rule("Maximize memorability.")
	rule("Phrasing must be idiomatic in the target language, never a literal translation.")

	if set.Bool(constraint.KeyMustStartWithVerb) {
		rule("Every line starts with an imperative verb.")
	}
	if set.Bool(constraint.KeyRequiresBenefit) {
		rule("Every line states a concrete benefit for the reader.")
	}
	if set.Bool(constraint.KeyRequiresUrgency) {
		rule("Convey urgency without sounding desperate.")
	}
	if set.Bool(constraint.KeyNoCliches) {
		rule("No marketing clichés.")
	}
	if set.Bool(constraint.KeyPreferAlliteration) {
		rule("Prefer alliteration when it comes naturally.")
	}
	if maxSyllables, ok := set.Int(constraint.KeyMaxSyllables); ok && maxSyllables > 0 {
		rule(fmt.Sprintf("Keep each line under roughly %d syllables.", maxSyllables))
	}
	if set.Bool(constraint.KeyAvoidAnglicisms) {
		rule("Avoid anglicisms; use native vocabulary.")
	}
	if set.Has(constraint.KeyEmojiAllowed) {
		if set.Bool(constraint.KeyEmojiAllowed) {
			rule("At most one emoji per line, only where it adds meaning.")
		} else {
			rule("No emojis.")
		}
	}
	b.WriteString("\n")
}

func writeTechniquesSection(b *strings.Builder, set constraint.Set) {
	b.WriteString("## Techniques\n")
	b.WriteString("- Use impactful sound devices (assonance, consonance).\n")
	b.WriteString("- Vary rhythm between short punches and longer flows.\n")
	b.WriteString("- Draw on emotional vocabulary over descriptive vocabulary.\n")
	if set.Bool(constraint.KeyRequiresUrgency) {
		b.WriteString("- Anchor urgency in something real (time, scarcity, momentum).\n")
	}
	if set.Bool(constraint.KeyUseWordplay) {
		b.WriteString("- Use wordplay and double meanings when they land cleanly.\n")
	}
	if set.Bool(constraint.KeyPreferAlliteration) {
		b.WriteString("- Lean on alliteration to aid recall.\n")
	}
	if set.Bool(constraint.KeyUsePersonalization) {
		b.WriteString("- Address the reader directly, as one person.\n")
	}
	if set.Bool(constraint.KeyRequiresEngagement) {
		b.WriteString("- Open loops that invite a reply or a share.\n")
	}
	b.WriteString("- Cultural references are welcome when they are widely understood in the target market.\n\n")
}

func writeExampleSection(b *strings.Builder, format catalog.Format) {
	pair, ok := examplePairs[format]
	if !ok {
		pair = examplePairs[catalog.FormatTagline]
	}
	b.WriteString("## Worked example\n")
	fmt.Fprintf(b, "Good: %q\n", pair.Good)
	fmt.Fprintf(b, "Bad: %q\n", pair.Bad)
	fmt.Fprintf(b, "Why: %s.\n\n", pair.Why)
}

func writeForbiddenSection(b *strings.Builder, set constraint.Set) {
	b.WriteString("## Never use\n")
	b.WriteString("- Generic agency-speak patterns (\"solutions\", \"passion for excellence\", \"world-class\").\n")
	if superlatives := set.Strings(constraint.KeyAvoidSuperlatives); len(superlatives) > 0 {
		b.WriteString("- Superlatives to avoid: ")
		b.WriteString(strings.Join(superlatives, ", "))
		b.WriteString(".\n")
	}
	if forbidden := set.Strings(constraint.KeyForbiddenWords); len(forbidden) > 0 {
		b.WriteString("- Forbidden words: ")
		b.WriteString(strings.Join(forbidden, ", "))
		b.WriteString(".\n")
	}
	if set.Bool(constraint.KeyAvoidAnglicisms) {
		b.WriteString("- Anglicisms of any kind.\n")
	}
	b.WriteString("\n")
}

func writeChecklistSection(b *strings.Builder, set constraint.Set) {
	b.WriteString("## Before answering, check each line\n")
	b.WriteString("- Would this stop someone mid-scroll?\n")
	if set.Bool(constraint.KeyMustStartWithVerb) {
		b.WriteString("- Does it start with an imperative verb?\n")
	}
	if set.Bool(constraint.KeyRequiresBenefit) {
		b.WriteString("- Does it state a benefit the reader actually cares about?\n")
	}
	b.WriteString("\n")
}

func writeOutputSection(b *strings.Builder, language catalog.LanguageDefinition, lineCount int) {
	b.WriteString("## Output format\n")
	fmt.Fprintf(b, "Output exactly %d lines in %s, one candidate per line.\n", lineCount, language.Name)
	b.WriteString("No numbering, no bullets, no quotes, no commentary before or after.\n\n")
	b.WriteString("generate now\n")
}
