package hookline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/constraint"
	"hookline-ai-api/pkg/errors"
)

func TestCompilePromptDeterministic(t *testing.T) {
	in := PromptInput{
		Concept:     "une eau pétillante aux agrumes",
		Description: "zéro sucre, production locale",
		Format:      catalog.FormatTagline,
		Tone:        catalog.ToneInspiring,
		Language:    "fr",
	}
	set := constraint.Resolve(in.Format, in.Language, in.Tone)

	first, err := CompilePrompt(in, set)
	require.NoError(t, err)
	second, err := CompilePrompt(in, set)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompilePromptObjectiveLine(t *testing.T) {
	in := PromptInput{
		Concept:  "solar-powered backpack",
		Format:   catalog.FormatTagline,
		Tone:     catalog.ToneDirect,
		Language: "en-US",
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	assert.Contains(t, prompt, `generate exactly 10 taglines for concept: "solar-powered backpack"`)
}

func TestCompilePromptLineCountOverride(t *testing.T) {
	in := PromptInput{
		Concept:   "app de méditation",
		Format:    catalog.FormatCTA,
		Tone:      catalog.ToneUrgent,
		Language:  "fr",
		LineCount: 5,
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	assert.Contains(t, prompt, "generate exactly 5 calls to action")
	assert.Contains(t, prompt, "Output exactly 5 lines")
}

func TestCompilePromptVerbFallbackToFrench(t *testing.T) {
	// luxurious 语气没有 pt 动词表，必须回退到 fr
	in := PromptInput{
		Concept:  "relógio artesanal",
		Format:   catalog.FormatTagline,
		Tone:     catalog.ToneLuxurious,
		Language: "pt-BR",
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	tone, err := catalog.ToneByID(catalog.ToneLuxurious)
	require.NoError(t, err)
	for _, verb := range tone.Verbs[catalog.VerbFallbackLanguage] {
		assert.Contains(t, prompt, verb)
	}
}

func TestCompilePromptExamplePairFallbackToTagline(t *testing.T) {
	// email 格式没有专属示例，回退到 tagline 示例对
	in := PromptInput{
		Concept:  "newsletter produit",
		Format:   catalog.FormatEmail,
		Tone:     catalog.ToneFriendly,
		Language: "fr",
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	assert.Contains(t, prompt, examplePairs[catalog.FormatTagline].Good)
}

func TestCompilePromptConstraintNumberingSequential(t *testing.T) {
	in := PromptInput{
		Concept:  "carte cadeau",
		Format:   catalog.FormatCTA,
		Tone:     catalog.ToneDirect,
		Language: "fr",
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	section := sectionBetween(prompt, "## Constraints", "## Techniques")
	require.NotEmpty(t, section)

	var numbered int
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		numbered++
		assert.True(t, strings.HasPrefix(line, fmt.Sprintf("%d. ", numbered)), "line %q out of sequence", line)
	}
	assert.GreaterOrEqual(t, numbered, 4)
}

func TestCompilePromptUnknownEnums(t *testing.T) {
	in := PromptInput{Concept: "x", Format: "brochure", Tone: catalog.ToneDirect, Language: "fr"}
	_, err := CompilePrompt(in, constraint.Set{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodePromptCompileFailed))

	in = PromptInput{Concept: "x", Format: catalog.FormatTagline, Tone: "sarcastic", Language: "fr"}
	_, err = CompilePrompt(in, constraint.Set{})
	require.Error(t, err)

	in = PromptInput{Concept: "x", Format: catalog.FormatTagline, Tone: catalog.ToneDirect, Language: "xx"}
	_, err = CompilePrompt(in, constraint.Set{})
	require.Error(t, err)
}

func TestCompilePromptEndsWithTrigger(t *testing.T) {
	in := PromptInput{
		Concept:  "vélo cargo électrique",
		Format:   catalog.FormatTweet,
		Tone:     catalog.ToneHumorous,
		Language: "fr",
	}
	prompt, err := CompilePrompt(in, constraint.Resolve(in.Format, in.Language, in.Tone))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(prompt, "generate now"))
}

func TestPromptFingerprintStable(t *testing.T) {
	assert.Equal(t, PromptFingerprint("abc"), PromptFingerprint("abc"))
	assert.NotEqual(t, PromptFingerprint("abc"), PromptFingerprint("abd"))
	assert.Len(t, PromptFingerprint("abc"), 64)
}

func sectionBetween(text, start, end string) string {
	i := strings.Index(text, start)
	if i < 0 {
		return ""
	}
	rest := text[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return rest
	}
	return rest[:j]
}
