package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/internal/domain/catalog"
)

func TestResolveContainsGlobalKeys(t *testing.T) {
	for _, format := range catalog.Formats() {
		for _, lang := range catalog.Languages() {
			for _, tone := range catalog.Tones() {
				set := Resolve(format.ID, lang.Code, tone.ID)

				assert.True(t, set.Has(KeyMinWords), "%s/%s/%s missing minWords", format.ID, lang.Code, tone.ID)
				assert.True(t, set.Has(KeyMaxWords), "%s/%s/%s missing maxWords", format.ID, lang.Code, tone.ID)
				assert.True(t, set.Has(KeyNoCliches), "%s/%s/%s missing noCliches", format.ID, lang.Code, tone.ID)
				assert.True(t, set.Has(KeyForbiddenWords), "%s/%s/%s missing forbiddenWords", format.ID, lang.Code, tone.ID)
			}
		}
	}
}

func TestResolveLayerPrecedence(t *testing.T) {
	// tagline 关闭 emoji，friendly 语气重新打开：语气层必须获胜
	set := Resolve(catalog.FormatTagline, "fr", catalog.ToneFriendly)
	assert.True(t, set.Bool(KeyEmojiAllowed))

	// tweet 允许 emoji，但 luxurious 语气关闭
	set = Resolve(catalog.FormatTweet, "en-US", catalog.ToneLuxurious)
	assert.False(t, set.Bool(KeyEmojiAllowed))

	// 文化层覆盖格式层：tweet 允许 emoji，ar 文化层关闭，direct 语气不触碰该键
	set = Resolve(catalog.FormatTweet, "ar", catalog.ToneDirect)
	assert.False(t, set.Bool(KeyEmojiAllowed))
}

func TestMergeLaterLayerWins(t *testing.T) {
	set := Set{"overlap": 1}.clone()
	set.merge(Set{"overlap": 2})
	set.merge(Set{"overlap": 3})

	v, ok := set.Int("overlap")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestResolveCulturalLayerUsesPrimarySubtag(t *testing.T) {
	set := Resolve(catalog.FormatTagline, "en-US", catalog.ToneDirect)
	assert.Contains(t, set.Strings(KeyAvoidSuperlatives), "ultimate")
}

func TestResolveUnknownLayersContributeNothing(t *testing.T) {
	set := Resolve("unknown-format", "zz", "unknown-tone")

	// 仅剩全局层
	min, ok := set.Int(KeyMinWords)
	require.True(t, ok)
	assert.Equal(t, 3, min)
	assert.False(t, set.Has(KeyMustStartWithVerb))
}

func TestResolveDoesNotMutateStaticTables(t *testing.T) {
	set := Resolve(catalog.FormatCTA, "fr", catalog.ToneDirect)
	set[KeyMinWords] = 99

	again := Resolve(catalog.FormatCTA, "fr", catalog.ToneDirect)
	min, _ := again.Int(KeyMinWords)
	assert.NotEqual(t, 99, min)
}

func TestValidateTooFewWords(t *testing.T) {
	result := Validate("a b", Set{KeyMinWords: 3, KeyMaxWords: 5})
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "2")
	assert.Contains(t, result.Errors[0], "3")
}

func TestValidateTooManyWords(t *testing.T) {
	result := Validate("one two three four five six", Set{KeyMinWords: 1, KeyMaxWords: 4})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "6")
	assert.Contains(t, result.Errors[0], "4")
}

func TestValidateForbiddenWords(t *testing.T) {
	result := Validate("Une offre révolutionnaire pour vous", Set{
		KeyForbiddenWords: []string{"révolutionnaire"},
	})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "révolutionnaire")
}

func TestValidateForbiddenWordscaseInsensitiveSubstring(t *testing.T) {
	result := Validate("SYNERGIES partout", Set{
		KeyForbiddenWords: []string{"synergie"},
	})
	assert.False(t, result.Valid)
}

func TestValidateSuperlatives(t *testing.T) {
	result := Validate("Le meilleur choix possible", Set{
		KeyAvoidSuperlatives: []string{"meilleur"},
	})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "meilleur")
}

func TestValidateVerbPrefixHeuristic(t *testing.T) {
	result := Validate("Commencez maintenant", Set{KeyMustStartWithVerb: true})
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	// "Découvrez" 命中 4 字符前缀 "déco"
	result = Validate("Découvrez notre gamme", Set{KeyMustStartWithVerb: true})
	assert.True(t, result.Valid)

	result = Validate("Maintenant commencez", Set{KeyMustStartWithVerb: true})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "Maintenant")
}

func TestValidateVerbRuleRejectsEmptyText(t *testing.T) {
	// 空文本没有首词可查，规则仍然视为违反而不是跳过
	result := Validate("", Set{KeyMustStartWithVerb: true})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "empty text")

	result = Validate("   \t ", Set{KeyMustStartWithVerb: true})
	require.False(t, result.Valid)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	result := Validate("incroyable synergie", Set{
		KeyMinWords:          3,
		KeyForbiddenWords:    []string{"synergie"},
		KeyAvoidSuperlatives: []string{"incroyable"},
		KeyMustStartWithVerb: true,
	})
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
}

func TestValidateMissingKeysSkipped(t *testing.T) {
	result := Validate("n'importe quel texte ici", Set{})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateMalformedValuesSkipped(t *testing.T) {
	result := Validate("deux mots", Set{
		KeyMinWords:       "three",
		KeyForbiddenWords: 42,
	})
	assert.True(t, result.Valid)
}
