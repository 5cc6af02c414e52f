package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/pkg/errors"
)

func TestFormatByID(t *testing.T) {
	def, err := FormatByID(FormatTagline)
	require.NoError(t, err)
	assert.Equal(t, FormatTagline, def.ID)
	assert.NotEmpty(t, def.Roles)
	assert.NotEmpty(t, def.Platforms)
}

func TestFormatByIDUnknown(t *testing.T) {
	_, err := FormatByID("billboard")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFormatNotFound))

	appErr := errors.AsAppError(err)
	assert.Contains(t, appErr.Detail, "billboard")
	assert.Contains(t, appErr.Detail, "tagline")
}

func TestToneVerbsFallbackToFrench(t *testing.T) {
	def, err := ToneByID(ToneLuxurious)
	require.NoError(t, err)

	// luxurious 没有德语动词表，必须回退法语
	verbs := def.VerbsFor("de")
	assert.Equal(t, def.Verbs[VerbFallbackLanguage], verbs)

	// 有英语动词表时直接命中
	assert.Equal(t, def.Verbs["en"], def.VerbsFor("en"))
}

func TestEveryToneHasFrenchVerbs(t *testing.T) {
	for _, tone := range Tones() {
		assert.NotEmpty(t, tone.Verbs[VerbFallbackLanguage], "tone %s must carry fr verbs", tone.ID)
	}
}

func TestLanguageByCode(t *testing.T) {
	def, err := LanguageByCode("en-US")
	require.NoError(t, err)
	assert.Equal(t, "en-US", def.Code)
	assert.NotEmpty(t, def.CulturalNotes)

	_, err = LanguageByCode("xx")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLanguageNotFound))
}

func TestPrimarySubtag(t *testing.T) {
	assert.Equal(t, "en", PrimarySubtag("en-US"))
	assert.Equal(t, "pt", PrimarySubtag("pt_BR"))
	assert.Equal(t, "fr", PrimarySubtag("fr"))
	assert.Equal(t, "fr", PrimarySubtag(" fr "))
}

func TestCatalogListsAreSorted(t *testing.T) {
	ids := FormatIDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
	assert.Len(t, Formats(), len(ids))
	assert.Len(t, Tones(), len(ToneIDs()))
	assert.Len(t, Languages(), len(LanguageCodes()))
}
