package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanFlagsEveryLexiconPhrase(t *testing.T) {
	for _, phrase := range Lexicon {
		m := Scan("そうですね、" + phrase + "。")
		assert.True(t, m.Violated, "phrase %q not flagged", phrase)
	}
}

func TestScanIgnoresInteriorWhitespace(t *testing.T) {
	for _, phrase := range Lexicon {
		// Insert a space between every character.
		spaced := strings.Join(strings.Split(phrase, ""), " ")
		assert.True(t, Scan(spaced).Violated, "spaced phrase %q not flagged", spaced)
	}

	m := Scan("検討 します")
	assert.True(t, m.Violated)
	assert.Equal(t, "検討します", m.Phrase)

	assert.True(t, Scan("検討\nします").Violated)
	assert.True(t, Scan("検討　します").Violated) // full-width space
}

func TestScanPrecisionOnDecline(t *testing.T) {
	for _, text := range []string{
		"今回は見送ります。",
		"お断りします。",
		"保険より投資を優先したいので、必要性を感じません。",
		"こんにちは。よろしくお願いします。",
	} {
		assert.False(t, Scan(text).Violated, "decline text %q wrongly flagged", text)
	}
}

func TestScanLiteralAcceptance(t *testing.T) {
	m := Scan("ぜひ加入したいと思います")
	assert.True(t, m.Violated)
	assert.Equal(t, "加入したい", m.Phrase)
}

func TestScanFirstMatchWins(t *testing.T) {
	// Text containing two phrases reports the one earlier in the lexicon.
	m := Scan("加入します。前向きに検討します。")
	assert.True(t, m.Violated)
	assert.Equal(t, "加入します", m.Phrase)
}

func TestValidate(t *testing.T) {
	valid, warning := Validate("月5万円を30年払うと総額いくらですか？")
	assert.True(t, valid)
	assert.Empty(t, warning)

	valid, warning = Validate("わかりました、契約します。")
	assert.False(t, valid)
	assert.Equal(t, ViolationWarning, warning)
}

func TestScanIdempotent(t *testing.T) {
	text := "興味がありますが、まず返戻率を教えてください。"
	assert.Equal(t, Scan(text), Scan(text))
}
