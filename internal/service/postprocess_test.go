package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "Hello there.", "Hello there."},
		{"double quotes", `"Hello there."`, "Hello there."},
		{"single quotes", `'Hello'`, "Hello"},
		{"curly quotes", "“Hello”", "Hello"},
		{"german quotes", "„Hallo“", "Hallo"},
		{"guillemets", "«Bonjour»", "Bonjour"},
		{"only one pair stripped", `""Hi""`, `"Hi"`},
		{"asymmetric kept", `"Hello'`, `"Hello'`},
		{"inner quotes kept", `She said "hi" twice`, `She said "hi" twice`},
		{"translation label", "Translation: Hallo", "Hallo"},
		{"label case-insensitive", "IMPROVED TEXT:   Hi", "Hi"},
		{"label then quotes", `translation: "Ciao"`, "Ciao"},
		{"quoted improve label", `"Improved text: Hello"`, "Hello"},
		{"quoted translation label", `"Translation: Hallo"`, "Hallo"},
		{"guillemets around label", "«Translation: Bonjour»", "Bonjour"},
		{"surrounding whitespace", "\n  Hi  \n", "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanOutput(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanOutputEmpty(t *testing.T) {
	for _, content := range []string{"", "   ", `""`, "Translation:", `Improved text: ''`} {
		_, err := cleanOutput(content)
		assert.ErrorIs(t, err, ErrMalformedResponse, content)
	}
}

func TestParseAnswers(t *testing.T) {
	lang, ok := parseLanguageAnswer(" 'DE'.\n")
	assert.True(t, ok)
	assert.Equal(t, "de", string(lang))

	_, ok = parseLanguageAnswer("German")
	assert.False(t, ok)

	tone, ok := parseToneAnswer("Informal")
	assert.True(t, ok)
	assert.Equal(t, "informal", string(tone))

	tone, ok = parseToneAnswer("formal.")
	assert.True(t, ok)
	assert.Equal(t, "formal", string(tone))

	_, ok = parseToneAnswer("casual")
	assert.False(t, ok)
}
