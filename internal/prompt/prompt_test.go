package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/mail-assistant/internal/llm"
	"github.com/capitalize-ai/mail-assistant/internal/model"
)

func TestSplitSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"three parts", "Hi A|||Hi B|||Hi C", []string{"Hi A", "Hi B", "Hi C"}},
		{"blank parts dropped", " Hi A ||| ||||||Hi B\n", []string{"Hi A", "Hi B"}},
		{"no delimiter", "Only one", []string{"Only one"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSuggestions(tt.content))
		})
	}
}

func TestMessagesOrder(t *testing.T) {
	msgs := Prompt{System: "sys", User: "usr"}.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, "sys", msgs[0].Content)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "usr", msgs[1].Content)
}

func TestImproveRegister(t *testing.T) {
	formal := Improve("Sehr geehrte Frau Meier", model.LanguageGerman, model.ToneFormal)
	assert.Contains(t, formal.System, "Sie-Form")
	assert.Contains(t, formal.System, "German")
	assert.True(t, strings.HasSuffix(formal.User, "Sehr geehrte Frau Meier"))

	informal := Improve("hey", model.LanguageEnglish, model.ToneInformal)
	assert.Contains(t, informal.System, "Maintain informal language.")
}

func TestImproveUnknownLanguageFallsBack(t *testing.T) {
	p := Improve("hola", model.Language("pt"), model.ToneFormal)
	assert.Contains(t, p.System, "Fix only grammar and spelling errors.")
}

func TestTranslateNamesTarget(t *testing.T) {
	p := Translate("Hello", model.LanguageFrench, model.ToneInformal)
	assert.Contains(t, p.System, "French")
	assert.Contains(t, p.System, "informal")
	assert.Equal(t, "Translate to French: Hello", p.User)
}

func TestFormalityDetectionLocalized(t *testing.T) {
	assert.Contains(t, FormalityDetection("x", model.LanguageGerman).System, "Sie-Form")
	assert.Equal(t,
		FormalityDetection("x", model.LanguageEnglish).System,
		FormalityDetection("x", model.Language("nl")).System)
}

func TestSuggestionsIncludesHistory(t *testing.T) {
	conv := &model.ConversationContext{
		LatestMessage: model.Message{Text: "Can we meet Friday?", Sender: "anna@example.com"},
		PriorMessages: []model.Message{
			{Text: "Thanks for the update.", Sender: "me@example.com"},
			{Text: "Here is the report."},
		},
	}

	p := Suggestions(conv, model.LanguageEnglish, model.ToneFormal)

	assert.Contains(t, p.User, "From: anna@example.com\nMessage: \"Can we meet Friday?\"")
	assert.Contains(t, p.User, "Previous conversation history:")
	assert.Contains(t, p.User, "---\nFrom: the sender\nMessage: \"Here is the report.\"")
	assert.Contains(t, p.User, "You are writing AS the recipient TO anna@example.com.")
	assert.Contains(t, p.System, "Generate exactly 3 different formal (professional) response variations.")
	assert.Contains(t, p.System, SuggestionDelimiter)
}

func TestSuggestionsWithoutHistory(t *testing.T) {
	conv := &model.ConversationContext{LatestMessage: model.Message{Text: "Ciao!"}}

	p := Suggestions(conv, model.LanguageItalian, model.ToneInformal)

	assert.NotContains(t, p.User, "Previous conversation history")
	assert.Contains(t, p.System, "informali (tu)")
}

func TestBackfillListsExisting(t *testing.T) {
	conv := &model.ConversationContext{LatestMessage: model.Message{Text: "Lunch?"}}

	p := Backfill(conv, model.LanguageSpanish, model.ToneFormal, 2, []string{"Sí,\ncon gusto"})

	assert.Contains(t, p.User, "Generate 2 additional responses for: Lunch?")
	assert.Contains(t, p.User, "- Sí, con gusto\n")
	assert.Contains(t, p.System, "Genera exactamente 2 respuestas formales (usted)")
}

func TestProcessingErrorPrefix(t *testing.T) {
	assert.Equal(t, "Fehler bei der Verarbeitung: ", ProcessingErrorPrefix(model.LanguageGerman))
	assert.Equal(t, "Error during processing: ", ProcessingErrorPrefix(model.Language("xx")))
}
