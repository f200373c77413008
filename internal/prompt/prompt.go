// Package prompt assembles the completion-service prompts for the mail assistant.
package prompt

import (
	"fmt"
	"strings"

	"github.com/capitalize-ai/mail-assistant/internal/llm"
	"github.com/capitalize-ai/mail-assistant/internal/model"
)

// SuggestionDelimiter separates reply suggestions in a completion.
const SuggestionDelimiter = "|||"

// Prompt is a system instruction plus the user turn.
type Prompt struct {
	System string
	User   string
}

// Messages converts the prompt into chat messages.
func (p Prompt) Messages() []llm.ChatMessage {
	return []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: p.User},
	}
}

// LanguageDetection asks for the language code of text.
func LanguageDetection(text string) Prompt {
	return Prompt{
		System: "You are a language detector. Respond only with the language code: 'en', 'de', 'fr', 'es', or 'it'.",
		User:   "Detect the language of this text and respond with the language code: " + text,
	}
}

var formalityInstructions = map[model.Language]string{
	model.LanguageEnglish: "Analyze only the tone and address form. Reply ONLY with 'formal' if it uses professional/formal language, or 'informal' if it uses casual/friendly language.",
	model.LanguageGerman:  "Du bist ein Experte für deutsche Texte. Analysiere nur die Anrede und Ausdrucksweise. Antworte NUR mit 'formal' wenn Sie-Form verwendet wird, oder 'informal' wenn du-Form verwendet wird.",
	model.LanguageFrench:  "Analysez uniquement la forme d'adresse. Répondez UNIQUEMENT par 'formal' si le texte utilise 'vous', ou 'informal' s'il utilise 'tu'.",
	model.LanguageSpanish: "Analiza solo la forma de tratamiento. Responde SOLO con 'formal' si usa 'usted', o 'informal' si usa 'tú'.",
	model.LanguageItalian: "Analizza solo la forma di trattamento. Rispondi SOLO con 'formal' se usa 'Lei', o 'informal' se usa 'tu'.",
}

// FormalityDetection asks whether text is formal, using a classifier tuned to lang.
func FormalityDetection(text string, lang model.Language) Prompt {
	return Prompt{
		System: localized(formalityInstructions, lang),
		User:   text,
	}
}

// grammarInstructions hold the register hint for formal and informal text.
var grammarInstructions = map[model.Language][3]string{
	model.LanguageEnglish: {"Fix only grammar and spelling errors.", "Maintain formal language.", "Maintain informal language."},
	model.LanguageGerman:  {"Korrigiere nur Grammatik- und Rechtschreibfehler.", "Behalte die Sie-Form bei.", "Behalte die Du-Form bei."},
	model.LanguageFrench:  {"Corrigez uniquement les erreurs de grammaire et d'orthographe.", "Gardez le vouvoiement.", "Gardez le tutoiement."},
	model.LanguageSpanish: {"Corrige solo errores de gramática y ortografía.", "Mantén el uso de usted.", "Mantén el tuteo."},
	model.LanguageItalian: {"Correggi solo errori di grammatica e ortografia.", "Mantieni il Lei.", "Mantieni il tu."},
}

var keepStyle = map[model.Language]string{
	model.LanguageEnglish: "Do not change the style or content.",
	model.LanguageGerman:  "Ändere nicht den Stil oder Inhalt.",
	model.LanguageFrench:  "Ne modifiez pas le style ou le contenu.",
	model.LanguageSpanish: "No cambies el estilo ni el contenido.",
	model.LanguageItalian: "Non modificare lo stile o il contenuto.",
}

// Improve asks for a grammar and spelling fix that keeps tone and language.
func Improve(text string, lang model.Language, tone model.Tone) Prompt {
	g := grammarInstructions[lang]
	if g[0] == "" {
		g = grammarInstructions[model.DefaultLanguage]
	}
	register := g[1]
	if !tone.IsFormal() {
		register = g[2]
	}

	return Prompt{
		System: fmt.Sprintf("You are an editor. %s %s %s Output ONLY the improved text in %s. Do not explain or add any other text.",
			g[0], register, localized(keepStyle, lang), lang.Name()),
		User: "Improve this text: " + text,
	}
}

// Translate asks for a direct translation into target that keeps tone.
func Translate(text string, target model.Language, tone model.Tone) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are a translator. Output ONLY the direct translation in %s. Maintain the exact %s tone. Do not explain or add any other text.",
			target.Name(), tone),
		User: fmt.Sprintf("Translate to %s: %s", target.Name(), text),
	}
}

// Suggestions asks for SuggestionCount replies to the latest message of conv.
func Suggestions(conv *model.ConversationContext, lang model.Language, tone model.Tone) Prompt {
	latest := conv.LatestMessage
	sender := senderLabel(latest.Sender)

	var user strings.Builder
	user.WriteString("Generate response suggestions for this conversation:\n")
	user.WriteString("Latest email you're responding to:\n")
	fmt.Fprintf(&user, "From: %s\nMessage: \"%s\"\n", sender, latest.Text)

	if len(conv.PriorMessages) > 0 {
		user.WriteString("\nPrevious conversation history:\n")
		for i, m := range conv.PriorMessages {
			if i > 0 {
				user.WriteString("---\n")
			}
			fmt.Fprintf(&user, "From: %s\nMessage: \"%s\"\n", senderLabel(m.Sender), m.Text)
		}
	}

	fmt.Fprintf(&user, "\nYou are writing AS the recipient TO %s.\n", sender)
	fmt.Fprintf(&user, "Generate %d different appropriate responses.", model.SuggestionCount)

	return Prompt{
		System: suggestionSystem(lang, tone, model.SuggestionCount),
		User:   user.String(),
	}
}

// Backfill asks for n more replies that differ from the ones already produced.
func Backfill(conv *model.ConversationContext, lang model.Language, tone model.Tone, n int, existing []string) Prompt {
	var user strings.Builder
	fmt.Fprintf(&user, "Generate %d additional responses for: %s", n, conv.LatestMessage.Text)
	if len(existing) > 0 {
		user.WriteString("\n\nDo not repeat these responses:\n")
		for _, s := range existing {
			fmt.Fprintf(&user, "- %s\n", strings.ReplaceAll(s, "\n", " "))
		}
	}

	return Prompt{
		System: suggestionSystem(lang, tone, n),
		User:   user.String(),
	}
}

// SplitSuggestions splits a completion on the delimiter and drops blank parts.
func SplitSuggestions(content string) []string {
	var out []string
	for _, part := range strings.Split(content, SuggestionDelimiter) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var processingErrorPrefixes = map[model.Language]string{
	model.LanguageEnglish: "Error during processing: ",
	model.LanguageGerman:  "Fehler bei der Verarbeitung: ",
	model.LanguageFrench:  "Erreur lors du traitement: ",
	model.LanguageSpanish: "Error durante el procesamiento: ",
	model.LanguageItalian: "Errore durante l'elaborazione: ",
}

// ProcessingErrorPrefix returns the user-visible error prefix in lang.
func ProcessingErrorPrefix(lang model.Language) string {
	return localized(processingErrorPrefixes, lang)
}

func senderLabel(sender string) string {
	if sender == "" {
		return "the sender"
	}
	return sender
}

func localized(table map[model.Language]string, lang model.Language) string {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[model.DefaultLanguage]
}
