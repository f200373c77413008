package model

import (
	"strings"
)

// Language is a supported language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
	LanguageItalian Language = "it"

	// DefaultLanguage is used whenever detection fails.
	DefaultLanguage = LanguageEnglish
)

// LanguageInfo describes a supported language for prompts and the language picker.
type LanguageInfo struct {
	Code       Language `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"native_name"`
	Flag       string   `json:"flag"`
}

var supportedLanguages = []LanguageInfo{
	{Code: LanguageEnglish, Name: "English", NativeName: "English", Flag: "🇬🇧"},
	{Code: LanguageGerman, Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: LanguageFrench, Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: LanguageSpanish, Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: LanguageItalian, Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
}

// SupportedLanguages returns the closed set of supported languages in display order.
func SupportedLanguages() []LanguageInfo {
	out := make([]LanguageInfo, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage returns the language for an exact code, case-insensitively.
func ParseLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, info := range supportedLanguages {
		if string(info.Code) == code {
			return info.Code, true
		}
	}
	return "", false
}

// Name returns the English display name used in prompts.
func (l Language) Name() string {
	for _, info := range supportedLanguages {
		if info.Code == l {
			return info.Name
		}
	}
	return string(l)
}

// Supported reports whether l is in the supported set.
func (l Language) Supported() bool {
	for _, info := range supportedLanguages {
		if info.Code == l {
			return true
		}
	}
	return false
}
