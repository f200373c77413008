package model

// Message is a single email extracted from the visible conversation.
type Message struct {
	Text          string `json:"text"`
	Sender        string `json:"sender,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
	IsCurrentUser bool   `json:"is_current_user"`
}

// Tone is the register of a message as classified by the completion service.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneInformal Tone = "informal"
)

// IsFormal reports whether the tone is formal.
func (t Tone) IsFormal() bool {
	return t != ToneInformal
}

// ImproveRequest is the request to fix grammar and spelling of a draft.
type ImproveRequest struct {
	TargetID string `json:"target_id,omitempty"`
	Text     string `json:"text"`
}

// TranslateRequest is the request to translate a draft.
type TranslateRequest struct {
	TargetID       string `json:"target_id,omitempty"`
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// AssistResult is the outcome of an improve or translate operation.
type AssistResult struct {
	Text           string   `json:"text"`
	Language       Language `json:"language"`
	Tone           Tone     `json:"tone"`
	TargetLanguage Language `json:"target_language,omitempty"`
}
