// Package model defines data structures for the mail assistant.
package model

// ConversationContext is the thread surrounding a compose box, newest first.
type ConversationContext struct {
	LatestMessage Message   `json:"latest_message"`
	PriorMessages []Message `json:"prior_messages"`
}

// Len returns the number of messages in the context.
func (c *ConversationContext) Len() int {
	return 1 + len(c.PriorMessages)
}

// ContextRequest is the request to extract a conversation from a page snapshot.
type ContextRequest struct {
	HTML string `json:"html"`
}

// SuggestRequest is the request to generate reply suggestions. Either HTML or
// Context must be set; HTML takes precedence.
type SuggestRequest struct {
	TargetID string               `json:"target_id,omitempty"`
	HTML     string               `json:"html,omitempty"`
	Context  *ConversationContext `json:"context,omitempty"`
}
