package extract

// Selectors are the structural CSS selectors of the host webmail page. Every list
// is ordered; lookups take the first non-empty match.
type Selectors struct {
	// MessageBodies match rendered message bodies, in document order.
	MessageBodies []string
	// Headers match the ancestor holding a message's sender and date.
	Headers []string
	// Senders match the sender field inside a header.
	Senders []string
	// SenderEmailAttr is the attribute carrying the sender address.
	SenderEmailAttr string
	// Timestamps match the date field inside a header.
	Timestamps []string
	// AccountIndicators match the element whose aria-label names the signed-in account.
	AccountIndicators []string
	// Excluded elements are dropped from body text (quoted history, scripts).
	Excluded []string
}

// DefaultSelectors returns the selectors for the Gmail web client.
func DefaultSelectors() Selectors {
	return Selectors{
		MessageBodies:     []string{".h7", ".a3s.aiL"},
		Headers:           []string{".gs", ".adn"},
		Senders:           []string{".gD", ".g2", "[email]"},
		SenderEmailAttr:   "email",
		Timestamps:        []string{".g3", ".adx"},
		AccountIndicators: []string{".gb_d.gb_Na.gb_g", "a[aria-label*='@']"},
		Excluded:          []string{"script", "style", ".gmail_quote"},
	}
}
