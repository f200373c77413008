// Package extract turns a webmail page snapshot into a structured conversation.
package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/pkg/logger"
)

// ErrNoConversationFound is returned when the page holds no non-empty message.
var ErrNoConversationFound = errors.New("no email conversation found")

// fieldStrategy reads one field from a message header; "" means no match.
type fieldStrategy func(header *goquery.Selection) string

// Extractor builds a ConversationContext from a page snapshot.
type Extractor struct {
	selectors  Selectors
	senders    []fieldStrategy
	timestamps []fieldStrategy
	logger     *logger.Logger
}

// NewExtractor creates an extractor for the given host-page selectors.
func NewExtractor(selectors Selectors, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{
		selectors:  selectors,
		senders:    senderStrategies(selectors),
		timestamps: timestampStrategies(selectors),
		logger:     log,
	}
}

// ExtractHTML parses an HTML snapshot and extracts the conversation from it.
func (e *Extractor) ExtractHTML(r io.Reader) (*model.ConversationContext, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page snapshot: %w", err)
	}
	return e.Extract(doc)
}

// Extract walks message bodies newest first. The most recently rendered non-empty
// message becomes LatestMessage; older ones follow in PriorMessages.
func (e *Extractor) Extract(doc *goquery.Document) (*model.ConversationContext, error) {
	bodies := e.messageBodies(doc)
	currentUser := e.currentUser(doc)

	var conv *model.ConversationContext
	for i := len(bodies) - 1; i >= 0; i-- {
		body := bodies[i]

		text := CleanText(innerText(body, e.selectors.Excluded))
		if text == "" {
			continue
		}

		msg := model.Message{Text: text}
		if header := e.header(body); header != nil {
			msg.Sender = firstMatch(e.senders, header)
			msg.Timestamp = firstMatch(e.timestamps, header)
		}
		msg.IsCurrentUser = currentUser != "" && strings.EqualFold(msg.Sender, currentUser)

		if conv == nil {
			conv = &model.ConversationContext{LatestMessage: msg}
			continue
		}
		conv.PriorMessages = append(conv.PriorMessages, msg)
	}

	if conv == nil {
		return nil, ErrNoConversationFound
	}

	e.logger.Debug("conversation extracted",
		zap.Int("messages", conv.Len()),
		zap.Bool("current_user_known", currentUser != ""),
	)

	return conv, nil
}

// messageBodies returns matched bodies in document order. A match that contains
// another match is dropped so nested selector families do not duplicate text.
func (e *Extractor) messageBodies(doc *goquery.Document) []*goquery.Selection {
	if len(e.selectors.MessageBodies) == 0 {
		return nil
	}
	all := doc.Find(strings.Join(e.selectors.MessageBodies, ", "))

	var out []*goquery.Selection
	all.Each(func(_ int, s *goquery.Selection) {
		if s.Find(strings.Join(e.selectors.MessageBodies, ", ")).Length() > 0 {
			return
		}
		out = append(out, s)
	})
	return out
}

func (e *Extractor) currentUser(doc *goquery.Document) string {
	for _, sel := range e.selectors.AccountIndicators {
		label, ok := doc.Find(sel).First().Attr("aria-label")
		if !ok {
			continue
		}
		if email := ParseAccountEmail(label); email != "" {
			return email
		}
	}
	return ""
}

func (e *Extractor) header(body *goquery.Selection) *goquery.Selection {
	for _, sel := range e.selectors.Headers {
		if h := body.Closest(sel); h.Length() > 0 {
			return h
		}
	}
	return nil
}

func firstMatch(strategies []fieldStrategy, header *goquery.Selection) string {
	for _, strategy := range strategies {
		if v := strategy(header); v != "" {
			return v
		}
	}
	return ""
}

// senderStrategies prefer the structured address attribute of any sender field
// over the visible name.
func senderStrategies(s Selectors) []fieldStrategy {
	var out []fieldStrategy
	if s.SenderEmailAttr != "" {
		for _, sel := range s.Senders {
			out = append(out, attrStrategy(sel, s.SenderEmailAttr))
		}
	}
	for _, sel := range s.Senders {
		out = append(out, textStrategy(sel))
	}
	return out
}

func timestampStrategies(s Selectors) []fieldStrategy {
	var out []fieldStrategy
	for _, sel := range s.Timestamps {
		out = append(out, textStrategy(sel), attrStrategy(sel, "title"))
	}
	return out
}

func attrStrategy(selector, attr string) fieldStrategy {
	return func(header *goquery.Selection) string {
		v, _ := header.Find(selector).First().Attr(attr)
		return strings.TrimSpace(v)
	}
}

func textStrategy(selector string) fieldStrategy {
	return func(header *goquery.Selection) string {
		return strings.TrimSpace(header.Find(selector).First().Text())
	}
}
