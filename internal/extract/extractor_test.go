package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadHTML = `<html><body>
<a class="gb_d gb_Na gb_g" aria-label="Google Account: Me (me@example.com)"></a>
<div class="adn">
  <div class="gs">
    <span class="gD" email="anna@example.com">Anna</span>
    <span class="g3" title="Fri, May 3, 2024, 9:00 AM">May 3</span>
    <div class="a3s aiL"><div>Hallo zusammen,</div><div>wie geht's?</div></div>
  </div>
</div>
<div class="adn">
  <div class="gs">
    <span class="gD" email="me@example.com">Me</span>
    <span class="g3">May 4</span>
    <div class="a3s aiL">Gut, danke!<br>
      <div class="gmail_quote">Am 3. Mai schrieb Anna:<blockquote>Hallo zusammen</blockquote></div>
    </div>
  </div>
</div>
<div class="adn">
  <div class="gs">
    <span class="g2">Bob Builder</span>
    <span class="adx">10:15</span>
    <div class="a3s aiL">Am 4. Mai schrieb Me:<br>&gt; Gut, danke!<br><br><br><br>Super, bis dann.</div>
  </div>
</div>
</body></html>`

func TestExtractOrdersNewestFirst(t *testing.T) {
	e := NewExtractor(DefaultSelectors(), nil)

	conv, err := e.ExtractHTML(strings.NewReader(threadHTML))
	require.NoError(t, err)

	assert.Equal(t, "Super, bis dann.", conv.LatestMessage.Text)
	assert.Equal(t, "Bob Builder", conv.LatestMessage.Sender)
	assert.Equal(t, "10:15", conv.LatestMessage.Timestamp)
	assert.False(t, conv.LatestMessage.IsCurrentUser)

	require.Len(t, conv.PriorMessages, 2)

	assert.Equal(t, "Gut, danke!", conv.PriorMessages[0].Text)
	assert.Equal(t, "me@example.com", conv.PriorMessages[0].Sender)
	assert.True(t, conv.PriorMessages[0].IsCurrentUser)

	assert.Equal(t, "Hallo zusammen,\nwie geht's?", conv.PriorMessages[1].Text)
	assert.Equal(t, "anna@example.com", conv.PriorMessages[1].Sender)
	assert.Equal(t, "May 3", conv.PriorMessages[1].Timestamp)
}

func TestExtractLaterBlockIsLatest(t *testing.T) {
	page := `<div class="gs"><div class="a3s aiL">block B</div></div>
<div class="gs"><div class="a3s aiL">block A</div></div>`

	conv, err := NewExtractor(DefaultSelectors(), nil).ExtractHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "block A", conv.LatestMessage.Text)
	require.Len(t, conv.PriorMessages, 1)
	assert.Equal(t, "block B", conv.PriorMessages[0].Text)
}

func TestExtractNoMessages(t *testing.T) {
	conv, err := NewExtractor(DefaultSelectors(), nil).ExtractHTML(strings.NewReader(`<div class="compose">draft</div>`))
	assert.ErrorIs(t, err, ErrNoConversationFound)
	assert.Nil(t, conv)
}

func TestExtractSkipsEmptyBodies(t *testing.T) {
	page := `<div class="a3s aiL">Real text</div><div class="a3s aiL">&gt; only a quote</div><div class="a3s aiL">   </div>`

	conv, err := NewExtractor(DefaultSelectors(), nil).ExtractHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Real text", conv.LatestMessage.Text)
	assert.Empty(t, conv.PriorMessages)
	assert.Empty(t, conv.LatestMessage.Sender)
}

func TestExtractNestedBodiesNotDuplicated(t *testing.T) {
	page := `<div class="h7"><div class="a3s aiL">Only once</div></div>`

	conv, err := NewExtractor(DefaultSelectors(), nil).ExtractHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Only once", conv.LatestMessage.Text)
	assert.Empty(t, conv.PriorMessages)
}

func TestExtractWithoutAccountIndicator(t *testing.T) {
	page := `<div class="gs"><span class="gD" email="x@example.com">X</span><div class="a3s aiL">Hi</div></div>`

	conv, err := NewExtractor(DefaultSelectors(), nil).ExtractHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "x@example.com", conv.LatestMessage.Sender)
	assert.False(t, conv.LatestMessage.IsCurrentUser)
}

func TestExtractCustomSelectors(t *testing.T) {
	sel := Selectors{
		MessageBodies: []string{"article .body"},
		Headers:       []string{"article"},
		Senders:       []string{".from"},
		Timestamps:    []string{"time"},
	}
	page := `<article><span class="from">Zed</span><time>yesterday</time><p class="body">Ping</p></article>`

	conv, err := NewExtractor(sel, nil).ExtractHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Ping", conv.LatestMessage.Text)
	assert.Equal(t, "Zed", conv.LatestMessage.Sender)
	assert.Equal(t, "yesterday", conv.LatestMessage.Timestamp)
}
