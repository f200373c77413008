package extract

import (
	"regexp"
	"strings"
)

var (
	// "On Mon, 3 May 2024, Anna <anna@example.com> wrote:" and its localized variants.
	// The colon must end the line so body text like "On Monday I wrote: see below" survives.
	replyPreamblePattern = regexp.MustCompile(`(?m)^(?:On|Am|Le|El|Il) .*?(?:wrote|schrieb|a écrit|escribió|ha scritto)[^\n]*:[ \t]*$`)

	forwardBannerPattern = regexp.MustCompile(`(?m)^-{3,}\s*(?:Forwarded message|Weitergeleitete Nachricht|Message transféré|Mensaje reenviado|Messaggio inoltrato)\s*-{3,}.*$`)

	quotedLinePattern   = regexp.MustCompile(`(?m)^>.*$`)
	trailingSpace       = regexp.MustCompile(`(?m)[ \t\x{00A0}]+$`)
	blankRunPattern     = regexp.MustCompile(`\n{3,}`)
	accountEmailPattern = regexp.MustCompile(`(?i)([a-z0-9._-]+@[a-z0-9._-]+\.[a-z0-9._-]+)`)
)

// CleanText strips quoted replies, forwarded banners and quote-marked lines from
// an email body and collapses runs of blank lines. CleanText(CleanText(s)) == CleanText(s).
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = trailingSpace.ReplaceAllString(text, "")
	text = replyPreamblePattern.ReplaceAllString(text, "")
	text = forwardBannerPattern.ReplaceAllString(text, "")
	text = quotedLinePattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ParseAccountEmail returns the first email address in an account label, or "".
func ParseAccountEmail(label string) string {
	if m := accountEmailPattern.FindStringSubmatch(label); m != nil {
		return m[1]
	}
	return ""
}
