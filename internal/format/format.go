// Package format converts the model's markdown-flavored output into
// Telegram HTML. The transform is deterministic, never fails, and passes
// already-clean text through unchanged.
package format

import (
	"regexp"
	"strings"
)

var (
	h3Re        = regexp.MustCompile(`(?m)^###\s+(.+)$`)
	h2Re        = regexp.MustCompile(`(?m)^##\s+(.+)$`)
	h1Re        = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.+?)\*`)
	underlineRe = regexp.MustCompile(`_(.+?)_`)
	codeRe      = regexp.MustCompile("`([^`]+)`")
	bulletRe    = regexp.MustCompile(`(?m)^\s*[-•]\s+`)
)

// ToTelegramHTML rewrites the model's markup dialect into Telegram HTML:
// headers become bold lines with a marker emoji, emphasis maps to
// <b>/<i>/<u>/<code>, bullets become check marks, and leftover asterisks
// are stripped.
func ToTelegramHTML(text string) string {
	if text == "" {
		return text
	}

	text = h3Re.ReplaceAllString(text, "<b>📌 $1</b>")
	text = h2Re.ReplaceAllString(text, "<b>▶️ $1</b>")
	text = h1Re.ReplaceAllString(text, "<b>🔹 $1</b>")

	text = boldRe.ReplaceAllString(text, "<b>$1</b>")
	text = italicRe.ReplaceAllString(text, "<i>$1</i>")
	text = underlineRe.ReplaceAllString(text, "<u>$1</u>")
	text = codeRe.ReplaceAllString(text, "<code>$1</code>")

	text = bulletRe.ReplaceAllString(text, "  ✓ ")

	return strings.ReplaceAll(text, "*", "")
}
