// Package format contains Telegram markdown helpers for text that embeds
// user-provided fragments: product names and buyer names come straight
// from channel posts and profiles and may carry markup characters.
package format

import "strings"

const mdV1Specials = "_*`["

// Escape neutralizes MarkdownV1 control characters in a fragment so it can
// be embedded in a formatted message without breaking the surrounding markup.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 && strings.ContainsRune(mdV1Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
