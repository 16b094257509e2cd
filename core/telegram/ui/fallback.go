// Package ui holds shared fallback handlers for updates that match no
// registered command or callback.
package ui

import tele "gopkg.in/telebot.v4"

// UnknownCallback answers stale or unknown inline buttons with a short
// toast so old keyboards never appear dead.
func UnknownCallback(text string) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
}

// IgnoreText swallows free text that no flow is waiting for. Buyers often
// reply to the bot conversationally; answering every message is noise.
func IgnoreText() tele.HandlerFunc {
	return func(c tele.Context) error { return nil }
}
