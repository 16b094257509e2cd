// Package keyboard builds the reply and inline markups used by the
// storefront menus.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes one inline button: label, routing key, payload.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// InlineButtons stacks the buttons one per row. Menu entries carry full
// product names, so a single column keeps labels readable.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	rows := make([][]InlineBtn, len(buttons))
	for i, b := range buttons {
		rows[i] = []InlineBtn{b}
	}
	return InlineButtonsRows(rows...)
}

// InlineButtonsRows builds an inline keyboard with explicit row layout.
// The accept/reject pair on order cards sits on one row.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// ContactRequest is a one-time reply keyboard with a single button that
// shares the user's phone number as a structured contact.
func ContactRequest(label string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Contact(label)))
	return markup
}

// RemoveKeyboard hides any active reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
