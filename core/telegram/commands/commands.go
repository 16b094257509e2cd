// Package commands defines the command descriptor used by the registry.
package commands

import tele "gopkg.in/telebot.v4"

// Command couples a slash-command handler with its registry metadata.
// Hidden commands work but stay out of the Telegram command list;
// AdminOnly commands additionally pass the admin gate middleware.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
