package helpers

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// DisplayName renders "First Last @username" for order cards, matching how
// the buyer appears to administrators. Users without a username get a
// placeholder so the card layout stays stable.
func DisplayName(u *tele.User) string {
	if u == nil {
		return "(unknown)"
	}
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	handle := "(без username)"
	if u.Username != "" {
		handle = "@" + u.Username
	}
	if full == "" {
		return handle
	}
	return full + " " + handle
}
