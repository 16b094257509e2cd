package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// PayloadString returns the raw trimmed callback payload.
func PayloadString(c tele.Context) string {
	return strings.TrimSpace(CallbackPayload(c))
}
