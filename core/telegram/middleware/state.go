package middleware

import (
	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// StateGetter is the minimal interface required from an FSM manager.
type StateGetter interface {
	GetState(userID int64) string
}

// State gates a handler on the user being in expectedState. Updates from
// users in any other state are silently dropped, so a stray contact
// share outside the order flow never reaches the phone handler.
func State(mgr StateGetter, expectedState string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID
			current := mgr.GetState(userID)
			ctx := tghelpers.BuildContext(c)

			event := "fsm.skip"
			if current == expectedState {
				event = "fsm.match"
			}
			logger.TG.LogAttrs(ctx, slog.LevelDebug, event,
				slog.Int64("user_id", userID),
				slog.String("state", current),
				slog.String("expected", expectedState),
				slog.String("rid", logger.RIDFrom(ctx)),
			)

			if current != expectedState {
				return nil
			}
			return next(c)
		}
	}
}
