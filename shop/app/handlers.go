package app

import (
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/shop/catalog"
	"github.com/m3rciful/shopbot/shop/orders"
)

func (a *App) onStart(c tele.Context) error {
	a.out.bind(c.Bot())
	return tghelpers.SendMD(c, textGreeting, mainMenu())
}

func (a *App) onMyID(c tele.Context) error {
	a.out.bind(c.Bot())
	return tghelpers.SendText(c, fmt.Sprintf("🆔 Твой chat_id: %d", c.Chat().ID))
}

// actionHandler adapts one callback key into the typed action dispatch.
// The payload is validated once here; handlers never see raw callback data.
func (a *App) actionHandler(key string) tele.HandlerFunc {
	return func(c tele.Context) error {
		a.out.bind(c.Bot())
		act, ok := orders.ParseAction(key, callbacks.PayloadString(c))
		if !ok {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		}
		return a.handleAction(c, act)
	}
}

func (a *App) handleAction(c tele.Context, act orders.Action) error {
	switch act := act.(type) {
	case orders.OpenCategories:
		return tghelpers.EditMD(c, textPickCategory, categoriesMenu())
	case orders.RefreshMenu:
		return tghelpers.EditMD(c, textMenuRefreshed, mainMenu())
	case orders.BackToMain:
		return tghelpers.EditMD(c, textMainMenu, mainMenu())
	case orders.ShowCategory:
		items := a.catalog.ListCategory(act.Category)
		return tghelpers.EditMD(c, categoryScreen(act.Category, len(items) == 0), productsMenu(items))
	case orders.PickProduct:
		return a.pickProduct(c, act.ProductID)
	case orders.AdminDecision:
		return a.resolveOrder(c, act)
	}
	return nil
}

// pickProduct starts the order flow: remember the pick, show the product
// card with its photo, and ask for a phone number.
func (a *App) pickProduct(c tele.Context, productID string) error {
	cat, product, err := a.catalog.FindByID(productID)
	if err != nil {
		return tghelpers.EditMD(c, textNoProduct, mainMenu())
	}

	ctx := tghelpers.BuildContext(c)
	a.sessions.SelectProduct(ctx, c.Sender().ID, product.ID)

	if err := tghelpers.SendPhotoMD(c, product.PhotoFileID, productCard(cat, product)); err != nil {
		return err
	}
	if err := tghelpers.SendText(c, textSharePhone, &tele.SendOptions{ReplyMarkup: keyboard.ContactRequest(textPhoneButton)}); err != nil {
		return err
	}
	return tghelpers.EditMD(c, textAwaitingPhone)
}

func (a *App) resolveOrder(c tele.Context, act orders.AdminDecision) error {
	ctx := tghelpers.BuildContext(c)
	dec, err := a.router.ResolveDecision(ctx, c.Sender().ID, act.Accept, act.BuyerID, act.ProductID)
	switch {
	case errors.Is(err, orders.ErrUnauthorized):
		return c.Respond(&tele.CallbackResponse{Text: textAdminsOnly, ShowAlert: true})
	case errors.Is(err, catalog.ErrProductNotFound):
		return tghelpers.EditMD(c, textNoProduct)
	case err != nil:
		return err
	}
	return tghelpers.EditMD(c, dec.Summary)
}

// onPhoneText handles free-text input while the user owes a phone number.
// It runs via the FSM manager, so it only ever sees the awaiting state.
func (a *App) onPhoneText(c tele.Context) error {
	a.out.bind(c.Bot())
	return a.submitPhone(c, c.Text(), false)
}

// onContact handles a shared contact; the state middleware gates it.
func (a *App) onContact(c tele.Context) error {
	a.out.bind(c.Bot())
	contact := c.Message().Contact
	if contact == nil {
		return nil
	}
	return a.submitPhone(c, contact.PhoneNumber, true)
}

func (a *App) submitPhone(c tele.Context, raw string, viaContact bool) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	phone, productID, err := a.sessions.SubmitPhone(ctx, userID, raw, viaContact)
	switch {
	case errors.Is(err, orders.ErrNoActiveOrder):
		return nil
	case errors.Is(err, orders.ErrInvalidPhone):
		return tghelpers.SendText(c, textBadPhone)
	case err != nil:
		return err
	}

	// Drop the contact keyboard before anything else.
	if err := tghelpers.SendText(c, textThanks, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()}); err != nil {
		return err
	}

	buyer := orders.Buyer{ID: userID, DisplayName: tghelpers.DisplayName(c.Sender())}
	if _, err := a.router.Dispatch(ctx, buyer, phone, productID); err != nil {
		a.sessions.Clear(userID)
		return tghelpers.SendText(c, textOrderLost)
	}

	a.sessions.Clear(userID)
	return tghelpers.SendMD(c, textOrderSent, mainMenu())
}

// onChannelPost ingests product posts from trusted channels. Posts that do
// not follow the product template are ignored without a reply; a channel is
// never answered.
func (a *App) onChannelPost(c tele.Context) error {
	a.out.bind(c.Bot())
	msg := c.Message()
	if msg == nil {
		return nil
	}

	channelID := c.Chat().ID
	ctx := tghelpers.BuildContext(c)
	if !a.cfg.Shop.ChannelAllowed(channelID) {
		logger.Debug(ctx, "service.catalog", "channel.ignored",
			slog.String("status", "skip"),
			slog.Int64("chat_id", channelID),
		)
		return nil
	}

	text := msg.Caption
	if text == "" {
		text = msg.Text
	}
	post := catalog.ChannelPost{
		ChannelID: channelID,
		PostID:    msg.ID,
		Text:      text,
	}
	if msg.Photo != nil {
		post.HasPhoto = true
		post.PhotoFileID = msg.Photo.FileID
	}

	product, err := a.catalog.Ingest(ctx, post)
	if err != nil {
		// Skips are already logged with their cause; a persistence
		// failure must not bounce an error back at the channel.
		return nil
	}

	if cat, _, err := a.catalog.FindByID(product.ID); err == nil {
		a.router.AnnounceProduct(ctx, cat, product)
	}
	return nil
}
