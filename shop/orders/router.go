package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/telegram/format"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/shop/catalog"
)

// ErrUnauthorized means a non-admin tried to resolve an order.
var ErrUnauthorized = errors.New("orders: decision from non-admin")

// Messenger delivers outbound messages to arbitrary chats. The transport
// adapter implements it over the bot API; tests stub it out.
type Messenger interface {
	SendMessage(chatID int64, text string, markup *tele.ReplyMarkup) error
	SendPhoto(chatID int64, photoFileID, caption string, markup *tele.ReplyMarkup) error
}

// Catalog is the product lookup the router needs. *catalog.Service satisfies it.
type Catalog interface {
	FindByID(id string) (catalog.Category, catalog.Product, error)
}

// Buyer identifies the ordering user on the admin card.
type Buyer struct {
	ID          int64
	DisplayName string
}

// Delivery records one fan-out attempt.
type Delivery struct {
	ChatID int64
	Err    error
}

// DispatchResult summarizes a best-effort fan-out of one order.
type DispatchResult struct {
	// Ref is a short opaque reference used for log correlation only;
	// it never reaches the buyer or the admins.
	Ref        string
	Deliveries []Delivery
}

// Delivered reports how many destinations accepted the order card.
func (r DispatchResult) Delivered() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Err aggregates per-destination failures. Nil when every delivery landed.
func (r DispatchResult) Err() error {
	var merr *multierror.Error
	for _, d := range r.Deliveries {
		if d.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("chat %d: %w", d.ChatID, d.Err))
		}
	}
	return merr.ErrorOrNil()
}

// Decision is the outcome of an admin accepting or rejecting an order.
type Decision struct {
	Accepted bool
	// Summary replaces the order card on the admin side.
	Summary string
	// BuyerNotified is false when the confirmation could not be
	// delivered to the buyer; the decision still stands.
	BuyerNotified bool
}

// Router moves completed orders to the admin destinations and routes
// admin decisions back to buyers.
type Router struct {
	catalog      Catalog
	out          Messenger
	isAdmin      func(userID int64) bool
	destinations []int64
}

// NewRouter wires the order router. destinations is the full fan-out set,
// admin user chats plus the optional group chat.
func NewRouter(cat Catalog, out Messenger, isAdmin func(int64) bool, destinations []int64) *Router {
	return &Router{
		catalog:      cat,
		out:          out,
		isAdmin:      isAdmin,
		destinations: destinations,
	}
}

// Dispatch fans the completed order out to every destination. Delivery is
// best effort: one failing chat never blocks the others, and a photo send
// failure falls back to a plain text card for that chat. The returned
// result reports the per-destination outcome; the error is non-nil only
// when the product cannot be resolved at all.
func (r *Router) Dispatch(ctx context.Context, buyer Buyer, phone, productID string) (DispatchResult, error) {
	cat, product, err := r.catalog.FindByID(productID)
	if err != nil {
		logger.Warn(ctx, "service.orders", "dispatch.failed",
			slog.String("status", "fail"),
			slog.String("cause", "product_missing"),
			slog.String("product_id", productID),
			slog.Int64("buyer_id", buyer.ID),
		)
		return DispatchResult{}, err
	}

	result := DispatchResult{Ref: shortRef()}
	card := adminOrderCard(cat, product, phone, buyer)
	markup := decisionKeyboard(buyer.ID, product.ID)

	for _, chatID := range r.destinations {
		err := r.out.SendPhoto(chatID, product.PhotoFileID, card, markup)
		if err != nil {
			err = r.out.SendMessage(chatID, card, markup)
		}
		result.Deliveries = append(result.Deliveries, Delivery{ChatID: chatID, Err: err})
	}

	attrs := []slog.Attr{
		slog.String("order_ref", result.Ref),
		slog.String("product_id", product.ID),
		slog.Int64("buyer_id", buyer.ID),
		slog.Int("phone_len", len(phone)),
		slog.Int("destinations", len(r.destinations)),
		slog.Int("delivered", result.Delivered()),
	}
	if derr := result.Err(); derr != nil {
		logger.Warn(ctx, "service.orders", "order.dispatched",
			append([]slog.Attr{slog.String("status", "partial"), slog.String("err", derr.Error())}, attrs...)...)
	} else {
		logger.Info(ctx, "service.orders", "order.dispatched",
			append([]slog.Attr{slog.String("status", "ok")}, attrs...)...)
	}
	return result, nil
}

// ResolveDecision applies an admin accept or reject. The buyer is notified
// best effort; a failed notification is recorded on the Decision but does
// not fail the call. Non-admin actors get ErrUnauthorized, and a product
// that vanished since dispatch yields catalog.ErrProductNotFound.
func (r *Router) ResolveDecision(ctx context.Context, actorID int64, accept bool, buyerID int64, productID string) (Decision, error) {
	if !r.isAdmin(actorID) {
		logger.Warn(ctx, "service.orders", "decision.rejected",
			slog.String("status", "skip"),
			slog.String("cause", "unauthorized"),
			slog.Int64("user_id", actorID),
			slog.String("product_id", productID),
		)
		return Decision{}, ErrUnauthorized
	}

	_, product, err := r.catalog.FindByID(productID)
	if err != nil {
		return Decision{}, err
	}

	dec := Decision{Accepted: accept}
	var buyerText string
	if accept {
		buyerText = buyerAcceptedText(product)
		dec.Summary = fmt.Sprintf("✅ Принято.\n%s — %s\nuser_id: %d", format.Escape(product.Name), format.Escape(product.Price), buyerID)
	} else {
		buyerText = buyerRejectedText(product)
		dec.Summary = fmt.Sprintf("❌ Отклонено.\n%s — %s\nuser_id: %d", format.Escape(product.Name), format.Escape(product.Price), buyerID)
	}

	if err := r.out.SendMessage(buyerID, buyerText, nil); err != nil {
		logger.Warn(ctx, "service.orders", "decision.notify_failed",
			slog.Int64("buyer_id", buyerID),
			slog.String("product_id", productID),
			slog.String("err", err.Error()),
		)
	} else {
		dec.BuyerNotified = true
	}

	logger.Info(ctx, "service.orders", "order.resolved",
		slog.String("status", "ok"),
		slog.Bool("accepted", accept),
		slog.Int64("user_id", actorID),
		slog.Int64("buyer_id", buyerID),
		slog.String("product_id", productID),
	)
	return dec, nil
}

// AnnounceProduct tells every destination that a new product landed from a
// channel. Failures are swallowed; the announcement is a courtesy.
func (r *Router) AnnounceProduct(ctx context.Context, cat catalog.Category, product catalog.Product) {
	text := fmt.Sprintf("✅ Товар добавлен из канала: %s\n%s — %s", cat.Title(), format.Escape(product.Name), format.Escape(product.Price))
	for _, chatID := range r.destinations {
		if err := r.out.SendMessage(chatID, text, nil); err != nil {
			logger.Debug(ctx, "service.orders", "announce.failed",
				slog.Int64("chat_id", chatID),
				slog.String("product_id", product.ID),
				slog.String("err", err.Error()),
			)
		}
	}
}

func shortRef() string {
	id := uuid.NewString()
	return strings.SplitN(id, "-", 2)[0]
}

func adminOrderCard(cat catalog.Category, p catalog.Product, phone string, buyer Buyer) string {
	return fmt.Sprintf(
		"🧾 *НОВЫЙ ЗАКАЗ*\n"+
			"• Категория: %s\n"+
			"• Товар: *%s*\n"+
			"• Цена: *%s*\n"+
			"• Телефон: `%s`\n"+
			"• От: %s\n"+
			"• user_id: `%d`",
		cat.Title(), format.Escape(p.Name), format.Escape(p.Price), phone, format.Escape(buyer.DisplayName), buyer.ID,
	)
}

func decisionKeyboard(buyerID int64, productID string) *tele.ReplyMarkup {
	payload := fmt.Sprintf("%d|%s", buyerID, productID)
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Принять", Unique: KeyAccept, Data: payload},
		{Text: "❌ Отклонить", Unique: KeyReject, Data: payload},
	})
}

func buyerAcceptedText(p catalog.Product) string {
	return fmt.Sprintf("✅ Ваш заказ *принят*!\n\nТовар: *%s* — %s\nСкоро свяжемся 📞", format.Escape(p.Name), format.Escape(p.Price))
}

func buyerRejectedText(p catalog.Product) string {
	return fmt.Sprintf("❌ Ваш заказ *отклонён*.\n\nТовар: *%s* — %s\nПопробуйте позже 🙏", format.Escape(p.Name), format.Escape(p.Price))
}
