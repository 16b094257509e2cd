package orders

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/core/telegram/state"
)

// StateAwaitingPhone marks a buyer who picked a product and owes a phone
// number. The flow is Idle -> AwaitingPhone -> Idle; re-selection simply
// overwrites the previous pick.
const StateAwaitingPhone state.State = "awaiting_phone"

const tempSelectedProduct = "selected_product_id"

// Session lifecycle errors.
var (
	// ErrNoActiveOrder means input arrived outside an active phone-capture
	// flow; the caller must ignore it silently.
	ErrNoActiveOrder = errors.New("orders: no order in progress")
	// ErrInvalidPhone means the submitted phone did not pass the sanity
	// bound; the buyer should be prompted to retry.
	ErrInvalidPhone = errors.New("orders: phone input rejected")
)

// Sessions tracks the per-user order flow on top of the FSM manager.
// Sessions are not persisted; a restart drops in-flight selections and the
// buyer starts over.
type Sessions struct {
	mgr state.Manager
}

// NewSessions wraps an FSM manager with order-flow transitions.
func NewSessions(mgr state.Manager) *Sessions {
	return &Sessions{mgr: mgr}
}

// Manager exposes the underlying FSM manager for transport wiring.
func (s *Sessions) Manager() state.Manager {
	return s.mgr
}

// SelectProduct starts (or restarts) the phone-capture flow for a user.
func (s *Sessions) SelectProduct(ctx context.Context, userID int64, productID string) {
	s.mgr.SetTemp(userID, tempSelectedProduct, productID)
	s.mgr.SetState(userID, StateAwaitingPhone)
	logger.Debug(ctx, "service.orders", "session.select",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("product_id", productID),
	)
}

// AwaitingPhone reports whether the user owes a phone number.
func (s *Sessions) AwaitingPhone(userID int64) bool {
	return s.mgr.GetState(userID) == StateAwaitingPhone
}

// SelectedProduct returns the product the user picked, if any.
func (s *Sessions) SelectedProduct(userID int64) (string, bool) {
	return s.mgr.GetTempString(userID, tempSelectedProduct)
}

// Clear ends the user's flow. Called only after a successful dispatch
// hand-off so a dispatch failure cannot silently lose the session.
func (s *Sessions) Clear(userID int64) {
	s.mgr.ClearTemp(userID, tempSelectedProduct)
	s.mgr.ClearState(userID)
}

// SubmitPhone validates phone input for an active flow and returns the
// accepted phone together with the selected product id. The session itself
// is left untouched; the caller clears it after dispatch succeeds.
//
// Outside an active flow it returns ErrNoActiveOrder, which guards stray
// text from being taken for a phone number. Contact-shared values are
// trusted as-is (an empty share still fails); free text passes through the
// minimal length bound only.
func (s *Sessions) SubmitPhone(ctx context.Context, userID int64, raw string, viaContact bool) (phone, productID string, err error) {
	if !s.AwaitingPhone(userID) {
		return "", "", ErrNoActiveOrder
	}

	var ok bool
	if viaContact {
		phone, ok = tghelpers.ContactPhone(raw)
	} else {
		phone, ok = tghelpers.NormalizePhone(raw)
	}
	if !ok {
		logger.Debug(ctx, "service.orders", "phone.rejected",
			slog.String("status", "skip"),
			slog.Int64("user_id", userID),
			slog.Int("phone_len", len(strings.TrimSpace(raw))),
			slog.Bool("via_contact", viaContact),
		)
		return "", "", ErrInvalidPhone
	}

	productID, _ = s.SelectedProduct(userID)
	return phone, productID, nil
}
