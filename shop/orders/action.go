package orders

import (
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/shop/catalog"
)

// Callback token keys. Together with the pipe-delimited payload they form
// the wire contract between the inline keyboards and this package.
const (
	KeyOrder    = "order"
	KeyRefresh  = "refresh"
	KeyBackMain = "back_main"
	KeyCategory = "cat"
	KeyPick     = "pick"
	KeyAccept   = "adm_ok"
	KeyReject   = "adm_no"
)

// Action is the typed form of a callback token. Tokens are parsed once at
// the boundary; handlers switch on the concrete type instead of re-checking
// string prefixes.
type Action interface{ isAction() }

// OpenCategories asks for the category menu.
type OpenCategories struct{}

// RefreshMenu re-renders the main menu.
type RefreshMenu struct{}

// BackToMain returns to the main menu.
type BackToMain struct{}

// ShowCategory lists one category's products.
type ShowCategory struct{ Category catalog.Category }

// PickProduct starts an order for the given product.
type PickProduct struct{ ProductID string }

// AdminDecision resolves a pending order.
type AdminDecision struct {
	Accept    bool
	BuyerID   int64
	ProductID string
}

func (OpenCategories) isAction() {}
func (RefreshMenu) isAction()    {}
func (BackToMain) isAction()     {}
func (ShowCategory) isAction()   {}
func (PickProduct) isAction()    {}
func (AdminDecision) isAction()  {}

// ParseAction turns a callback (key, payload) pair into a typed Action.
// Unknown keys and malformed payloads report ok=false; they fall through
// as unrecognized rather than crashing the router.
func ParseAction(key, payload string) (Action, bool) {
	payload = strings.TrimSpace(payload)
	switch key {
	case KeyOrder:
		return OpenCategories{}, true
	case KeyRefresh:
		return RefreshMenu{}, true
	case KeyBackMain:
		return BackToMain{}, true
	case KeyCategory:
		cat := catalog.Category(payload)
		if !cat.Valid() {
			return nil, false
		}
		return ShowCategory{Category: cat}, true
	case KeyPick:
		if payload == "" {
			return nil, false
		}
		return PickProduct{ProductID: payload}, true
	case KeyAccept, KeyReject:
		parts := strings.SplitN(payload, "|", 2)
		if len(parts) != 2 {
			return nil, false
		}
		buyerID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, false
		}
		productID := strings.TrimSpace(parts[1])
		if productID == "" {
			return nil, false
		}
		return AdminDecision{
			Accept:    key == KeyAccept,
			BuyerID:   buyerID,
			ProductID: productID,
		}, true
	}
	return nil, false
}
