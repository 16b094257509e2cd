package orders

import (
	"context"
	"errors"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/shop/catalog"
)

type fakeCatalog struct {
	category catalog.Category
	product  catalog.Product
}

func (f fakeCatalog) FindByID(id string) (catalog.Category, catalog.Product, error) {
	if id != f.product.ID {
		return "", catalog.Product{}, catalog.ErrProductNotFound
	}
	return f.category, f.product, nil
}

type sentItem struct {
	chatID  int64
	text    string
	photoID string
	markup  *tele.ReplyMarkup
}

type fakeMessenger struct {
	photoErr map[int64]error
	textErr  map[int64]error
	sent     []sentItem
}

func (f *fakeMessenger) SendMessage(chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := f.textErr[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentItem{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeMessenger) SendPhoto(chatID int64, photoFileID, caption string, markup *tele.ReplyMarkup) error {
	if err := f.photoErr[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentItem{chatID: chatID, text: caption, photoID: photoFileID, markup: markup})
	return nil
}

func (f *fakeMessenger) sentTo(chatID int64) []sentItem {
	var out []sentItem
	for _, s := range f.sent {
		if s.chatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

var testProduct = catalog.Product{
	ID:          "-100123_42",
	Name:        "Logitech G102",
	Price:       "250 000",
	PhotoFileID: "AgAC-photo",
}

func testRouter(out *fakeMessenger, destinations ...int64) *Router {
	isAdmin := func(id int64) bool { return id == 900 }
	return NewRouter(fakeCatalog{category: catalog.CategoryMice, product: testProduct}, out, isAdmin, destinations)
}

func TestDispatchFansOut(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900, -500)

	buyer := Buyer{ID: 777, DisplayName: "Ivan Petrov @ivan"}
	res, err := r.Dispatch(context.Background(), buyer, "+998901234567", testProduct.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Ref == "" {
		t.Fatal("expected a non-empty order ref")
	}
	if res.Delivered() != 2 || res.Err() != nil {
		t.Fatalf("delivered = %d, err = %v", res.Delivered(), res.Err())
	}

	for _, chatID := range []int64{900, -500} {
		items := out.sentTo(chatID)
		if len(items) != 1 {
			t.Fatalf("chat %d got %d messages", chatID, len(items))
		}
		card := items[0]
		if card.photoID != testProduct.PhotoFileID {
			t.Fatalf("chat %d: expected photo card, got %+v", chatID, card)
		}
		for _, want := range []string{"НОВЫЙ ЗАКАЗ", testProduct.Name, testProduct.Price, "+998901234567", "Ivan Petrov @ivan", "777"} {
			if !strings.Contains(card.text, want) {
				t.Fatalf("chat %d card missing %q:\n%s", chatID, want, card.text)
			}
		}
		if card.markup == nil || len(card.markup.InlineKeyboard) != 1 || len(card.markup.InlineKeyboard[0]) != 2 {
			t.Fatalf("chat %d: unexpected decision keyboard: %+v", chatID, card.markup)
		}
		accept := card.markup.InlineKeyboard[0][0]
		reject := card.markup.InlineKeyboard[0][1]
		if accept.Unique != KeyAccept || reject.Unique != KeyReject {
			t.Fatalf("keyboard uniques = %q, %q", accept.Unique, reject.Unique)
		}
		if accept.Data != "777|-100123_42" || reject.Data != "777|-100123_42" {
			t.Fatalf("keyboard payloads = %q, %q", accept.Data, reject.Data)
		}
	}
}

func TestDispatchPhotoFallback(t *testing.T) {
	out := &fakeMessenger{photoErr: map[int64]error{900: errors.New("file id expired")}}
	r := testRouter(out, 900)

	res, err := r.Dispatch(context.Background(), Buyer{ID: 777}, "+998901234567", testProduct.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Delivered() != 1 || res.Err() != nil {
		t.Fatalf("fallback delivery lost: %d, %v", res.Delivered(), res.Err())
	}

	items := out.sentTo(900)
	if len(items) != 1 || items[0].photoID != "" {
		t.Fatalf("expected plain text fallback, got %+v", items)
	}
	if items[0].markup == nil {
		t.Fatal("fallback must keep the decision keyboard")
	}
}

func TestDispatchPartialFailure(t *testing.T) {
	boom := errors.New("blocked by user")
	out := &fakeMessenger{
		photoErr: map[int64]error{900: boom},
		textErr:  map[int64]error{900: boom},
	}
	r := testRouter(out, 900, -500)

	res, err := r.Dispatch(context.Background(), Buyer{ID: 777}, "+998901234567", testProduct.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Delivered() != 1 {
		t.Fatalf("delivered = %d, expected 1", res.Delivered())
	}
	if res.Err() == nil {
		t.Fatal("expected aggregated delivery error")
	}
	if len(out.sentTo(-500)) != 1 {
		t.Fatal("healthy destination must still receive the order")
	}
}

func TestDispatchMissingProduct(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900)

	if _, err := r.Dispatch(context.Background(), Buyer{ID: 777}, "+998901234567", "gone_1"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(out.sent) != 0 {
		t.Fatal("missing product must not be dispatched")
	}
}

func TestResolveDecisionRequiresAdmin(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900)

	if _, err := r.ResolveDecision(context.Background(), 777, true, 777, testProduct.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(out.sent) != 0 {
		t.Fatal("unauthorized decision must not notify anyone")
	}
}

func TestResolveDecisionAccept(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900)

	dec, err := r.ResolveDecision(context.Background(), 900, true, 777, testProduct.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !dec.Accepted || !dec.BuyerNotified {
		t.Fatalf("unexpected decision: %+v", dec)
	}
	for _, want := range []string{"✅ Принято.", testProduct.Name, "777"} {
		if !strings.Contains(dec.Summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, dec.Summary)
		}
	}

	buyerMsgs := out.sentTo(777)
	if len(buyerMsgs) != 1 || !strings.Contains(buyerMsgs[0].text, "принят") {
		t.Fatalf("buyer notification wrong: %+v", buyerMsgs)
	}
}

func TestResolveDecisionReject(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900)

	dec, err := r.ResolveDecision(context.Background(), 900, false, 777, testProduct.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dec.Accepted {
		t.Fatal("reject must not accept")
	}
	if !strings.Contains(dec.Summary, "❌ Отклонено.") {
		t.Fatalf("summary = %s", dec.Summary)
	}
	buyerMsgs := out.sentTo(777)
	if len(buyerMsgs) != 1 || !strings.Contains(buyerMsgs[0].text, "отклонён") {
		t.Fatalf("buyer notification wrong: %+v", buyerMsgs)
	}
}

func TestResolveDecisionBuyerUnreachable(t *testing.T) {
	out := &fakeMessenger{textErr: map[int64]error{777: errors.New("bot blocked")}}
	r := testRouter(out, 900)

	dec, err := r.ResolveDecision(context.Background(), 900, true, 777, testProduct.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dec.BuyerNotified {
		t.Fatal("notification failure must be recorded")
	}
	if dec.Summary == "" {
		t.Fatal("the decision itself must still resolve")
	}
}

func TestResolveDecisionMissingProduct(t *testing.T) {
	out := &fakeMessenger{}
	r := testRouter(out, 900)

	if _, err := r.ResolveDecision(context.Background(), 900, true, 777, "gone_1"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAnnounceProduct(t *testing.T) {
	boom := errors.New("kicked from group")
	out := &fakeMessenger{textErr: map[int64]error{-500: boom}}
	r := testRouter(out, 900, -500)

	r.AnnounceProduct(context.Background(), catalog.CategoryMice, testProduct)

	items := out.sentTo(900)
	if len(items) != 1 {
		t.Fatalf("admin got %d announcements", len(items))
	}
	for _, want := range []string{"Товар добавлен из канала", testProduct.Name, testProduct.Price} {
		if !strings.Contains(items[0].text, want) {
			t.Fatalf("announcement missing %q:\n%s", want, items[0].text)
		}
	}
}
