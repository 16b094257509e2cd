package app

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/telegram/format"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/shop/catalog"
	"github.com/m3rciful/shopbot/shop/orders"
)

// Buyer-facing texts. The storefront speaks Russian.
const (
	textGreeting      = "👋 Привет!\n\nНажми «Заказать», чтобы выбрать товар."
	textMainMenu      = "🏠 Главное меню:"
	textMenuRefreshed = "✅ Меню обновлено."
	textPickCategory  = "🛍 Выбери категорию:"
	textAwaitingPhone = "✅ Ок! Жду номер телефона…"
	textSharePhone    = "👇 Нажми кнопку, чтобы отправить номер:"
	textPhoneButton   = "📱 Отправить номер"
	textThanks        = "✅ Спасибо!"
	textOrderSent     = "✅ Заказ отправлен продавцу!\nЖди подтверждения 😉"
	textBadPhone      = "❗ Похоже это не номер. Напиши номер типа +998901234567"
	textNoProduct     = "❌ Товар не найден."
	textOrderLost     = "❌ Ошибка: товар не найден."
	textAdminsOnly    = "⛔ Только админ может нажимать"
	textStaleButton   = "Кнопка устарела, открой меню заново"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🛒 Заказать", Unique: orders.KeyOrder},
		{Text: "🆕 Обновить меню", Unique: orders.KeyRefresh},
	})
}

func categoriesMenu() *tele.ReplyMarkup {
	cats := catalog.Categories()
	buttons := make([]keyboard.InlineBtn, 0, len(cats)+1)
	for _, cat := range cats {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   cat.Title(),
			Unique: orders.KeyCategory,
			Data:   string(cat),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: "⬅️ Назад", Unique: orders.KeyBackMain})
	return keyboard.InlineButtons(buttons)
}

// productsMenu lists a category's products one per row, newest first.
// An empty category renders only the back button.
func productsMenu(products []catalog.Product) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(products)+1)
	for _, p := range products {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%s — %s", p.Name, p.Price),
			Unique: orders.KeyPick,
			Data:   p.ID,
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: "⬅️ Назад", Unique: orders.KeyOrder})
	return keyboard.InlineButtons(buttons)
}

func categoryScreen(cat catalog.Category, empty bool) string {
	if empty {
		return fmt.Sprintf("%s\n\n❌ Пока пусто. Добавь товары в канал.", cat.Title())
	}
	return fmt.Sprintf("%s\n\n✅ Выбери товар:", cat.Title())
}

func productCard(cat catalog.Category, p catalog.Product) string {
	return fmt.Sprintf(
		"🧾 *Вы выбрали товар*\n"+
			"• Категория: %s\n"+
			"• Товар: *%s*\n"+
			"• Цена: *%s*\n\n"+
			"📱 Отправь номер кнопкой ниже или напиши номер сообщением (пример: +998901234567).",
		cat.Title(), format.Escape(p.Name), format.Escape(p.Price),
	)
}
