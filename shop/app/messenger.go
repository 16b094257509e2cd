package app

import (
	"errors"
	"sync"

	tele "gopkg.in/telebot.v4"
)

var errBotNotBound = errors.New("app: bot api not bound yet")

// teleMessenger adapts the bot API to the order router's Messenger. The bot
// instance only exists once the runtime is up, so handlers bind it lazily
// on their first invocation; the first bind wins.
type teleMessenger struct {
	mu  sync.Mutex
	api tele.API
}

func (m *teleMessenger) bind(api tele.API) {
	if api == nil {
		return
	}
	m.mu.Lock()
	if m.api == nil {
		m.api = api
	}
	m.mu.Unlock()
}

func (m *teleMessenger) load() tele.API {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.api
}

func (m *teleMessenger) SendMessage(chatID int64, text string, markup *tele.ReplyMarkup) error {
	api := m.load()
	if api == nil {
		return errBotNotBound
	}
	opts := []interface{}{tele.ModeMarkdown}
	if markup != nil {
		opts = append(opts, markup)
	}
	_, err := api.Send(&tele.Chat{ID: chatID}, text, opts...)
	return err
}

func (m *teleMessenger) SendPhoto(chatID int64, photoFileID, caption string, markup *tele.ReplyMarkup) error {
	api := m.load()
	if api == nil {
		return errBotNotBound
	}
	photo := &tele.Photo{
		File:    tele.File{FileID: photoFileID},
		Caption: caption,
	}
	opts := []interface{}{tele.ModeMarkdown}
	if markup != nil {
		opts = append(opts, markup)
	}
	_, err := api.Send(&tele.Chat{ID: chatID}, photo, opts...)
	return err
}
