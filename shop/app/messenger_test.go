package app

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Token: "123:test", Offline: true})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return b
}

func TestMessengerUnboundRefusesToSend(t *testing.T) {
	var m teleMessenger
	if err := m.SendMessage(900, "hi", nil); !errors.Is(err, errBotNotBound) {
		t.Fatalf("SendMessage before bind = %v", err)
	}
	if err := m.SendPhoto(900, "file-id", "cap", nil); !errors.Is(err, errBotNotBound) {
		t.Fatalf("SendPhoto before bind = %v", err)
	}
}

func TestMessengerBindFirstWins(t *testing.T) {
	var m teleMessenger

	m.bind(nil)
	if m.load() != nil {
		t.Fatal("nil bind must leave messenger unbound")
	}

	// Handlers hand over the context's API interface, not the concrete bot.
	var first tele.API = offlineBot(t)
	m.bind(first)
	m.bind(offlineBot(t))
	if m.load() != first {
		t.Fatal("first bound api must win")
	}
}
