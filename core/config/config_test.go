package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalYAML = `
telegram:
  token: "123:abc"
shop:
  admin_ids: [900]
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q", cfg.Telegram.RunMode)
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Fatalf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.FilePath != "products.json" {
		t.Fatalf("file_path = %q", cfg.Storage.FilePath)
	}
}

func TestLoadRequiresAdmins(t *testing.T) {
	_, err := Load(writeConfig(t, "telegram:\n  token: \"123:abc\"\n"))
	if err == nil || !strings.Contains(err.Error(), "admin_ids") {
		t.Fatalf("expected admin_ids error, got %v", err)
	}
}

func TestLoadPostgresBackendValidation(t *testing.T) {
	incomplete := minimalYAML + `
storage:
  backend: postgres
`
	if _, err := Load(writeConfig(t, incomplete)); err == nil {
		t.Fatal("expected error for postgres backend without database settings")
	}

	complete := minimalYAML + `
storage:
  backend: postgres
  database:
    host: localhost
    name: shopbot
    user: shopbot
`
	cfg, err := Load(writeConfig(t, complete))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != StorageBackendPostgres {
		t.Fatalf("backend = %q", cfg.Storage.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	body := minimalYAML + "storage:\n  backend: redis\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestShopConfigIsAdmin(t *testing.T) {
	shop := ShopConfig{AdminIDs: []int64{900, 901}}
	if !shop.IsAdmin(900) || !shop.IsAdmin(901) {
		t.Fatal("configured admins must pass")
	}
	if shop.IsAdmin(777) {
		t.Fatal("stranger must not pass")
	}
}

func TestShopConfigDestChats(t *testing.T) {
	shop := ShopConfig{AdminIDs: []int64{900, 901}}
	if got := shop.DestChats(); len(got) != 2 {
		t.Fatalf("dest chats = %v", got)
	}

	shop.GroupChatID = -500
	got := shop.DestChats()
	if len(got) != 3 || got[2] != -500 {
		t.Fatalf("dest chats with group = %v", got)
	}
}

func TestShopConfigChannelAllowed(t *testing.T) {
	open := ShopConfig{}
	if !open.ChannelAllowed(-100123) {
		t.Fatal("empty allow-list must accept any channel")
	}

	restricted := ShopConfig{AllowedChannelIDs: []int64{-100123}}
	if !restricted.ChannelAllowed(-100123) {
		t.Fatal("listed channel must pass")
	}
	if restricted.ChannelAllowed(-100999) {
		t.Fatal("unlisted channel must not pass")
	}
}
