package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/shopbot/shop/catalog"
)

func TestFileStoreMissingDocument(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "products.json"))
	cat, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat) != 0 {
		t.Fatalf("expected empty catalog, got %d categories", len(cat))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store := NewFileStore(path)

	saved := catalog.Catalog{
		catalog.CategoryKeyboards: {
			{
				ID:              "-100123_10",
				Name:            "Keychron K2",
				Price:           "450 000 сум",
				PhotoFileID:     "AgAC-photo",
				SourceChannelID: -100123,
				CreatedAt:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			},
		},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items := loaded[catalog.CategoryKeyboards]
	if len(items) != 1 {
		t.Fatalf("expected 1 keyboard, got %d", len(items))
	}
	if items[0] != saved[catalog.CategoryKeyboards][0] {
		t.Fatalf("round trip changed the product: %+v", items[0])
	}

	// The document keeps the established field names.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	for _, key := range []string{`"id"`, `"name"`, `"price"`, `"photo_file_id"`, `"added_from_channel"`, `"created_at"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("document missing key %s:\n%s", key, raw)
		}
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatal("expected parse error for corrupt document")
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store := NewFileStore(path)

	if err := store.Save(catalog.Catalog{catalog.CategoryMice: {{ID: "a_1", Name: "old"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(catalog.Catalog{catalog.CategoryMice: {{ID: "a_2", Name: "new"}}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items := loaded[catalog.CategoryMice]
	if len(items) != 1 || items[0].ID != "a_2" {
		t.Fatalf("expected full replace, got %+v", items)
	}
}
