package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	catalog Catalog
	saves   int
	saveErr error
}

func (f *fakeStore) Load() (Catalog, error) { return f.catalog, nil }

func (f *fakeStore) Save(cat Catalog) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.catalog = cat
	return nil
}

func productPost(postID int, text string) ChannelPost {
	return ChannelPost{
		ChannelID:   -100123,
		PostID:      postID,
		Text:        text,
		HasPhoto:    true,
		PhotoFileID: fmt.Sprintf("photo-%d", postID),
	}
}

func TestIngest(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	product, err := svc.Ingest(context.Background(), productPost(42, "#мышь\nLogitech G102\nЦена: 250 000"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if product.ID != "-100123_42" {
		t.Fatalf("id = %q", product.ID)
	}
	if product.Name != "Logitech G102" || product.Price != "250 000" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.PhotoFileID != "photo-42" || product.SourceChannelID != -100123 {
		t.Fatalf("unexpected product origin: %+v", product)
	}
	if !product.CreatedAt.Equal(at) {
		t.Fatalf("created_at = %v", product.CreatedAt)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, expected 1", store.saves)
	}

	cat, found, err := svc.FindByID(product.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if cat != CategoryMice || found.ID != product.ID {
		t.Fatalf("find returned %s %+v", cat, found)
	}
}

func TestIngestNewestFirst(t *testing.T) {
	svc, err := NewService(&fakeStore{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	for i := 1; i <= 3; i++ {
		post := productPost(i, fmt.Sprintf("#пк\nСборка %d\nЦена: %d", i, i*100))
		if _, err := svc.Ingest(context.Background(), post); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	items := svc.ListCategory(CategoryPC)
	if len(items) != 3 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Name != "Сборка 3" || items[2].Name != "Сборка 1" {
		t.Fatalf("unexpected order: %s .. %s", items[0].Name, items[2].Name)
	}
}

func TestIngestSkips(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	noPhoto := productPost(1, "#клава\nKeychron\nЦена: 100")
	noPhoto.HasPhoto = false
	if _, err := svc.Ingest(context.Background(), noPhoto); !errors.Is(err, ErrMissingPhoto) {
		t.Fatalf("expected ErrMissingPhoto, got %v", err)
	}

	if _, err := svc.Ingest(context.Background(), productPost(2, "просто болтовня в канале")); !errors.Is(err, ErrNotAProduct) {
		t.Fatalf("expected ErrNotAProduct, got %v", err)
	}

	post := productPost(3, "#клава\nKeychron\nЦена: 100")
	if _, err := svc.Ingest(context.Background(), post); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	// Re-delivery of the same channel post must not duplicate the entry.
	if _, err := svc.Ingest(context.Background(), post); !errors.Is(err, ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
	if len(svc.ListCategory(CategoryKeyboards)) != 1 {
		t.Fatal("duplicate changed the catalog")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, expected 1", store.saves)
	}
}

func TestIngestRollsBackOnStoreError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Ingest(context.Background(), productPost(7, "#монитор\nDell U2723\nЦена: 4 000 000"))
	if err == nil || !errors.Is(err, store.saveErr) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if len(svc.ListCategory(CategoryMonitors)) != 0 {
		t.Fatal("failed ingest left the product in memory")
	}
	if _, _, err := svc.FindByID("-100123_7"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// The same post must succeed once the store recovers.
	store.saveErr = nil
	if _, err := svc.Ingest(context.Background(), productPost(7, "#монитор\nDell U2723\nЦена: 4 000 000")); err != nil {
		t.Fatalf("retry ingest: %v", err)
	}
}

func TestListCategoryCapAndIsolation(t *testing.T) {
	seeded := make(Catalog)
	for i := 0; i < listPageCap+5; i++ {
		seeded[CategoryMice] = append(seeded[CategoryMice], Product{ID: fmt.Sprintf("c_%d", i), Name: fmt.Sprintf("m%d", i)})
	}
	svc, err := NewService(&fakeStore{catalog: seeded})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	items := svc.ListCategory(CategoryMice)
	if len(items) != listPageCap {
		t.Fatalf("len = %d, expected %d", len(items), listPageCap)
	}

	items[0].Name = "mutated"
	if again := svc.ListCategory(CategoryMice); again[0].Name == "mutated" {
		t.Fatal("listing aliases internal state")
	}

	if empty := svc.ListCategory(CategoryPC); len(empty) != 0 {
		t.Fatalf("empty category listed %d items", len(empty))
	}
}

func TestFindByIDMissing(t *testing.T) {
	svc, err := NewService(&fakeStore{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, _, err := svc.FindByID("nope"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
