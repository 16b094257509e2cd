package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	"log/slog"
)

// Catalog lookup and mutation errors. Skip-class errors (not a product,
// missing photo, duplicate) are expected channel noise and are never
// surfaced to users.
var (
	ErrNotAProduct      = errors.New("catalog: post is not a product")
	ErrMissingPhoto     = errors.New("catalog: product post has no photo")
	ErrDuplicateProduct = errors.New("catalog: product already ingested")
	ErrProductNotFound  = errors.New("catalog: product not found")
)

// listPageCap bounds category listings so selection menus stay tractable.
// Truncation is silent; pagination belongs to the surrounding UI.
const listPageCap = 30

// Store persists the whole catalog document. Load returns the document as
// last saved; Save replaces it entirely.
type Store interface {
	Load() (Catalog, error)
	Save(Catalog) error
}

// ChannelPost is the inbound channel-post event shape consumed by Ingest.
type ChannelPost struct {
	ChannelID   int64
	PostID      int
	Text        string
	HasPhoto    bool
	PhotoFileID string
}

// Service owns the catalog: it ingests channel posts, answers lookups, and
// keeps the in-memory mirror in sync with the persistent store. All
// mutations are serialized through a single critical section; event rates
// are low enough that finer locking buys nothing.
type Service struct {
	mu      sync.Mutex
	store   Store
	catalog Catalog
	now     func() time.Time
}

// NewService loads the persisted catalog and returns a ready service.
func NewService(store Store) (*Service, error) {
	cat, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	if cat == nil {
		cat = make(Catalog)
	}
	return &Service{store: store, catalog: cat, now: time.Now}, nil
}

// Ingest turns a channel post into a catalog entry.
//
// Posts without a photo, posts that do not parse as products, and posts
// already ingested (same channel/post id) are skipped. A successful ingest
// is durable before it returns: if the store rejects the write, the
// in-memory insert is rolled back and the error propagates.
func (s *Service) Ingest(ctx context.Context, post ChannelPost) (Product, error) {
	if !post.HasPhoto {
		logger.Debug(ctx, "service.catalog", "ingest.skip",
			slog.String("status", "skip"),
			slog.String("cause", "no_photo"),
		)
		return Product{}, ErrMissingPhoto
	}

	parsed, ok := ParsePost(post.Text)
	if !ok {
		logger.Debug(ctx, "service.catalog", "ingest.skip",
			slog.String("status", "skip"),
			slog.String("cause", "not_a_product"),
		)
		return Product{}, ErrNotAProduct
	}

	id := ProductID(post.ChannelID, post.PostID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.findLocked(id); err == nil {
		logger.Debug(ctx, "service.catalog", "ingest.skip",
			slog.String("status", "skip"),
			slog.String("cause", "duplicate"),
			slog.String("product_id", id),
		)
		return Product{}, ErrDuplicateProduct
	}

	product := Product{
		ID:              id,
		Name:            parsed.Name,
		Price:           parsed.Price,
		PhotoFileID:     post.PhotoFileID,
		SourceChannelID: post.ChannelID,
		CreatedAt:       s.now().UTC(),
	}

	prev := s.catalog[parsed.Category]
	s.catalog[parsed.Category] = append([]Product{product}, prev...)

	if err := s.store.Save(s.catalog); err != nil {
		// Roll back: the caller must not see the product as catalogued
		// when the durable write did not complete.
		s.catalog[parsed.Category] = prev
		logger.Error(ctx, "service.catalog", "ingest.persist_failed",
			slog.String("status", "fail"),
			slog.String("category", string(parsed.Category)),
			slog.String("product_id", id),
			slog.String("err", err.Error()),
		)
		return Product{}, fmt.Errorf("catalog: persist: %w", err)
	}

	logger.Info(ctx, "service.catalog", "ingest.ok",
		slog.String("status", "ok"),
		slog.String("category", string(parsed.Category)),
		slog.String("product_id", id),
		slog.String("product_name", logger.SanitizeLimit(product.Name, 64)),
	)
	return product, nil
}

// FindByID resolves a product anywhere in the catalog. A linear scan
// across categories; catalog sizes stay in the tens to low hundreds.
func (s *Service) FindByID(id string) (Category, Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Service) findLocked(id string) (Category, Product, error) {
	for cat, items := range s.catalog {
		for _, p := range items {
			if p.ID == id {
				return cat, p, nil
			}
		}
	}
	return "", Product{}, ErrProductNotFound
}

// ListCategory returns up to listPageCap products for a category, newest
// first. Every category of the fixed set is listable even when empty.
func (s *Service) ListCategory(cat Category) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.catalog[cat]
	if len(items) > listPageCap {
		items = items[:listPageCap]
	}
	out := make([]Product, len(items))
	copy(out, items)
	return out
}
