package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/shop/catalog"
)

// PGStore persists the catalog in a PostgreSQL table while keeping the same
// load-all / replace-all contract as the file backend. The row ordinal
// preserves the newest-first ordering within each category.
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore returns a store backed by the given database handle.
func NewPGStore(db *sqlx.DB) *PGStore {
	return &PGStore{db: db}
}

type productRow struct {
	Category string `db:"category"`
	Ord      int    `db:"ord"`
	catalog.Product
}

// Load reads every product ordered the way it was saved.
func (s *PGStore) Load() (catalog.Catalog, error) {
	var rows []productRow
	err := s.db.Select(&rows, `
		SELECT category, ord, id, name, price, photo_file_id, added_from_channel, created_at
		FROM products
		ORDER BY category, ord`)
	if err != nil {
		return nil, fmt.Errorf("storage: select products: %w", err)
	}

	cat := make(catalog.Catalog)
	for _, r := range rows {
		key := catalog.Category(r.Category)
		cat[key] = append(cat[key], r.Product)
	}
	return cat, nil
}

// Save replaces the whole table inside one transaction, mirroring the
// full-document rewrite of the file backend.
func (s *PGStore) Save(cat catalog.Catalog) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("storage: clear products: %w", err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO products (category, ord, id, name, price, photo_file_id, added_from_channel, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for key, items := range cat {
		for ord, p := range items {
			if _, err := stmt.Exec(string(key), ord, p.ID, p.Name, p.Price, p.PhotoFileID, p.SourceChannelID, p.CreatedAt); err != nil {
				return fmt.Errorf("storage: insert %s: %w", p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}
