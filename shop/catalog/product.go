package catalog

import (
	"fmt"
	"time"
)

// Category identifies a product class from the fixed storefront set.
type Category string

const (
	CategoryKeyboards Category = "keyboards"
	CategoryMice      Category = "mice"
	CategoryMonitors  Category = "monitors"
	CategoryPC        Category = "pc"
)

// Categories returns the fixed category set in menu order.
func Categories() []Category {
	return []Category{CategoryKeyboards, CategoryMice, CategoryMonitors, CategoryPC}
}

var categoryTitles = map[Category]string{
	CategoryKeyboards: "⌨️ Клавиатуры",
	CategoryMice:      "🖱 Мыши",
	CategoryMonitors:  "🖥 Мониторы",
	CategoryPC:        "💻 Компьютеры",
}

// Title returns the user-facing category name.
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Product is a catalog entry ingested from a channel post.
// Price stays free-form text; no currency semantics are attached.
type Product struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Price           string    `json:"price" db:"price"`
	PhotoFileID     string    `json:"photo_file_id" db:"photo_file_id"`
	SourceChannelID int64     `json:"added_from_channel" db:"added_from_channel"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Catalog maps each category to its products, newest first.
type Catalog map[Category][]Product

// ProductID derives the globally unique dedup key for a channel post.
func ProductID(channelID int64, postID int) string {
	return fmt.Sprintf("%d_%d", channelID, postID)
}
