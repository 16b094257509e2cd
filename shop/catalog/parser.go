package catalog

import (
	"regexp"
	"strings"
)

// tagToCategory maps the channel-post tag line to a category.
// The tag must be the whole first line, lowercased.
var tagToCategory = map[string]Category{
	"#клава":      CategoryKeyboards,
	"#клавиатура": CategoryKeyboards,
	"#мышь":       CategoryMice,
	"#монитор":    CategoryMonitors,
	"#пк":         CategoryPC,
	"#компьютер":  CategoryPC,
}

// priceRe captures the rest of the line after the price label, wherever
// it appears in the post. The price commonly sits below a longer
// description, so it is matched by label rather than by position.
var priceRe = regexp.MustCompile(`(?i)цена\s*:\s*(.+)`)

// ParsedPost is the structured form of a product channel post.
type ParsedPost struct {
	Category Category
	Name     string
	Price    string
}

// ParsePost extracts (category, name, price) from raw channel-post text.
//
// Expected shape:
//
//	line 1: #tag
//	line 2: product name
//	anywhere: Цена: <price>
//
// It is a pure function; posts that do not follow the shape report ok=false.
func ParsePost(raw string) (ParsedPost, bool) {
	if raw == "" {
		return ParsedPost{}, false
	}

	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return ParsedPost{}, false
	}

	cat, ok := tagToCategory[strings.ToLower(lines[0])]
	if !ok {
		return ParsedPost{}, false
	}

	name := lines[1]

	m := priceRe.FindStringSubmatch(raw)
	if m == nil {
		return ParsedPost{}, false
	}
	price := strings.TrimSpace(m[1])
	if price == "" {
		return ParsedPost{}, false
	}

	return ParsedPost{Category: cat, Name: name, Price: price}, true
}
