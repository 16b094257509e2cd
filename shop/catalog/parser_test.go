package catalog

import "testing"

func TestParsePost(t *testing.T) {
	post := "#клава\nKeychron K2\nМеханика, красные свичи\nЦена: 450 000 сум"
	parsed, ok := ParsePost(post)
	if !ok {
		t.Fatal("expected post to parse")
	}
	if parsed.Category != CategoryKeyboards {
		t.Fatalf("category = %s, expected keyboards", parsed.Category)
	}
	if parsed.Name != "Keychron K2" {
		t.Fatalf("name = %q", parsed.Name)
	}
	if parsed.Price != "450 000 сум" {
		t.Fatalf("price = %q", parsed.Price)
	}
}

func TestParsePostBlankLinesAndCase(t *testing.T) {
	post := "\n  #Монитор  \n\n  LG UltraGear 27  \n\nОписание тут\nЦЕНА :  3 200 000\n"
	parsed, ok := ParsePost(post)
	if !ok {
		t.Fatal("expected post to parse")
	}
	if parsed.Category != CategoryMonitors {
		t.Fatalf("category = %s, expected monitors", parsed.Category)
	}
	if parsed.Name != "LG UltraGear 27" {
		t.Fatalf("name = %q", parsed.Name)
	}
	if parsed.Price != "3 200 000" {
		t.Fatalf("price = %q", parsed.Price)
	}
}

func TestParsePostTagAliases(t *testing.T) {
	cases := map[string]Category{
		"#клава":      CategoryKeyboards,
		"#клавиатура": CategoryKeyboards,
		"#мышь":       CategoryMice,
		"#монитор":    CategoryMonitors,
		"#пк":         CategoryPC,
		"#компьютер":  CategoryPC,
	}
	for tag, expected := range cases {
		parsed, ok := ParsePost(tag + "\nТовар\nЦена: 100")
		if !ok {
			t.Fatalf("tag %s: expected parse", tag)
		}
		if parsed.Category != expected {
			t.Fatalf("tag %s: category = %s, expected %s", tag, parsed.Category, expected)
		}
	}
}

func TestParsePostRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"one line":       "#клава",
		"unknown tag":    "#стул\nТабуретка\nЦена: 100",
		"tag not first":  "Keychron K2\n#клава\nЦена: 100",
		"missing price":  "#клава\nKeychron K2\nПросто описание",
		"blank price":    "#клава\nKeychron K2\nЦена:   ",
		"only whitespace": "   \n\n  ",
	}
	for name, post := range cases {
		if _, ok := ParsePost(post); ok {
			t.Fatalf("%s: expected parse failure", name)
		}
	}
}
