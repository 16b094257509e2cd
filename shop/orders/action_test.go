package orders

import (
	"testing"

	"github.com/m3rciful/shopbot/shop/catalog"
)

func TestParseActionMenuKeys(t *testing.T) {
	if act, ok := ParseAction(KeyOrder, ""); !ok {
		t.Fatal("order should parse")
	} else if _, isOpen := act.(OpenCategories); !isOpen {
		t.Fatalf("order parsed as %T", act)
	}

	if act, ok := ParseAction(KeyRefresh, ""); !ok {
		t.Fatal("refresh should parse")
	} else if _, isRefresh := act.(RefreshMenu); !isRefresh {
		t.Fatalf("refresh parsed as %T", act)
	}

	if act, ok := ParseAction(KeyBackMain, ""); !ok {
		t.Fatal("back_main should parse")
	} else if _, isBack := act.(BackToMain); !isBack {
		t.Fatalf("back_main parsed as %T", act)
	}
}

func TestParseActionCategory(t *testing.T) {
	act, ok := ParseAction(KeyCategory, "mice")
	if !ok {
		t.Fatal("cat|mice should parse")
	}
	show, isShow := act.(ShowCategory)
	if !isShow || show.Category != catalog.CategoryMice {
		t.Fatalf("unexpected action: %#v", act)
	}

	if _, ok := ParseAction(KeyCategory, "furniture"); ok {
		t.Fatal("unknown category must not parse")
	}
	if _, ok := ParseAction(KeyCategory, ""); ok {
		t.Fatal("empty category must not parse")
	}
}

func TestParseActionPick(t *testing.T) {
	act, ok := ParseAction(KeyPick, "-100123_42")
	if !ok {
		t.Fatal("pick should parse")
	}
	pick, isPick := act.(PickProduct)
	if !isPick || pick.ProductID != "-100123_42" {
		t.Fatalf("unexpected action: %#v", act)
	}

	if _, ok := ParseAction(KeyPick, "  "); ok {
		t.Fatal("blank product id must not parse")
	}
}

func TestParseActionDecisions(t *testing.T) {
	act, ok := ParseAction(KeyAccept, "777|-100123_42")
	if !ok {
		t.Fatal("adm_ok should parse")
	}
	dec, isDec := act.(AdminDecision)
	if !isDec {
		t.Fatalf("adm_ok parsed as %T", act)
	}
	if !dec.Accept || dec.BuyerID != 777 || dec.ProductID != "-100123_42" {
		t.Fatalf("unexpected decision: %#v", dec)
	}

	act, ok = ParseAction(KeyReject, "777|-100123_42")
	if !ok {
		t.Fatal("adm_no should parse")
	}
	if dec := act.(AdminDecision); dec.Accept {
		t.Fatal("adm_no must not accept")
	}

	bad := []string{"", "777", "abc|pid", "777|", "|pid"}
	for _, payload := range bad {
		if _, ok := ParseAction(KeyAccept, payload); ok {
			t.Fatalf("payload %q must not parse", payload)
		}
	}
}

func TestParseActionUnknownKey(t *testing.T) {
	if _, ok := ParseAction("selfdestruct", "now"); ok {
		t.Fatal("unknown key must not parse")
	}
}
