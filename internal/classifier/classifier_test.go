package classifier

import (
	"testing"

	"github.com/opensource-retail/kestrel/internal/domain"
)

func TestBuiltinRules(t *testing.T) {
	cls, err := New(nil)
	if err != nil {
		t.Fatalf("failed to create classifier: %v", err)
	}

	tests := []struct {
		name     string
		itemName string
		category string
		want     bool
	}{
		{"funko in name", "Funko Pop Figure", "Toys", true},
		{"funko case insensitive", "FUNKO pop figure", "toys", true},
		{"funko substring", "Marvel funko keychain", "Accessories", true},
		{"baby food category", "Banana Puree", "Baby Food", true},
		{"baby food category case", "Banana Puree", "BABY FOOD", true},
		{"baby category with food name", "Toddler Food Pouch", "Baby", true},
		{"baby category without food name", "Crib Sheet", "Baby", false},
		{"lto category", "Snack Box", "Limited Time Offer", true},
		{"lto in name", "LTO Snack Box", "Snacks", true},
		{"limited time offer in name", "Limited Time Offer Bundle", "Snacks", true},
		{"plain electronics", "USB Cable", "Electronics", false},
		{"groceries", "Gallon Whole Milk", "Groceries", false},
		{"food name outside baby category", "Dog Food 20lb", "Pets", false},
		{"empty fields", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := domain.Item{ItemName: tt.itemName, Category: tt.category}
			if got := cls.HighlyAbused(item); got != tt.want {
				t.Errorf("HighlyAbused(%q, %q) = %v, want %v", tt.itemName, tt.category, got, tt.want)
			}
		})
	}
}

func TestExtraRules(t *testing.T) {
	cls, err := New([]string{
		`name.contains("collector")`,
		`category == "gift cards"`,
	})
	if err != nil {
		t.Fatalf("failed to create classifier with extra rules: %v", err)
	}
	if cls.RulesCount() != 2 {
		t.Fatalf("expected 2 extra rules, got %d", cls.RulesCount())
	}

	if !cls.HighlyAbused(domain.Item{ItemName: "Collector's Edition Statue", Category: "Toys"}) {
		t.Error("expected name rule to flag collector item")
	}
	if !cls.HighlyAbused(domain.Item{ItemName: "Prepaid Card $50", Category: "Gift Cards"}) {
		t.Error("expected category rule to flag gift card")
	}
	if cls.HighlyAbused(domain.Item{ItemName: "USB Cable", Category: "Electronics"}) {
		t.Error("extra rules should not flag unrelated items")
	}

	// Built-in rules still apply alongside extra ones.
	if !cls.HighlyAbused(domain.Item{ItemName: "Funko Pop Figure", Category: "Toys"}) {
		t.Error("built-in rules should still apply")
	}
}

func TestInvalidExtraRule(t *testing.T) {
	if _, err := New([]string{"this is not valid CEL !!!"}); err == nil {
		t.Error("expected error for invalid CEL expression")
	}
}

func TestNonBoolExtraRule(t *testing.T) {
	if _, err := New([]string{`name + category`}); err == nil {
		t.Error("expected error for non-bool CEL expression")
	}
}
