package returns

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/opensource-retail/kestrel/internal/classifier"
	"github.com/opensource-retail/kestrel/internal/domain"
)

func newTestEngine(t *testing.T, policy domain.ReturnPolicy) *Engine {
	t.Helper()
	cls, err := classifier.New(nil)
	if err != nil {
		t.Fatalf("failed to create classifier: %v", err)
	}
	return NewEngine(policy, cls)
}

func item(name, category string, price float64, quantity int) domain.Item {
	return domain.Item{
		ItemID:   "ITEM_TEST",
		ItemName: name,
		Category: category,
		Quantity: quantity,
		Price:    decimal.NewFromFloat(price),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStandardPolicy(t *testing.T) {
	engine := newTestEngine(t, domain.PolicyStandard)

	tests := []struct {
		name    string
		item    domain.Item
		reason  domain.ReturnReason
		txTotal decimal.Decimal
		want    domain.Outcome
	}{
		// Missing / wrong address / non-baby food: baby food items
		// always go to an agent, before any other check.
		{"baby food item missing", item("Banana Puree", "Baby Food", 5.49, 1), domain.ReasonMissing, dec("10"), domain.OutcomeRequireChat},
		{"baby food item wrong address", item("Banana Puree", "Baby Food", 5.49, 1), domain.ReasonWrongAddress, dec("10"), domain.OutcomeRequireChat},
		{"baby food item food reason", item("Banana Puree", "Baby Food", 5.49, 1), domain.ReasonFoodNonBaby, dec("10"), domain.OutcomeRequireChat},
		{"baby category food name", item("Toddler Food Pouch", "Baby", 3.99, 1), domain.ReasonMissing, dec("10"), domain.OutcomeRequireChat},

		// High-abuse items in the keep-class go to an agent regardless
		// of transaction value.
		{"abused item missing low value", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonMissing, dec("5"), domain.OutcomeRequireChat},
		{"abused item missing high value", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonMissing, dec("5000"), domain.OutcomeRequireChat},
		{"abused item wrong address", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonWrongAddress, dec("5"), domain.OutcomeRequireChat},
		{"lto item missing", item("LTO Snack Box", "Snacks", 14.99, 1), domain.ReasonMissing, dec("5"), domain.OutcomeRequireChat},

		// Keep limit is strictly greater than 50.
		{"keep at exactly 50", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.00"), domain.OutcomeAllowKeep},
		{"chat just above 50", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.01"), domain.OutcomeRequireChat},
		{"keep under 50", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonWrongAddress, dec("12.50"), domain.OutcomeAllowKeep},
		{"food non baby keep", item("Potato Chips", "Groceries", 3.49, 2), domain.ReasonFoodNonBaby, dec("6.98"), domain.OutcomeAllowKeep},

		// Other reasons: high-abuse items must always come back.
		{"abused item other reason", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonOther, dec("11.99"), domain.OutcomeAllowReturn},
		{"abused item other high value", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonOther, dec("900"), domain.OutcomeAllowReturn},
		{"abused item shattered", item("Funko Pop Figure", "Toys", 45.00, 1), domain.ReasonShattered, dec("45"), domain.OutcomeAllowReturn},

		// Shattered limit is strictly greater than 30 on the item total.
		{"shattered at exactly 30", item("Mug", "Home Goods", 30.00, 1), domain.ReasonShattered, dec("30"), domain.OutcomeAllowKeep},
		{"shattered just above 30", item("Mug", "Home Goods", 30.01, 1), domain.ReasonShattered, dec("30.01"), domain.OutcomeRequireChat},
		{"shattered quantity crosses limit", item("Glass", "Home Goods", 12.00, 3), domain.ReasonShattered, dec("36"), domain.OutcomeRequireChat},
		{"shattered electronics under limit", item("Speaker", "Electronics", 20.00, 1), domain.ReasonShattered, dec("20"), domain.OutcomeAllowKeep},

		// Generic reasons resolve to a return on both sides of the
		// transaction-total split.
		{"other above 30", item("Lamp", "Home Goods", 40.00, 1), domain.ReasonOther, dec("40"), domain.OutcomeAllowReturn},
		{"other at 30", item("Lamp", "Home Goods", 30.00, 1), domain.ReasonOther, dec("30"), domain.OutcomeAllowReturn},
		{"other under 30", item("Lamp", "Home Goods", 10.00, 1), domain.ReasonOther, dec("10"), domain.OutcomeAllowReturn},
		{"baby food reason above 30", item("Lamp", "Home Goods", 40.00, 1), domain.ReasonFoodBaby, dec("40"), domain.OutcomeAllowReturn},
		{"baby food reason under 30", item("Lamp", "Home Goods", 10.00, 1), domain.ReasonFoodBaby, dec("10"), domain.OutcomeAllowReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(Input{
				Item:             tt.item,
				Reason:           tt.reason,
				TransactionTotal: tt.txTotal,
			})
			if got.Outcome != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, got.Outcome, got.Justification)
			}
			if got.Justification == "" {
				t.Error("expected a justification message")
			}
		})
	}
}

func TestCounterActPolicy(t *testing.T) {
	engine := newTestEngine(t, domain.PolicyCounterAct)

	tests := []struct {
		name       string
		item       domain.Item
		reason     domain.ReturnReason
		txTotal    decimal.Decimal
		counterAct domain.CounterActResponse
		want       domain.Outcome
	}{
		// Keep-class over the 50 limit: fraud review gates the keep.
		{"over 50 allowed", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.01"), domain.CounterActAllow, domain.OutcomeAllowKeep},
		{"over 50 disallowed", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.01"), domain.CounterActDisallow, domain.OutcomeRequireChat},
		{"over 50 review", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.01"), domain.CounterActReview, domain.OutcomeRequireChat},
		{"over 50 no verdict", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.01"), "", domain.OutcomeRequireChat},
		{"at 50 keeps without verdict", item("USB Cable", "Electronics", 9.99, 1), domain.ReasonMissing, dec("50.00"), "", domain.OutcomeAllowKeep},

		// Abuse beats the verdict in both halves of the table.
		{"abused keep-class allowed verdict", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonMissing, dec("5"), domain.CounterActAllow, domain.OutcomeRequireChat},
		{"abused other reason", item("Funko Pop Figure", "Toys", 11.99, 1), domain.ReasonOther, dec("5"), domain.CounterActAllow, domain.OutcomeAllowReturn},

		// Shattered over the 30 item limit: verdict gates the keep.
		{"shattered over 30 allowed", item("Vase", "Home Goods", 30.01, 1), domain.ReasonShattered, dec("30.01"), domain.CounterActAllow, domain.OutcomeAllowKeep},
		{"shattered over 30 review", item("Vase", "Home Goods", 30.01, 1), domain.ReasonShattered, dec("30.01"), domain.CounterActReview, domain.OutcomeRequireChat},
		{"shattered at 30", item("Vase", "Home Goods", 30.00, 1), domain.ReasonShattered, dec("30"), "", domain.OutcomeAllowKeep},
		{"shattered electronics under limit", item("Speaker", "Electronics", 20.00, 1), domain.ReasonShattered, dec("20"), "", domain.OutcomeAllowKeep},

		// Generic reasons: over 30 always returns; at or under, the
		// verdict can convert the return into a keep.
		{"other over 30", item("Lamp", "Home Goods", 40.00, 1), domain.ReasonOther, dec("40"), domain.CounterActAllow, domain.OutcomeAllowReturn},
		{"other under 30 allowed", item("Lamp", "Home Goods", 10.00, 1), domain.ReasonOther, dec("10"), domain.CounterActAllow, domain.OutcomeAllowKeep},
		{"other under 30 disallowed", item("Lamp", "Home Goods", 10.00, 1), domain.ReasonOther, dec("10"), domain.CounterActDisallow, domain.OutcomeAllowReturn},
		{"other under 30 no verdict", item("Lamp", "Home Goods", 10.00, 1), domain.ReasonOther, dec("10"), "", domain.OutcomeAllowReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(Input{
				Item:             tt.item,
				Reason:           tt.reason,
				TransactionTotal: tt.txTotal,
				CounterAct:       tt.counterAct,
			})
			if got.Outcome != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, got.Outcome, got.Justification)
			}
		})
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	for _, policy := range []domain.ReturnPolicy{domain.PolicyStandard, domain.PolicyCounterAct} {
		engine := newTestEngine(t, policy)
		in := Input{
			Item:             item("Funko Pop Figure", "Toys", 11.99, 2),
			Reason:           domain.ReasonShattered,
			TransactionTotal: dec("57.23"),
			CounterAct:       domain.CounterActReview,
		}

		first := engine.Decide(in)
		second := engine.Decide(in)
		if first != second {
			t.Errorf("policy %s: identical inputs produced different decisions: %+v vs %+v", policy, first, second)
		}
	}
}

func TestDecisionFlags(t *testing.T) {
	engine := newTestEngine(t, domain.PolicyStandard)

	// Guest keeps: auto approved, no chat, no return shipment.
	keep := engine.Decide(Input{
		Item:             item("USB Cable", "Electronics", 9.99, 1),
		Reason:           domain.ReasonMissing,
		TransactionTotal: dec("9.99"),
	})
	if keep.NeedsChat() || keep.ReturnRequired() || !keep.AutoApproved() {
		t.Errorf("unexpected flags for keep decision: %+v", keep)
	}

	// Must return: auto approved with a return shipment.
	ret := engine.Decide(Input{
		Item:             item("Funko Pop Figure", "Toys", 11.99, 1),
		Reason:           domain.ReasonOther,
		TransactionTotal: dec("11.99"),
	})
	if ret.NeedsChat() || !ret.ReturnRequired() || !ret.AutoApproved() {
		t.Errorf("unexpected flags for return decision: %+v", ret)
	}

	// Chat required: nothing automated.
	chat := engine.Decide(Input{
		Item:             item("USB Cable", "Electronics", 9.99, 1),
		Reason:           domain.ReasonMissing,
		TransactionTotal: dec("200"),
	})
	if !chat.NeedsChat() || chat.ReturnRequired() || chat.AutoApproved() {
		t.Errorf("unexpected flags for chat decision: %+v", chat)
	}
}

func TestJustificationCarriesValues(t *testing.T) {
	engine := newTestEngine(t, domain.PolicyStandard)

	got := engine.Decide(Input{
		Item:             item("USB Cable", "Electronics", 9.99, 1),
		Reason:           domain.ReasonMissing,
		TransactionTotal: dec("50.01"),
	})
	if got.Outcome != domain.OutcomeRequireChat {
		t.Fatalf("expected require_chat, got %s", got.Outcome)
	}
	if want := "50.01"; !strings.Contains(got.Justification, want) {
		t.Errorf("expected justification to mention %s, got %q", want, got.Justification)
	}
}
