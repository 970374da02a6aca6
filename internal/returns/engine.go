// Package returns implements the return-eligibility decision engine.
package returns

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/opensource-retail/kestrel/internal/classifier"
	"github.com/opensource-retail/kestrel/internal/domain"
)

// Monetary thresholds from the returns flowchart. Both comparisons are
// strict: a total of exactly 50.00 or 30.00 stays under the limit.
var (
	keepTransactionLimit   = decimal.NewFromInt(50)
	shatteredItemLimit     = decimal.NewFromInt(30)
	returnTransactionLimit = decimal.NewFromInt(30)
)

// Input is one return request as seen by the engine. Reason must
// already be validated against the fixed enumeration; CounterAct is
// only consulted under the counter-act policy and may be empty.
type Input struct {
	Item             domain.Item
	Reason           domain.ReturnReason
	TransactionTotal decimal.Decimal
	CounterAct       domain.CounterActResponse
}

// Engine maps a return request to a decision by walking a fixed
// layered decision table. It is a pure function of its inputs: no
// I/O, no hidden state, identical inputs always produce identical
// decisions.
type Engine struct {
	policy     domain.ReturnPolicy
	classifier *classifier.Classifier
}

// NewEngine creates a decision engine applying the given policy.
func NewEngine(policy domain.ReturnPolicy, cls *classifier.Classifier) *Engine {
	return &Engine{policy: policy, classifier: cls}
}

// Policy returns the active decision policy.
func (e *Engine) Policy() domain.ReturnPolicy { return e.policy }

// Decide evaluates the decision table for one return request.
func (e *Engine) Decide(in Input) domain.Decision {
	if e.policy == domain.PolicyCounterAct {
		return e.decideCounterAct(in)
	}
	return e.decideStandard(in)
}

// keepClassReason reports whether the reason falls in the
// "item never usable by the guest" class: the item never arrived,
// went to the wrong address, or is non-baby food that cannot be
// restocked.
func keepClassReason(r domain.ReturnReason) bool {
	return r == domain.ReasonMissing || r == domain.ReasonWrongAddress || r == domain.ReasonFoodNonBaby
}

// babyFoodItem reports whether the item itself is baby food, which
// always routes to an agent regardless of fraud signals.
func babyFoodItem(item domain.Item) bool {
	category := strings.ToLower(item.Category)
	name := strings.ToLower(item.ItemName)
	return category == "baby food" || (category == "baby" && strings.Contains(name, "food"))
}

// decideStandard applies the baseline decision table.
func (e *Engine) decideStandard(in Input) domain.Decision {
	abused := e.classifier.HighlyAbused(in.Item)

	if keepClassReason(in.Reason) {
		switch {
		case babyFoodItem(in.Item):
			return chat("baby food items require a human agent")
		case abused:
			return chat("item %q is in a high-abuse category", in.Item.ItemName)
		case in.TransactionTotal.GreaterThan(keepTransactionLimit):
			return chat("transaction total %s exceeds the %s keep limit", in.TransactionTotal, keepTransactionLimit)
		default:
			return keep("transaction total %s is within the %s keep limit; guest keeps the item, no return needed", in.TransactionTotal, keepTransactionLimit)
		}
	}

	if abused {
		return ret("item %q is in a high-abuse category and must be returned", in.Item.ItemName)
	}

	if in.Reason == domain.ReasonShattered {
		itemTotal := in.Item.Total()
		if itemTotal.GreaterThan(shatteredItemLimit) {
			return chat("shattered item total %s exceeds the %s limit", itemTotal, shatteredItemLimit)
		}
		return keep("shattered item total %s is within the %s limit; guest keeps the item", itemTotal, shatteredItemLimit)
	}

	// Both sides of the transaction-total split below resolve to a
	// return today; the comparison is kept because the flowchart still
	// draws it, and the justification records which side fired.
	if in.TransactionTotal.GreaterThan(returnTransactionLimit) {
		return ret("transaction total %s exceeds %s; return approved, item must be sent back", in.TransactionTotal, returnTransactionLimit)
	}
	return ret("transaction total %s is within %s; return approved, item must be sent back", in.TransactionTotal, returnTransactionLimit)
}

// decideCounterAct applies the decision table that consults the
// external fraud-review verdict whenever a monetary threshold would
// otherwise block auto-approval.
func (e *Engine) decideCounterAct(in Input) domain.Decision {
	abused := e.classifier.HighlyAbused(in.Item)

	if keepClassReason(in.Reason) {
		switch {
		case abused:
			return chat("item %q is in a high-abuse category", in.Item.ItemName)
		case in.TransactionTotal.GreaterThan(keepTransactionLimit):
			if in.CounterAct == domain.CounterActAllow {
				return keep("transaction total %s exceeds %s but fraud review allowed the keep", in.TransactionTotal, keepTransactionLimit)
			}
			return chat("transaction total %s exceeds the %s keep limit and fraud review did not allow it", in.TransactionTotal, keepTransactionLimit)
		default:
			return keep("transaction total %s is within the %s keep limit; guest keeps the item", in.TransactionTotal, keepTransactionLimit)
		}
	}

	if abused {
		return ret("item %q is in a high-abuse category and must be returned", in.Item.ItemName)
	}

	if in.Reason == domain.ReasonShattered {
		itemTotal := in.Item.Total()
		if itemTotal.GreaterThan(shatteredItemLimit) {
			if in.CounterAct == domain.CounterActAllow {
				return keep("shattered item total %s exceeds %s but fraud review allowed the keep", itemTotal, shatteredItemLimit)
			}
			return chat("shattered item total %s exceeds the %s limit and fraud review did not allow it", itemTotal, shatteredItemLimit)
		}
		return keep("shattered item total %s is within the %s limit; guest keeps the item", itemTotal, shatteredItemLimit)
	}

	if in.TransactionTotal.GreaterThan(returnTransactionLimit) {
		return ret("transaction total %s exceeds %s; return approved, item must be sent back", in.TransactionTotal, returnTransactionLimit)
	}
	if in.CounterAct == domain.CounterActAllow {
		return keep("transaction total %s is within %s and fraud review allowed the keep", in.TransactionTotal, returnTransactionLimit)
	}
	return ret("transaction total %s is within %s; return approved, item must be sent back", in.TransactionTotal, returnTransactionLimit)
}

func keep(format string, args ...any) domain.Decision {
	return domain.Decision{Outcome: domain.OutcomeAllowKeep, Justification: fmt.Sprintf(format, args...)}
}

func ret(format string, args ...any) domain.Decision {
	return domain.Decision{Outcome: domain.OutcomeAllowReturn, Justification: fmt.Sprintf(format, args...)}
}

func chat(format string, args ...any) domain.Decision {
	return domain.Decision{Outcome: domain.OutcomeRequireChat, Justification: fmt.Sprintf(format, args...)}
}
