package domain

// ReturnReason classifies why a customer wants to return an item.
type ReturnReason string

// Return reason constants.
const (
	ReasonMissing      ReturnReason = "missing"
	ReasonWrongAddress ReturnReason = "wrong_address"
	ReasonShattered    ReturnReason = "shattered"
	ReasonFoodNonBaby  ReturnReason = "food_non_baby"
	ReasonFoodBaby     ReturnReason = "food_baby"
	ReasonOther        ReturnReason = "other"
)

// ValidReturnReason reports whether r is a recognized return reason.
func ValidReturnReason(r ReturnReason) bool {
	switch r {
	case ReasonMissing, ReasonWrongAddress, ReasonShattered,
		ReasonFoodNonBaby, ReasonFoodBaby, ReasonOther:
		return true
	}
	return false
}

// CounterActResponse is the verdict from an external fraud-review
// system, used by the counter-act policy to gate auto-approval when a
// monetary threshold is crossed.
type CounterActResponse string

// Counter-act verdict constants.
const (
	CounterActAllow    CounterActResponse = "allow"
	CounterActDisallow CounterActResponse = "disallow"
	CounterActReview   CounterActResponse = "review"
)

// ValidCounterActResponse reports whether c is a recognized verdict.
func ValidCounterActResponse(c CounterActResponse) bool {
	switch c {
	case CounterActAllow, CounterActDisallow, CounterActReview:
		return true
	}
	return false
}

// Outcome is the result of a return-eligibility decision.
type Outcome string

// Decision outcome constants.
const (
	// OutcomeAllowKeep means the guest keeps the item and no return
	// shipment is needed.
	OutcomeAllowKeep Outcome = "allow_keep"

	// OutcomeAllowReturn means the refund is approved but the item
	// must be sent back.
	OutcomeAllowReturn Outcome = "allow_return"

	// OutcomeRequireChat means the request needs a human agent.
	OutcomeRequireChat Outcome = "require_chat"
)

// Decision is the structured result of the return decision engine.
// Justification summarizes which rule fired and the values compared;
// it is informational only.
type Decision struct {
	Outcome       Outcome `json:"outcome"`
	Justification string  `json:"justification"`
}

// NeedsChat reports whether a human agent is required.
func (d Decision) NeedsChat() bool { return d.Outcome == OutcomeRequireChat }

// ReturnRequired reports whether the item must be shipped back.
func (d Decision) ReturnRequired() bool { return d.Outcome == OutcomeAllowReturn }

// AutoApproved reports whether the request resolved without an agent.
func (d Decision) AutoApproved() bool { return d.Outcome != OutcomeRequireChat }
