package api

import (
	"fmt"

	"github.com/opensource-retail/kestrel/internal/domain"
)

// ValidationError describes the first request-field violation found.
// Validation stops at the first problem; violations are not aggregated.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// validateAnalyzeRequest checks required-field presence and enum
// membership before the request reaches the lookup or the engine.
// The key field it requires follows the active lookup key scheme.
func validateAnalyzeRequest(req *AnalyzeRequest, scheme domain.KeyScheme) *ValidationError {
	if scheme == domain.KeyByOrder {
		if req.OrderID == "" {
			return &ValidationError{Field: "order_id", Reason: "is required"}
		}
	} else {
		if req.TransactionID == "" {
			return &ValidationError{Field: "transaction_id", Reason: "is required"}
		}
	}

	if req.ItemID == "" {
		return &ValidationError{Field: "item_id", Reason: "is required"}
	}

	if req.ReturnReason == "" {
		return &ValidationError{Field: "return_reason", Reason: "is required"}
	}
	if !domain.ValidReturnReason(domain.ReturnReason(req.ReturnReason)) {
		return &ValidationError{
			Field:  "return_reason",
			Reason: fmt.Sprintf("%q is not a recognized return reason", req.ReturnReason),
		}
	}

	if req.CounterActResponse != "" && !domain.ValidCounterActResponse(domain.CounterActResponse(req.CounterActResponse)) {
		return &ValidationError{
			Field:  "counter_act_response",
			Reason: fmt.Sprintf("%q is not a recognized fraud-review verdict", req.CounterActResponse),
		}
	}

	return nil
}
