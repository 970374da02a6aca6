package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opensource-retail/kestrel/internal/catalog"
	"github.com/opensource-retail/kestrel/internal/domain"
	"github.com/opensource-retail/kestrel/internal/returns"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	store   *catalog.Store
	engine  *returns.Engine
	lookup  domain.LookupConfig
	version string
}

// NewHandler creates a new API handler.
func NewHandler(store *catalog.Store, engine *returns.Engine, lookup domain.LookupConfig, version string) *Handler {
	return &Handler{
		store:   store,
		engine:  engine,
		lookup:  lookup,
		version: version,
	}
}

// AnalyzeRequest is the request body for POST /returns/analyze.
// Exactly one of transaction_id / order_id is consulted, following
// the deployment's lookup key scheme.
type AnalyzeRequest struct {
	TransactionID      string `json:"transaction_id,omitempty"`
	OrderID            string `json:"order_id,omitempty"`
	ItemID             string `json:"item_id"`
	ReturnReason       string `json:"return_reason"`
	CounterActResponse string `json:"counter_act_response,omitempty"`
}

// AnalyzeResponse is the response for POST /returns/analyze.
type AnalyzeResponse struct {
	Outcome       domain.Outcome `json:"outcome"`
	Justification string         `json:"justification"`

	// Flag view of the outcome, for clients of the older shape.
	NeedsChat      bool `json:"needs_chat"`
	ReturnRequired bool `json:"return_required"`
	AutoApproved   bool `json:"auto_approved"`

	TransactionID    string              `json:"transaction_id"`
	OrderID          string              `json:"order_id"`
	ItemID           string              `json:"item_id"`
	ItemName         string              `json:"item_name"`
	ItemTotal        decimal.Decimal     `json:"item_total"`
	TransactionTotal decimal.Decimal     `json:"transaction_total"`
	Policy           domain.ReturnPolicy `json:"policy"`

	Metadata struct {
		RequestID string `json:"request_id"`
		ProcessMs int64  `json:"process_ms"`
		Version   string `json:"version"`
	} `json:"metadata"`
}

// AnalyzeReturn handles POST /returns/analyze (and its /analyze_tx
// alias): validate, look up the purchase and item, run the decision
// engine.
func (h *Handler) AnalyzeReturn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if verr := validateAnalyzeRequest(&req, h.lookup.KeyScheme); verr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
		return
	}

	keyField, key := "transaction_id", req.TransactionID
	if h.lookup.KeyScheme == domain.KeyByOrder {
		keyField, key = "order_id", req.OrderID
	}

	purchase, item, err := h.store.FindPurchase(key, req.ItemID)
	switch {
	case errors.Is(err, catalog.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "no purchase found for the provided id",
			keyField: key,
		})
		return
	case errors.Is(err, catalog.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "item not found in the purchase",
			keyField:  key,
			"item_id": req.ItemID,
		})
		return
	case err != nil:
		slog.Error("purchase lookup failed", "error", err, keyField, key)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
		return
	}

	decision := h.engine.Decide(returns.Input{
		Item:             *item,
		Reason:           domain.ReturnReason(req.ReturnReason),
		TransactionTotal: purchase.TotalAmount,
		CounterAct:       domain.CounterActResponse(req.CounterActResponse),
	})

	slog.Debug("return decision",
		"outcome", decision.Outcome,
		"reason", req.ReturnReason,
		"item_id", item.ItemID,
		keyField, key,
	)

	resp := AnalyzeResponse{
		Outcome:          decision.Outcome,
		Justification:    decision.Justification,
		NeedsChat:        decision.NeedsChat(),
		ReturnRequired:   decision.ReturnRequired(),
		AutoApproved:     decision.AutoApproved(),
		TransactionID:    purchase.TransactionID,
		OrderID:          purchase.OrderID,
		ItemID:           item.ItemID,
		ItemName:         item.ItemName,
		ItemTotal:        item.Total(),
		TransactionTotal: purchase.TotalAmount,
		Policy:           h.engine.Policy(),
	}
	resp.Metadata.RequestID = GetRequestID(ctx)
	resp.Metadata.ProcessMs = time.Since(start).Milliseconds()
	resp.Metadata.Version = h.version

	writeJSON(w, http.StatusOK, resp)
}

// Users handles GET and POST /users. With an email (query parameter
// on GET, JSON body on POST) it returns the single matching profile
// or 404; without one it returns the full collection.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	var email string
	switch r.Method {
	case http.MethodGet:
		email = r.URL.Query().Get("email")
	case http.MethodPost:
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "invalid JSON request body",
			})
			return
		}
		email = body.Email
	}

	if email == "" {
		writeJSON(w, http.StatusOK, h.store.Profiles())
		return
	}

	profile, ok := h.store.FindByEmail(email)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "customer not found for the provided email",
			"email": email,
		})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ListEmails handles GET /list_emails.
func (h *Handler) ListEmails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Emails())
}

// Index handles GET / with a short API description document.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Kestrel customer and returns API",
		"version": h.version,
		"endpoints": map[string]string{
			"GET /users":               "Get all customer profiles.",
			"GET /users?email=<email>": "Get the profile for a specific email.",
			"POST /users":              "Get the profile for the email in the JSON body.",
			"GET /list_emails":         "Get the sorted list of unique customer emails.",
			"POST /returns/analyze":    "Analyze a return request for a purchased item.",
			"GET /health":              "Health check.",
		},
	})
}

// Health returns server health status. The catalog is in-memory, so
// health reduces to the data being present.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.store.Size() == 0 {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
