package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line item on a purchase.
type Item struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Total returns price × quantity for this line item.
func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Purchase is a completed order. It carries both a transaction-scoped
// and an order-scoped identifier; which one the catalog matches on is
// configuration (see LookupConfig).
type Purchase struct {
	TransactionID         string          `json:"transaction_id"`
	OrderID               string          `json:"order_id"`
	PurchaseDate          time.Time       `json:"purchase_date"`
	DeliveredDate         *time.Time      `json:"delivered_date,omitempty"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
	StoreID               string          `json:"store_id"`
	StoreName             string          `json:"store_name"`
	Items                 []Item          `json:"items"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	PaymentMethod         string          `json:"payment_method"`
	OrderType             string          `json:"order_type"`
	ShippingAddress       *Address        `json:"shipping_address,omitempty"`
	TrackingNumber        string          `json:"tracking_number,omitempty"`
	OrderStatus           string          `json:"order_status"`
}
