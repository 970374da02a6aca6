package domain

// Customer is a generated customer record.
type Customer struct {
	CustomerID    string      `json:"customer_id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	PhoneNumber   string      `json:"phone_number"`
	Email         string      `json:"email"`
	LoyaltyMember bool        `json:"loyalty_member"`
	LoyaltyNumber string      `json:"loyalty_number,omitempty"`
	Address       Address     `json:"address"`
	Preferences   Preferences `json:"preferences"`
}

// Address is a US-style postal address.
type Address struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
}

// Preferences holds a customer's contact channels and shopping interests.
type Preferences struct {
	Communication []string `json:"communication"`
	Interests     []string `json:"interests"`
}

// Recommendation is a suggested item for a customer.
type Recommendation struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Profile bundles a customer with their purchase history and
// recommendations. Profiles are built once at startup and never
// mutated afterwards.
type Profile struct {
	Customer        Customer         `json:"customer"`
	RecentPurchases []Purchase       `json:"recent_purchases"`
	Recommendations []Recommendation `json:"recommendations"`
}
