// Package synth generates realistic but fake customer profile data.
// The collection is built once at startup and handed to the catalog;
// nothing here runs after initialization.
package synth

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/opensource-retail/kestrel/internal/domain"
)

// SupportDemoEmail is the email of the pinned profile appended to
// every generated collection, so support tooling always has one
// known customer to exercise.
const SupportDemoEmail = "tina.bruce111@example.com"

var communicationPrefs = []string{"email", "text", "phone", "mail"}

var interests = []string{
	"electronics", "home goods", "clothing", "groceries", "toys",
	"books", "sports", "outdoors", "beauty", "pharmacy", "baby",
	"pets", "entertainment",
}

var paymentMethods = []string{
	"Credit Card", "Debit Card", "Cash", "Store Credit Card",
	"Gift Card", "PayPal",
}

const (
	orderTypeInStore = "In-Store"
	orderTypeShipped = "Online - Shipped"
	orderTypePickup  = "Online - Pickup"
)

var orderTypes = []string{orderTypeInStore, orderTypeShipped, orderTypePickup}

var (
	orderStatusShipped = []string{"Processing", "Shipped", "In Transit", "Out for Delivery", "Delivered", "Delayed", "Cancelled"}
	orderStatusPickup  = []string{"Processing", "Ready for Pickup", "Picked Up", "Cancelled"}
	orderStatusInStore = []string{"Completed", "Returned"}
)

type sampleItem struct {
	id       string
	name     string
	category string
	price    float64
}

var sampleItems = []sampleItem{
	{"ITEM_TV_S", "Samsung 55\" QLED 4K TV", "Televisions", 799.99},
	{"ITEM_LAP_M", "MacBook Air M3", "Computers", 1099.00},
	{"ITEM_PH_A", "Apple iPhone 16", "Mobile Phones", 999.00},
	{"ITEM_HEAD_B", "Bose QuietComfort Ultra", "Headphones", 379.00},
	{"ITEM_COFF", "Keurig K-Mini Coffee Maker", "Home Goods", 79.99},
	{"ITEM_SHIRT", "Crew Neck T-Shirt", "Clothing", 12.00},
	{"ITEM_MILK", "Gallon Whole Milk", "Groceries", 3.50},
	{"ITEM_LEGO", "LEGO Star Wars Set", "Toys", 49.99},
	{"ITEM_FUNKO", "Funko Pop! Vinyl Figure", "Toys", 11.99},
	{"ITEM_PUREE", "Organic Banana Puree 4-Pack", "Baby Food", 5.49},
	{"ITEM_LTO", "Limited Time Offer Snack Box", "Limited Time Offer", 14.99},
}

var recommendationReasons = []string{
	"Frequently purchased together",
	"Based on your recent browsing history",
	"Customers who bought items in {category} also bought this",
	"Because you purchased {item_name}",
	"Popular item in your area",
	"Based on your interest in {interest}",
	"Top rated in {category}",
}

var freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}

// Config controls generation.
type Config struct {
	// Profiles is the number of random profiles to generate; the
	// pinned support-demo profile is appended on top of this.
	Profiles int

	// Seed makes generation deterministic when non-zero.
	Seed uint64
}

type generator struct {
	f      *gofakeit.Faker
	stores []string
}

// Generate builds the profile collection. Purchase dates fall
// exclusively within 2025 and each profile's purchases are sorted
// most recent first.
func Generate(cfg Config) []domain.Profile {
	g := &generator{f: gofakeit.New(cfg.Seed)}
	for i := 0; i < 20; i++ {
		g.stores = append(g.stores, "Kestrel Market - "+g.f.City())
	}
	g.stores = append(g.stores, "kestrelmarket.com")

	profiles := make([]domain.Profile, 0, cfg.Profiles+1)
	for i := 0; i < cfg.Profiles; i++ {
		profiles = append(profiles, g.profile())
	}

	// Pinned support-demo profile, always last and always findable.
	demo := g.profile()
	demo.Customer.FirstName = "Tina"
	demo.Customer.LastName = "Bruce"
	demo.Customer.Email = SupportDemoEmail
	profiles = append(profiles, demo)

	return profiles
}

func (g *generator) profile() domain.Profile {
	customer := g.customer()

	purchases := make([]domain.Purchase, g.f.Number(1, 8))
	for i := range purchases {
		purchases[i] = g.purchase(customer.Address)
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})

	recommendations := make([]domain.Recommendation, g.f.Number(1, 5))
	for i := range recommendations {
		recommendations[i] = g.recommendation(customer.Preferences.Interests, purchases)
	}

	return domain.Profile{
		Customer:        customer,
		RecentPurchases: purchases,
		Recommendations: recommendations,
	}
}

func (g *generator) customer() domain.Customer {
	first := g.f.FirstName()
	last := g.f.LastName()

	c := domain.Customer{
		CustomerID:    g.f.UUID(),
		FirstName:     first,
		LastName:      last,
		PhoneNumber:   g.f.PhoneFormatted(),
		Email:         fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), g.f.Number(1, 99), g.f.RandomString(freeEmailDomains)),
		LoyaltyMember: g.f.Bool(),
		Address:       g.address(),
		Preferences: domain.Preferences{
			Communication: g.sample(communicationPrefs, g.f.Number(1, len(communicationPrefs))),
			Interests:     g.sample(interests, g.f.Number(1, 6)),
		},
	}
	if c.LoyaltyMember {
		c.LoyaltyNumber = "LY" + g.f.DigitN(10)
	}
	return c
}

func (g *generator) address() domain.Address {
	return domain.Address{
		StreetAddress: g.f.Street(),
		City:          g.f.City(),
		State:         g.f.StateAbr(),
		ZipCode:       g.f.Zip(),
	}
}

func (g *generator) item() domain.Item {
	tpl := sampleItems[g.f.Number(0, len(sampleItems)-1)]
	// Jitter the list price ±10% so repeat items differ.
	price := decimal.NewFromFloat(tpl.price * g.f.Float64Range(0.9, 1.1)).Round(2)
	return domain.Item{
		ItemID:   tpl.id + "_" + g.f.UUID()[:4],
		ItemName: tpl.name,
		Category: tpl.category,
		Quantity: g.f.Number(1, 3),
		Price:    price,
	}
}

func (g *generator) purchase(customerAddr domain.Address) domain.Purchase {
	id := g.f.UUID()
	p := domain.Purchase{
		TransactionID: "TRANS_" + id,
		OrderID:       "ORD_" + id,
		StoreID:       fmt.Sprintf("%d", g.f.Number(1000, 9999)),
		StoreName:     g.f.RandomString(g.stores),
		PaymentMethod: g.f.RandomString(paymentMethods),
		OrderType:     g.f.RandomString(orderTypes),
	}

	items := make([]domain.Item, g.f.Number(1, 5))
	total := decimal.Zero
	for i := range items {
		items[i] = g.item()
		total = total.Add(items[i].Total())
	}
	p.Items = items
	p.TotalAmount = total

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	purchased := g.f.DateRange(start, end).UTC().Truncate(time.Second)
	p.PurchaseDate = purchased

	switch p.OrderType {
	case orderTypeInStore:
		p.OrderStatus = g.f.RandomString(orderStatusInStore)
		if p.OrderStatus == "Completed" {
			p.DeliveredDate = &purchased
		}

	case orderTypePickup:
		p.OrderStatus = g.f.RandomString(orderStatusPickup)
		if p.OrderStatus == "Picked Up" {
			pickedUp := purchased.Add(time.Duration(g.f.Number(0, 3))*24*time.Hour + time.Duration(g.f.Number(1, 12))*time.Hour)
			p.DeliveredDate = &pickedUp
		}

	case orderTypeShipped:
		p.OrderStatus = g.f.RandomString(orderStatusShipped)
		addr := customerAddr
		if g.f.Float64Range(0, 1) <= 0.15 {
			addr = g.address()
		}
		p.ShippingAddress = &addr
		if p.OrderStatus != "Processing" && p.OrderStatus != "Cancelled" {
			estimated := purchased.Add(time.Duration(g.f.Number(3, 10)) * 24 * time.Hour)
			p.EstimatedDeliveryDate = &estimated
			p.TrackingNumber = "1Z" + g.trackingSuffix(16)
			if p.OrderStatus == "Delivered" {
				delivered := purchased.Add(24*time.Hour + time.Duration(g.f.Number(0, 96))*time.Hour)
				p.DeliveredDate = &delivered
			}
		}
	}

	return p
}

func (g *generator) recommendation(customerInterests []string, purchases []domain.Purchase) domain.Recommendation {
	tpl := sampleItems[g.f.Number(0, len(sampleItems)-1)]
	reason := g.f.RandomString(recommendationReasons)

	var categories []string
	var itemNames []string
	for _, p := range purchases {
		for _, item := range p.Items {
			categories = append(categories, item.Category)
			itemNames = append(itemNames, item.ItemName)
		}
	}
	categories = append(categories, customerInterests...)

	switch {
	case strings.Contains(reason, "{category}") && len(categories) > 0:
		reason = strings.ReplaceAll(reason, "{category}", g.f.RandomString(categories))
	case strings.Contains(reason, "{item_name}") && len(itemNames) > 0:
		reason = strings.ReplaceAll(reason, "{item_name}", g.f.RandomString(itemNames))
	case strings.Contains(reason, "{interest}") && len(customerInterests) > 0:
		reason = strings.ReplaceAll(reason, "{interest}", g.f.RandomString(customerInterests))
	}
	reason = strings.ReplaceAll(reason, "{category}", "related items")
	reason = strings.ReplaceAll(reason, "{item_name}", "items you viewed")
	reason = strings.ReplaceAll(reason, "{interest}", "your interests")

	return domain.Recommendation{
		ItemID:   tpl.id + "_" + g.f.UUID()[:4],
		ItemName: tpl.name,
		Category: tpl.category,
		Reason:   reason,
	}
}

// sample returns k distinct entries from src in random order.
func (g *generator) sample(src []string, k int) []string {
	if k > len(src) {
		k = len(src)
	}
	out := make([]string, len(src))
	copy(out, src)
	g.f.ShuffleStrings(out)
	return out[:k]
}

func (g *generator) trackingSuffix(n int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[g.f.Number(0, len(charset)-1)]
	}
	return string(b)
}
