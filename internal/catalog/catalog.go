// Package catalog provides read-only access to the in-memory customer
// profile collection.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/opensource-retail/kestrel/internal/domain"
)

// Lookup miss sentinels.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("item not found")
)

// Store holds the profile collection built once at startup. The slice
// is never written after construction, so the store is safe for
// concurrent readers without locking.
type Store struct {
	profiles []domain.Profile
	lookup   domain.LookupConfig
}

// New creates a store over the given profiles.
func New(profiles []domain.Profile, lookup domain.LookupConfig) *Store {
	if lookup.KeyScheme == "" {
		lookup.KeyScheme = domain.KeyByTransaction
	}
	if lookup.ItemMatch == "" {
		lookup.ItemMatch = domain.MatchExact
	}
	return &Store{profiles: profiles, lookup: lookup}
}

// Profiles returns the full profile collection.
func (s *Store) Profiles() []domain.Profile {
	return s.profiles
}

// Size returns the number of profiles.
func (s *Store) Size() int {
	return len(s.profiles)
}

// FindByEmail returns the profile whose customer email matches
// exactly, or false if no customer has that email.
func (s *Store) FindByEmail(email string) (*domain.Profile, bool) {
	if email == "" {
		return nil, false
	}
	for i := range s.profiles {
		if s.profiles[i].Customer.Email == email {
			return &s.profiles[i], true
		}
	}
	return nil, false
}

// Emails returns the sorted list of unique customer email addresses.
func (s *Store) Emails() []string {
	seen := make(map[string]struct{}, len(s.profiles))
	emails := make([]string, 0, len(s.profiles))
	for i := range s.profiles {
		email := s.profiles[i].Customer.Email
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// FindPurchase resolves an order key and item key to the matching
// purchase and line item. Three result shapes are possible:
// (nil, nil, ErrOrderNotFound) when no purchase matches the key;
// (purchase, nil, ErrItemNotFound) when the purchase matches but no
// item does; (purchase, item, nil) when both match.
//
// The order key is compared by exact equality against the identifier
// selected by the configured key scheme. Under prefix item matching,
// an ambiguous key resolves to the first matching item in stored
// order.
func (s *Store) FindPurchase(orderKey, itemKey string) (*domain.Purchase, *domain.Item, error) {
	for i := range s.profiles {
		purchases := s.profiles[i].RecentPurchases
		for j := range purchases {
			if !s.keyMatches(&purchases[j], orderKey) {
				continue
			}
			purchase := &purchases[j]
			for k := range purchase.Items {
				if s.itemMatches(&purchase.Items[k], itemKey) {
					return purchase, &purchase.Items[k], nil
				}
			}
			return purchase, nil, ErrItemNotFound
		}
	}
	return nil, nil, ErrOrderNotFound
}

func (s *Store) keyMatches(p *domain.Purchase, key string) bool {
	if s.lookup.KeyScheme == domain.KeyByOrder {
		return p.OrderID == key
	}
	return p.TransactionID == key
}

func (s *Store) itemMatches(item *domain.Item, key string) bool {
	if s.lookup.ItemMatch == domain.MatchPrefix {
		return strings.HasPrefix(item.ItemID, key)
	}
	return item.ItemID == key
}
