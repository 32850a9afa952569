package clients

import "github.com/medimart/storefront-gateway/internal/cache"

// Set bundles one client per collaborator, each with its own circuit breaker,
// all reporting mutations into the same cache-tag store.
type Set struct {
	Session  *SessionClient
	Cart     *CartClient
	Order    *OrderClient
	Medicine *MedicineClient
	Category *CategoryClient
	User     *UserClient
	Review   *ReviewClient
}

// NewSet wires up the full collaborator set against the API server and the
// auth provider.
func NewSet(apiURL, authURL, service string, tags *cache.Tags) *Set {
	return &Set{
		Session:  NewSessionClient(authURL, service, tags),
		Cart:     NewCartClient(apiURL, service, tags),
		Order:    NewOrderClient(apiURL, service, tags),
		Medicine: NewMedicineClient(apiURL, service, tags),
		Category: NewCategoryClient(apiURL, service, tags),
		User:     NewUserClient(apiURL, service, tags),
		Review:   NewReviewClient(apiURL, service, tags),
	}
}

// CircuitStates reports each collaborator's circuit breaker state, keyed by
// circuit name. The health endpoint exposes it so a degraded upstream is
// visible without scraping metrics.
func (s *Set) CircuitStates() map[string]string {
	return map[string]string{
		s.Session.name:  s.Session.circuit.GetState(),
		s.Cart.name:     s.Cart.circuit.GetState(),
		s.Order.name:    s.Order.circuit.GetState(),
		s.Medicine.name: s.Medicine.circuit.GetState(),
		s.Category.name: s.Category.circuit.GetState(),
		s.User.name:     s.User.circuit.GetState(),
		s.Review.name:   s.Review.circuit.GetState(),
	}
}

// BulkheadNames lists the collaborators whose mutations run inside a
// bulkhead.
func (s *Set) BulkheadNames() []string {
	return []string{
		s.Cart.bulkhead.GetName(),
		s.Order.bulkhead.GetName(),
	}
}
