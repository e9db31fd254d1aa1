package store

import (
	"fmt"
	"sync"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/models"

	"github.com/google/uuid"
)

// Store holds every persisted entity in process memory, keyed by ID.
// Individual accessors are safe for concurrent use; multi-step business
// sequences take their own locks at the service layer.
type Store struct {
	mu            sync.RWMutex
	users         map[string]models.User
	products      map[string]models.Product
	carts         map[string][]models.CartItem // userID -> rows
	orders        map[string]models.Order
	orderItems    map[string][]models.OrderItem // orderID -> items
	discountCodes map[string]models.DiscountCode
	config        models.StoreConfig
	seq           uint64
}

// NewStore creates an empty store with the given discount policy.
func NewStore(config models.StoreConfig) *Store {
	return &Store{
		users:         make(map[string]models.User),
		products:      make(map[string]models.Product),
		carts:         make(map[string][]models.CartItem),
		orders:        make(map[string]models.Order),
		orderItems:    make(map[string][]models.OrderItem),
		discountCodes: make(map[string]models.DiscountCode),
		config:        config,
	}
}

// NextID returns a fresh opaque entity ID. The sequence component keeps
// IDs monotonic within a process.
func (s *Store) NextID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s-%d-%s", prefix, s.seq, uuid.NewString()[:8])
}

// SeedDemoUsers inserts the fixed demo accounts the process starts with.
func (s *Store) SeedDemoUsers() error {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	seed := []models.User{
		{ID: "customer1", Name: "Customer One", Email: "customer1@store.com", Role: models.RoleCustomer},
		{ID: "customer2", Name: "Customer Two", Email: "customer2@store.com", Role: models.RoleCustomer},
		{ID: "seller1", Name: "Seller One", Email: "seller1@store.com", Role: models.RoleSeller},
		{ID: "seller2", Name: "Seller Two", Email: "seller2@store.com", Role: models.RoleSeller},
		{ID: "admin1", Name: "Admin One", Email: "admin1@store.com", Role: models.RoleAdmin},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range seed {
		u.Password = hash
		s.users[u.ID] = u
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// GetAllUsers retrieves every user.
func (s *Store) GetAllUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users
}

// SaveUser inserts or replaces a user.
func (s *Store) SaveUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// GetAllProducts retrieves every product.
func (s *Store) GetAllProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	return products
}

// GetProductsBySeller retrieves the products owned by a seller.
func (s *Store) GetProductsBySeller(sellerID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []models.Product
	for _, p := range s.products {
		if p.SellerID == sellerID {
			products = append(products, p)
		}
	}
	return products
}

// SaveProduct inserts or replaces a product.
func (s *Store) SaveProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// DeleteProduct removes a product.
func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}
