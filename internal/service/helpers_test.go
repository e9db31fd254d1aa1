package service

import (
	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
)

func newTestStore() *store.Store {
	s := store.NewStore(models.StoreConfig{DiscountNValue: 3, DiscountPercentage: 10})
	for _, u := range []models.User{
		{ID: "customer1", Name: "Customer One", Role: models.RoleCustomer},
		{ID: "customer2", Name: "Customer Two", Role: models.RoleCustomer},
		{ID: "seller1", Name: "Seller One", Role: models.RoleSeller},
		{ID: "seller2", Name: "Seller Two", Role: models.RoleSeller},
		{ID: "admin1", Name: "Admin One", Role: models.RoleAdmin},
	} {
		s.SaveUser(u)
	}
	return s
}

func seedProduct(s *store.Store, id, sellerID string, price float64, stock int) models.Product {
	p := models.Product{
		ID:            id,
		SellerID:      sellerID,
		Name:          "Product " + id,
		Price:         price,
		StockQuantity: stock,
	}
	s.SaveProduct(p)
	return p
}
