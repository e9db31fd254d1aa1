package service

import (
	"fmt"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
)

// UserService handles account lookup and credential checks
type UserService struct {
	store *store.Store
}

// NewUserService creates a new user service
func NewUserService(store *store.Store) *UserService {
	return &UserService{store: store}
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(userID, password string) (*models.User, error) {
	user, ok := s.store.GetUser(userID)
	if !ok || !auth.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return &user, nil
}

// UserByID returns a single user.
func (s *UserService) UserByID(id string) (*models.User, error) {
	user, ok := s.store.GetUser(id)
	if !ok {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return &user, nil
}

// AllUsers returns every account.
func (s *UserService) AllUsers() []models.User {
	return s.store.GetAllUsers()
}
