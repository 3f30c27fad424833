// Package auth owns account registration, login and bearer-token handling.
package auth

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface auth needs.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	RestaurantByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Restaurant, error)
}

// Service handles accounts and tokens.
type Service struct {
	store  Store
	tokens *TokenManager
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(store Store, tokens *TokenManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Registration carries a new owner account plus their restaurant.
type Registration struct {
	Name           string
	Email          string
	Password       string
	RestaurantName string
	Address        string
}

// Register creates the user and their restaurant, then issues a token.
func (s *Service) Register(ctx context.Context, in Registration) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.RestaurantName == "" {
		return "", apperror.NewInvalidInput("name, email and restaurantName are required")
	}
	if len(in.Password) < 8 {
		return "", apperror.NewInvalidInput("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternal(err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return "", err
	}

	restaurant := &models.Restaurant{
		Name:    in.RestaurantName,
		Owner:   user.ID,
		Address: in.Address,
	}
	if err := s.store.CreateRestaurant(ctx, restaurant); err != nil {
		return "", err
	}

	s.logger.Info("account registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("restaurant_id", restaurant.ID.Hex()))

	return s.tokens.Issue(user.ID.Hex())
}

// Login verifies credentials and issues a token. Lookup failures and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return "", apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorized("invalid credentials")
	}

	return s.tokens.Issue(user.ID.Hex())
}

// Profile is the /me payload: the caller plus their restaurant's name.
type Profile struct {
	User           *models.User `json:"user"`
	RestaurantName string       `json:"restaurantName"`
}

// Me resolves the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.store.RestaurantByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, RestaurantName: restaurant.Name}, nil
}
