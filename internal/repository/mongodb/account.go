package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// CreateUser inserts a new user account.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	ts := now()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = ts
	u.UpdatedAt = ts

	if _, err := s.coll(collUsers).InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewInvalidInput("email already registered")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByEmail looks a user up by email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.coll(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// UserByID looks a user up by id.
func (s *Store) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.coll(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("user", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// CreateRestaurant inserts a new restaurant owned by a user.
func (s *Store) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	ts := now()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = ts
	r.UpdatedAt = ts

	if _, err := s.coll(collRestaurants).InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// RestaurantByOwner resolves the restaurant owned by the given user. Every
// authenticated request goes through this lookup; it is the tenancy boundary.
func (s *Store) RestaurantByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.coll(collRestaurants).FindOne(ctx, bson.M{"owner": owner}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("restaurant", owner.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant by owner: %w", err)
	}
	return &r, nil
}

// ListRestaurants returns every restaurant. Used by the nightly scheduler.
func (s *Store) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	cur, err := s.coll(collRestaurants).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	var out []models.Restaurant
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	return out, nil
}
