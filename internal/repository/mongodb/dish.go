package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// InsertDish adds a dish to the menu catalog.
func (s *Store) InsertDish(ctx context.Context, d *models.Dish) error {
	ts := now()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = ts
	d.UpdatedAt = ts

	if _, err := s.coll(collDishes).InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert dish: %w", err)
	}
	return nil
}

// ActiveDishes lists the dishes currently on the menu. Ephemeral dishes past
// their expiry are filtered out even if the TTL monitor has not removed them
// yet.
func (s *Store) ActiveDishes(ctx context.Context, restaurant primitive.ObjectID, at time.Time) ([]models.Dish, error) {
	filter := bson.M{
		"restaurant":   restaurant,
		"activeOnMenu": true,
		"$or": bson.A{
			bson.M{"ephemeralExpiresAt": bson.M{"$exists": false}},
			bson.M{"ephemeralExpiresAt": nil},
			bson.M{"ephemeralExpiresAt": bson.M{"$gt": at}},
		},
	}
	cur, err := s.coll(collDishes).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list active dishes: %w", err)
	}
	var out []models.Dish
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode dishes: %w", err)
	}
	return out, nil
}

// DishByID fetches one dish, restaurant-scoped.
func (s *Store) DishByID(ctx context.Context, restaurant, id primitive.ObjectID) (*models.Dish, error) {
	var d models.Dish
	err := s.coll(collDishes).FindOne(ctx, bson.M{"_id": id, "restaurant": restaurant}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("menu item", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find dish: %w", err)
	}
	return &d, nil
}

// UpdateDish replaces the caller-editable fields of a dish and returns the
// updated document.
func (s *Store) UpdateDish(ctx context.Context, restaurant, id primitive.ObjectID, upd *models.Dish) (*models.Dish, error) {
	set := bson.M{
		"name":               upd.Name,
		"ingredients":        upd.Ingredients,
		"price":              upd.Price,
		"category":           upd.Category,
		"prepTime":           upd.PrepTime,
		"allergens":          upd.Allergens,
		"description":        upd.Description,
		"isEphemeral":        upd.IsEphemeral,
		"ephemeralExpiresAt": upd.EphemeralExpiresAt,
		"updatedAt":          now(),
	}

	var d models.Dish
	err := s.coll(collDishes).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "restaurant": restaurant},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("menu item", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return &d, nil
}

// DeleteDish removes a dish from the catalog.
func (s *Store) DeleteDish(ctx context.Context, restaurant, id primitive.ObjectID) error {
	res, err := s.coll(collDishes).DeleteOne(ctx, bson.M{"_id": id, "restaurant": restaurant})
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("menu item", id.Hex())
	}
	return nil
}

// DeleteExpiredEphemeral drops ephemeral dishes whose expiry has passed.
// Backstop for deployments where the store's TTL monitor is disabled.
func (s *Store) DeleteExpiredEphemeral(ctx context.Context, at time.Time) (int64, error) {
	res, err := s.coll(collDishes).DeleteMany(ctx, bson.M{
		"isEphemeral":        true,
		"ephemeralExpiresAt": bson.M{"$ne": nil, "$lte": at},
	})
	if err != nil {
		return 0, fmt.Errorf("sweep expired dishes: %w", err)
	}
	return res.DeletedCount, nil
}
