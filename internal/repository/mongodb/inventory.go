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

// InsertLot adds a purchased inventory lot.
func (s *Store) InsertLot(ctx context.Context, lot *models.InventoryLot) error {
	ts := now()
	lot.ID = primitive.NewObjectID()
	lot.CreatedAt = ts
	lot.UpdatedAt = ts
	if lot.PurchaseDate.IsZero() {
		lot.PurchaseDate = ts
	}

	if _, err := s.coll(collInventory).InsertOne(ctx, lot); err != nil {
		return fmt.Errorf("insert inventory lot: %w", err)
	}
	return nil
}

// ListLots returns every lot held by a restaurant.
func (s *Store) ListLots(ctx context.Context, restaurant primitive.ObjectID) ([]models.InventoryLot, error) {
	cur, err := s.coll(collInventory).Find(ctx, bson.M{"restaurant": restaurant})
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	var out []models.InventoryLot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return out, nil
}

// LotByID fetches one lot, restaurant-scoped.
func (s *Store) LotByID(ctx context.Context, restaurant, id primitive.ObjectID) (*models.InventoryLot, error) {
	var lot models.InventoryLot
	err := s.coll(collInventory).FindOne(ctx, bson.M{"_id": id, "restaurant": restaurant}).Decode(&lot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("inventory item", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find inventory lot: %w", err)
	}
	return &lot, nil
}

// UpdateLot replaces the caller-editable fields of a lot and returns the
// updated document.
func (s *Store) UpdateLot(ctx context.Context, restaurant, id primitive.ObjectID, upd models.LotUpdate) (*models.InventoryLot, error) {
	after := options.After
	var lot models.InventoryLot
	err := s.coll(collInventory).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "restaurant": restaurant},
		bson.M{"$set": bson.M{
			"itemName":      upd.ItemName,
			"quantity":      upd.Quantity,
			"unit":          upd.Unit,
			"purchasePrice": upd.PurchasePrice,
			"expiryDate":    upd.ExpiryDate,
			"updatedAt":     now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&lot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFound("inventory item", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory lot: %w", err)
	}
	return &lot, nil
}

// DeleteLot removes a lot entirely, restaurant-scoped.
func (s *Store) DeleteLot(ctx context.Context, restaurant, id primitive.ObjectID) error {
	res, err := s.coll(collInventory).DeleteOne(ctx, bson.M{"_id": id, "restaurant": restaurant})
	if err != nil {
		return fmt.Errorf("delete inventory lot: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("inventory item", id.Hex())
	}
	return nil
}

// LotsByItem returns every lot of one ingredient, oldest purchase first.
// Lots sharing a purchase date come back in _id order so the FIFO walk has a
// stable tie-break.
func (s *Store) LotsByItem(ctx context.Context, restaurant primitive.ObjectID, itemName string) ([]models.InventoryLot, error) {
	cur, err := s.coll(collInventory).Find(ctx,
		bson.M{"restaurant": restaurant, "itemName": itemName},
		options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find lots for %s: %w", itemName, err)
	}
	var out []models.InventoryLot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode lots for %s: %w", itemName, err)
	}
	return out, nil
}

// LotsPurchasedInWindow returns lots whose purchaseDate falls inside
// [start, end]. Feeds the profit/loss procurement-cost sum.
func (s *Store) LotsPurchasedInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.InventoryLot, error) {
	cur, err := s.coll(collInventory).Find(ctx, bson.M{
		"restaurant":   restaurant,
		"purchaseDate": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, fmt.Errorf("find purchased lots: %w", err)
	}
	var out []models.InventoryLot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode purchased lots: %w", err)
	}
	return out, nil
}

// DecrementLot subtracts qty from a lot, guarded by quantity >= qty so two
// concurrent consumers cannot drive the remainder below zero. A write that
// matches nothing means the lot changed (or vanished) since it was planned.
func (s *Store) DecrementLot(ctx context.Context, id primitive.ObjectID, qty float64) error {
	res, err := s.coll(collInventory).UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"quantity": -qty},
			"$set": bson.M{"updatedAt": now()},
		},
	)
	if err != nil {
		return fmt.Errorf("decrement lot: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConcurrentModification("inventory lot was modified by a concurrent request")
	}
	return nil
}

// ConsumeLot deletes a fully consumed lot. The filter requires the quantity
// to still equal the amount the plan accounted for, so a racing partial
// consumption turns the delete into a conflict instead of silently dropping
// stock the plan never claimed.
func (s *Store) ConsumeLot(ctx context.Context, id primitive.ObjectID, qty float64) error {
	res, err := s.coll(collInventory).DeleteOne(ctx, bson.M{"_id": id, "quantity": qty})
	if err != nil {
		return fmt.Errorf("consume lot: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewConcurrentModification("inventory lot was modified by a concurrent request")
	}
	return nil
}
