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

	"github.com/mamadbah2/resto/internal/domain/models"
)

// InsertWaste persists an inventory write-off.
func (s *Store) InsertWaste(ctx context.Context, w *models.WasteRecord) error {
	ts := now()
	w.ID = primitive.NewObjectID()
	w.CreatedAt = ts
	w.UpdatedAt = ts
	if w.Date.IsZero() {
		w.Date = ts
	}

	if _, err := s.coll(collWaste).InsertOne(ctx, w); err != nil {
		return fmt.Errorf("insert waste record: %w", err)
	}
	return nil
}

// ListWaste returns waste history, newest first, optionally bounded by a date
// range.
func (s *Store) ListWaste(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.WasteRecord, error) {
	filter := bson.M{"restaurant": restaurant}
	if from != nil && to != nil {
		filter["date"] = bson.M{"$gte": *from, "$lte": *to}
	}

	cur, err := s.coll(collWaste).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list waste records: %w", err)
	}
	var out []models.WasteRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode waste records: %w", err)
	}
	return out, nil
}

// WasteInWindow returns write-offs dated inside [start, end].
func (s *Store) WasteInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.WasteRecord, error) {
	cur, err := s.coll(collWaste).Find(ctx, bson.M{
		"restaurant": restaurant,
		"date":       bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, fmt.Errorf("find waste in window: %w", err)
	}
	var out []models.WasteRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode waste in window: %w", err)
	}
	return out, nil
}

// InsertProfitLoss appends a profit/loss record.
func (s *Store) InsertProfitLoss(ctx context.Context, rec *models.ProfitLossRecord) error {
	ts := now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = ts
	rec.UpdatedAt = ts

	if _, err := s.coll(collProfitLoss).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert profit/loss record: %w", err)
	}
	return nil
}

// ListProfitLoss returns profit/loss history, newest first, optionally
// bounded by a date range.
func (s *Store) ListProfitLoss(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.ProfitLossRecord, error) {
	filter := bson.M{"restaurant": restaurant}
	if from != nil && to != nil {
		filter["date"] = bson.M{"$gte": *from, "$lte": *to}
	}

	cur, err := s.coll(collProfitLoss).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list profit/loss records: %w", err)
	}
	var out []models.ProfitLossRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode profit/loss records: %w", err)
	}
	return out, nil
}

// LatestProfit returns the profit figure of the most recent record, or zero
// when none exists yet.
func (s *Store) LatestProfit(ctx context.Context, restaurant primitive.ObjectID) (float64, error) {
	var rec models.ProfitLossRecord
	err := s.coll(collProfitLoss).FindOne(ctx,
		bson.M{"restaurant": restaurant},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find latest profit/loss: %w", err)
	}
	return rec.Profit, nil
}

// UpsertHistoryDish increments the archival sales counters for an ephemeral
// dish, creating the archive entry on first sale.
func (s *Store) UpsertHistoryDish(ctx context.Context, restaurant primitive.ObjectID, dish *models.Dish, revenue float64, quantity int) error {
	ts := now()
	_, err := s.coll(collHistory).UpdateOne(ctx,
		bson.M{"restaurant": restaurant, "dishId": dish.ID},
		bson.M{
			"$inc": bson.M{
				"totalSales":        revenue,
				"totalQuantitySold": quantity,
			},
			"$set": bson.M{"updatedAt": ts},
			"$setOnInsert": bson.M{
				"restaurant":  restaurant,
				"dishId":      dish.ID,
				"name":        dish.Name,
				"ingredients": dish.Ingredients,
				"price":       dish.Price,
				"category":    dish.Category,
				"prepTime":    dish.PrepTime,
				"allergens":   dish.Allergens,
				"description": dish.Description,
				"isEphemeral": true,
				"createdAt":   ts,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert history dish: %w", err)
	}
	return nil
}
