package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/resto/internal/domain/models"
)

// InsertSale persists a recorded sale. Sales are immutable after insert.
func (s *Store) InsertSale(ctx context.Context, sale *models.Sale) error {
	ts := now()
	sale.ID = primitive.NewObjectID()
	sale.CreatedAt = ts
	sale.UpdatedAt = ts
	if sale.SaleDate.IsZero() {
		sale.SaleDate = ts
	}

	if _, err := s.coll(collSales).InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListSales returns sale history, newest first, optionally bounded by a
// saleDate range.
func (s *Store) ListSales(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.Sale, error) {
	filter := bson.M{"restaurant": restaurant}
	if from != nil && to != nil {
		filter["saleDate"] = bson.M{"$gte": *from, "$lte": *to}
	}

	cur, err := s.coll(collSales).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "saleDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var out []models.Sale
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return out, nil
}

// SalesInWindow returns sales created inside [start, end]. Feeds the
// profit/loss income sum.
func (s *Store) SalesInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.Sale, error) {
	cur, err := s.coll(collSales).Find(ctx, bson.M{
		"restaurant": restaurant,
		"createdAt":  bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, fmt.Errorf("find sales in window: %w", err)
	}
	var out []models.Sale
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sales in window: %w", err)
	}
	return out, nil
}
