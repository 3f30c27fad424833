package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/resto/internal/domain/models"
)

// TotalRevenue sums totalSales over every sale the restaurant ever recorded.
func (s *Store) TotalRevenue(ctx context.Context, restaurant primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalSales"},
		}}},
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := s.aggregate(ctx, collSales, pipeline, &rows); err != nil {
		return 0, fmt.Errorf("total revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// InventoryValuation returns Σ quantity×purchasePrice and the total quantity
// held across all lots.
func (s *Store) InventoryValuation(ctx context.Context, restaurant primitive.ObjectID) (value, items float64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalValue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$quantity", "$purchasePrice"}}},
			"totalItems": bson.M{"$sum": "$quantity"},
		}}},
	}

	var rows []struct {
		TotalValue float64 `bson:"totalValue"`
		TotalItems float64 `bson:"totalItems"`
	}
	if err := s.aggregate(ctx, collInventory, pipeline, &rows); err != nil {
		return 0, 0, fmt.Errorf("inventory valuation: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].TotalValue, rows[0].TotalItems, nil
}

// MenuItemsSold counts dish portions sold across every sale (unwind + sum).
func (s *Store) MenuItemsSold(ctx context.Context, restaurant primitive.ObjectID) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant}}},
		{{Key: "$unwind", Value: "$dishes"}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$dishes.quantity"},
		}}},
	}

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := s.aggregate(ctx, collSales, pipeline, &rows); err != nil {
		return 0, fmt.Errorf("menu items sold: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// SalesLastDays groups revenue by calendar day, keeping the most recent n
// days in ascending order.
func (s *Store) SalesLastDays(ctx context.Context, restaurant primitive.ObjectID, days int) ([]models.SalesPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"amount": bson.M{"$sum": "$totalSales"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: days}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []struct {
		Date   string  `bson:"_id"`
		Amount float64 `bson:"amount"`
	}
	if err := s.aggregate(ctx, collSales, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}

	out := make([]models.SalesPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SalesPoint{Date: r.Date, Amount: r.Amount})
	}
	return out, nil
}

// InventoryByCategory sums inventory value per category. Colors are assigned
// by the dashboard service, not here.
func (s *Store) InventoryByCategory(ctx context.Context, restaurant primitive.ObjectID) ([]models.CategoryValue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"value": bson.M{"$sum": bson.M{"$multiply": bson.A{"$quantity", "$purchasePrice"}}},
		}}},
	}

	var rows []struct {
		Name  string  `bson:"_id"`
		Value float64 `bson:"value"`
	}
	if err := s.aggregate(ctx, collInventory, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("inventory by category: %w", err)
	}

	out := make([]models.CategoryValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CategoryValue{Name: r.Name, Value: r.Value})
	}
	return out, nil
}

func (s *Store) aggregate(ctx context.Context, coll string, pipeline mongo.Pipeline, out any) error {
	cur, err := s.coll(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
