// Package dashboard assembles the read-only rollups the UI renders.
package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/domain/models"
)

// trendDays is how many calendar days the sales trend covers.
const trendDays = 10

// categoryColors maps inventory categories to chart colors.
var categoryColors = map[string]string{
	"Produce":   "#4CAF50",
	"Meat":      "#F44336",
	"Dairy":     "#2196F3",
	"Grains":    "#FF9800",
	"Beverages": "#9C27B0",
}

// fallbackColor is used for categories outside the fixed palette.
const fallbackColor = "#607D8B"

// Store is the aggregation surface the dashboard needs.
type Store interface {
	TotalRevenue(ctx context.Context, restaurant primitive.ObjectID) (float64, error)
	InventoryValuation(ctx context.Context, restaurant primitive.ObjectID) (value, items float64, err error)
	MenuItemsSold(ctx context.Context, restaurant primitive.ObjectID) (int, error)
	LatestProfit(ctx context.Context, restaurant primitive.ObjectID) (float64, error)
	SalesLastDays(ctx context.Context, restaurant primitive.ObjectID, days int) ([]models.SalesPoint, error)
	InventoryByCategory(ctx context.Context, restaurant primitive.ObjectID) ([]models.CategoryValue, error)
}

// Service builds the dashboard rollup. Pure reads, no side effects.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new dashboard service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Build assembles the full rollup for one restaurant.
func (s *Service) Build(ctx context.Context, restaurant primitive.ObjectID) (*models.Dashboard, error) {
	totalRevenue, err := s.store.TotalRevenue(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	inventoryValue, inventoryItems, err := s.store.InventoryValuation(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	itemsSold, err := s.store.MenuItemsSold(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	profit, err := s.store.LatestProfit(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	trend, err := s.store.SalesLastDays(ctx, restaurant, trendDays)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.store.InventoryByCategory(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		TotalRevenue:    totalRevenue,
		InventoryValue:  inventoryValue,
		InventoryItems:  inventoryItems,
		MenuItemsSold:   itemsSold,
		ProfitLoss:      profit,
		SalesData:       trend,
		InventoryStatus: Colorize(byCategory),
	}, nil
}

// Colorize assigns the fixed palette to category values, falling back for
// unknown categories.
func Colorize(in []models.CategoryValue) []models.CategoryValue {
	out := make([]models.CategoryValue, len(in))
	for i, cv := range in {
		color, ok := categoryColors[cv.Name]
		if !ok {
			color = fallbackColor
		}
		cv.Color = color
		out[i] = cv
	}
	return out
}
