// Package profitloss computes the day-window profit figure and keeps its
// append-only history.
package profitloss

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface the aggregator needs.
type Store interface {
	SalesInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.Sale, error)
	LotsPurchasedInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.InventoryLot, error)
	WasteInWindow(ctx context.Context, restaurant primitive.ObjectID, start, end time.Time) ([]models.WasteRecord, error)
	InsertProfitLoss(ctx context.Context, rec *models.ProfitLossRecord) error
	ListProfitLoss(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.ProfitLossRecord, error)
}

// Service computes and persists profit/loss records.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new profit/loss service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Compute aggregates the day containing at and appends one record:
//
//	profit = totalIncome - (totalInventoryCost + totalWasteCost)
//
// totalInventoryCost is the procurement cost of lots purchased that day
// (quantity × purchasePrice), not cost of goods sold.
func (s *Service) Compute(ctx context.Context, restaurant primitive.ObjectID, at time.Time) (*models.ProfitLossRecord, error) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	end := start.Add(24*time.Hour - time.Millisecond)

	sales, err := s.store.SalesInWindow(ctx, restaurant, start, end)
	if err != nil {
		return nil, err
	}
	var totalIncome float64
	for _, sale := range sales {
		totalIncome += sale.TotalSales
	}

	lots, err := s.store.LotsPurchasedInWindow(ctx, restaurant, start, end)
	if err != nil {
		return nil, err
	}
	var totalInventoryCost float64
	for _, lot := range lots {
		totalInventoryCost += lot.Quantity * lot.PurchasePrice
	}

	wasteRecords, err := s.store.WasteInWindow(ctx, restaurant, start, end)
	if err != nil {
		return nil, err
	}
	var totalWasteCost float64
	for _, w := range wasteRecords {
		totalWasteCost += w.Cost
	}

	rec := &models.ProfitLossRecord{
		Restaurant:         restaurant,
		Date:               at,
		TotalIncome:        totalIncome,
		TotalInventoryCost: totalInventoryCost,
		TotalWasteCost:     totalWasteCost,
		Profit:             totalIncome - (totalInventoryCost + totalWasteCost),
	}
	if err := s.store.InsertProfitLoss(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("profit/loss computed",
		zap.Float64("income", rec.TotalIncome),
		zap.Float64("inventory_cost", rec.TotalInventoryCost),
		zap.Float64("waste_cost", rec.TotalWasteCost),
		zap.Float64("profit", rec.Profit))

	return rec, nil
}

// History returns profit/loss records, optionally bounded by a date range.
func (s *Service) History(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.ProfitLossRecord, error) {
	return s.store.ListProfitLoss(ctx, restaurant, from, to)
}
