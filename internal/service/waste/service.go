// Package waste records manual inventory write-offs and books their cost.
package waste

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface the waste recorder needs.
type Store interface {
	LotByID(ctx context.Context, restaurant, id primitive.ObjectID) (*models.InventoryLot, error)
	DecrementLot(ctx context.Context, id primitive.ObjectID, qty float64) error
	ConsumeLot(ctx context.Context, id primitive.ObjectID, qty float64) error
	InsertWaste(ctx context.Context, w *models.WasteRecord) error
	ListWaste(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.WasteRecord, error)
}

// Service writes off inventory and logs the cost.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new waste service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// WriteOff describes one manual waste entry against an inventory lot.
type WriteOff struct {
	LotID       primitive.ObjectID
	Quantity    float64
	Reason      models.WasteReason
	Description string
}

// Record deducts the written-off quantity from the lot and persists a waste
// record snapshotting the lot's name, unit and unit price, so later lot
// deletion or edits cannot corrupt historical waste cost.
func (s *Service) Record(ctx context.Context, restaurant primitive.ObjectID, in WriteOff) (*models.WasteRecord, error) {
	if in.Quantity <= 0 {
		return nil, apperror.NewInvalidInput("quantity must be positive")
	}
	if !models.ValidWasteReason(in.Reason) {
		return nil, apperror.NewInvalidInput("unknown waste reason")
	}

	lot, err := s.store.LotByID(ctx, restaurant, in.LotID)
	if err != nil {
		return nil, err
	}

	if in.Quantity > lot.Quantity {
		return nil, apperror.NewInsufficientStock(lot.ItemName, in.Quantity, lot.Quantity)
	}

	// Exhausted lots are deleted, never left at zero.
	if in.Quantity == lot.Quantity {
		err = s.store.ConsumeLot(ctx, lot.ID, in.Quantity)
	} else {
		err = s.store.DecrementLot(ctx, lot.ID, in.Quantity)
	}
	if err != nil {
		return nil, err
	}

	lotID := lot.ID
	rec := &models.WasteRecord{
		Restaurant:    restaurant,
		InventoryItem: &lotID,
		ItemName:      lot.ItemName,
		Price:         lot.PurchasePrice,
		Cost:          in.Quantity * lot.PurchasePrice,
		Quantity:      in.Quantity,
		Unit:          lot.Unit,
		Reason:        in.Reason,
		Description:   in.Description,
	}
	if err := s.store.InsertWaste(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("waste recorded",
		zap.String("item", rec.ItemName),
		zap.Float64("quantity", rec.Quantity),
		zap.Float64("cost", rec.Cost),
		zap.String("reason", string(rec.Reason)))

	return rec, nil
}

// History returns waste records, optionally bounded by a date range.
func (s *Service) History(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.WasteRecord, error) {
	return s.store.ListWaste(ctx, restaurant, from, to)
}
