// Package inventory manages purchased ingredient lots.
package inventory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface the inventory service needs.
type Store interface {
	InsertLot(ctx context.Context, lot *models.InventoryLot) error
	ListLots(ctx context.Context, restaurant primitive.ObjectID) ([]models.InventoryLot, error)
	UpdateLot(ctx context.Context, restaurant, id primitive.ObjectID, upd models.LotUpdate) (*models.InventoryLot, error)
	DeleteLot(ctx context.Context, restaurant, id primitive.ObjectID) error
}

// Service exposes lot CRUD and expiry scans.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// NewLot describes a purchase entry. ExpiryDays is relative to now, matching
// the API contract.
type NewLot struct {
	ItemName      string
	Quantity      float64
	Unit          string
	Category      string
	PurchasePrice float64
	ExpiryDays    int
	EnteredBy     string
}

// Add creates a lot for a fresh purchase.
func (s *Service) Add(ctx context.Context, restaurant primitive.ObjectID, in NewLot) (*models.InventoryLot, error) {
	if in.ItemName == "" || in.Unit == "" {
		return nil, apperror.NewInvalidInput("itemName and unit are required")
	}
	if in.Quantity <= 0 {
		return nil, apperror.NewInvalidInput("quantity must be positive")
	}
	if in.PurchasePrice < 0 {
		return nil, apperror.NewInvalidInput("purchasePrice must not be negative")
	}

	enteredBy := in.EnteredBy
	if enteredBy == "" {
		enteredBy = "chef"
	}

	lot := &models.InventoryLot{
		Restaurant:    restaurant,
		ItemName:      in.ItemName,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		Category:      in.Category,
		PurchasePrice: in.PurchasePrice,
		ExpiryDate:    time.Now().AddDate(0, 0, in.ExpiryDays),
		EnteredBy:     enteredBy,
	}
	if err := s.store.InsertLot(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("inventory lot added",
		zap.String("lot_id", lot.ID.Hex()),
		zap.String("item", lot.ItemName),
		zap.Float64("quantity", lot.Quantity))

	return lot, nil
}

// List returns every lot the restaurant holds.
func (s *Service) List(ctx context.Context, restaurant primitive.ObjectID) ([]models.InventoryLot, error) {
	return s.store.ListLots(ctx, restaurant)
}

// Update replaces a lot's editable fields.
func (s *Service) Update(ctx context.Context, restaurant, id primitive.ObjectID, upd models.LotUpdate) (*models.InventoryLot, error) {
	if upd.Quantity < 0 {
		return nil, apperror.NewInvalidInput("quantity must not be negative")
	}
	return s.store.UpdateLot(ctx, restaurant, id, upd)
}

// Delete removes a lot entirely.
func (s *Service) Delete(ctx context.Context, restaurant, id primitive.ObjectID) error {
	return s.store.DeleteLot(ctx, restaurant, id)
}

// ExpiringWithin returns the lots whose expiry date, normalized to midnight,
// is exactly windowDays calendar days after today.
func (s *Service) ExpiringWithin(ctx context.Context, restaurant primitive.ObjectID, today time.Time, windowDays int) ([]models.InventoryLot, error) {
	lots, err := s.store.ListLots(ctx, restaurant)
	if err != nil {
		return nil, err
	}
	return FilterExpiring(lots, today, windowDays), nil
}

// FilterExpiring keeps lots expiring exactly windowDays after today. The
// comparison is by calendar date, so DST transitions shortening or stretching
// a day do not shift the window.
func FilterExpiring(lots []models.InventoryLot, today time.Time, windowDays int) []models.InventoryLot {
	target := startOfDay(today).AddDate(0, 0, windowDays)

	var out []models.InventoryLot
	for _, lot := range lots {
		expiry := lot.ExpiryDate.In(today.Location())
		if expiry.Year() == target.Year() && expiry.Month() == target.Month() && expiry.Day() == target.Day() {
			out = append(out, lot)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
