// Package menu manages the dish catalog, including time-boxed ephemeral
// dishes produced by the suggestion pipeline.
package menu

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface the menu service needs.
type Store interface {
	InsertDish(ctx context.Context, d *models.Dish) error
	ActiveDishes(ctx context.Context, restaurant primitive.ObjectID, at time.Time) ([]models.Dish, error)
	UpdateDish(ctx context.Context, restaurant, id primitive.ObjectID, upd *models.Dish) (*models.Dish, error)
	DeleteDish(ctx context.Context, restaurant, id primitive.ObjectID) error
}

// Service exposes dish CRUD.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new menu service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// NewDish describes a dish being added to the menu.
type NewDish struct {
	Name               string
	Ingredients        []models.Ingredient
	Price              float64
	Category           string
	PrepTime           int
	Allergens          []string
	Description        string
	IsEphemeral        bool
	EphemeralExpiresAt *time.Time
}

func (in NewDish) validate() error {
	if in.Name == "" {
		return apperror.NewInvalidInput("dish name is required")
	}
	if len(in.Ingredients) == 0 {
		return apperror.NewInvalidInput("dish must have at least one ingredient")
	}
	for _, ing := range in.Ingredients {
		if ing.Name == "" || ing.Quantity <= 0 || ing.Unit == "" {
			return apperror.NewInvalidInput("every ingredient needs a name, a positive quantity and a unit")
		}
	}
	if in.Price < 0 {
		return apperror.NewInvalidInput("price must not be negative")
	}
	return nil
}

// Add creates a dish. Manually added dishes go on the menu immediately.
func (s *Service) Add(ctx context.Context, restaurant primitive.ObjectID, in NewDish) (*models.Dish, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	dish := &models.Dish{
		Restaurant:   restaurant,
		Name:         in.Name,
		Ingredients:  in.Ingredients,
		Price:        in.Price,
		ActiveOnMenu: true,
		Category:     in.Category,
		PrepTime:     in.PrepTime,
		Allergens:    in.Allergens,
		Description:  in.Description,
		IsEphemeral:  in.IsEphemeral,
	}
	if in.IsEphemeral {
		dish.EphemeralExpiresAt = in.EphemeralExpiresAt
	}

	if err := s.store.InsertDish(ctx, dish); err != nil {
		return nil, err
	}

	s.logger.Info("dish added", zap.String("dish_id", dish.ID.Hex()), zap.String("name", dish.Name))
	return dish, nil
}

// AddEphemeralBatch inserts suggestion-derived dishes, each expiring one day
// from now.
func (s *Service) AddEphemeralBatch(ctx context.Context, restaurant primitive.ObjectID, in []NewDish) ([]primitive.ObjectID, error) {
	if len(in) == 0 {
		return nil, apperror.NewInvalidInput("expected a non-empty array of dishes")
	}

	expiry := time.Now().AddDate(0, 0, 1)
	ids := make([]primitive.ObjectID, 0, len(in))

	for _, nd := range in {
		nd.IsEphemeral = true
		nd.EphemeralExpiresAt = &expiry

		dish, err := s.Add(ctx, restaurant, nd)
		if err != nil {
			return nil, err
		}
		ids = append(ids, dish.ID)
	}

	return ids, nil
}

// Active lists the dishes currently on the menu.
func (s *Service) Active(ctx context.Context, restaurant primitive.ObjectID) ([]models.Dish, error) {
	return s.store.ActiveDishes(ctx, restaurant, time.Now())
}

// Update replaces a dish's editable fields.
func (s *Service) Update(ctx context.Context, restaurant, id primitive.ObjectID, in NewDish) (*models.Dish, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	upd := &models.Dish{
		Name:        in.Name,
		Ingredients: in.Ingredients,
		Price:       in.Price,
		Category:    in.Category,
		PrepTime:    in.PrepTime,
		Allergens:   in.Allergens,
		Description: in.Description,
		IsEphemeral: in.IsEphemeral,
	}
	if in.IsEphemeral {
		upd.EphemeralExpiresAt = in.EphemeralExpiresAt
	}

	return s.store.UpdateDish(ctx, restaurant, id, upd)
}

// Delete removes a dish from the catalog.
func (s *Service) Delete(ctx context.Context, restaurant, id primitive.ObjectID) error {
	return s.store.DeleteDish(ctx, restaurant, id)
}
