package suggestion

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

type fakeInventory struct {
	lots []models.InventoryLot
	err  error
}

func (f *fakeInventory) ExpiringWithin(_ context.Context, _ primitive.ObjectID, _ time.Time, _ int) ([]models.InventoryLot, error) {
	return f.lots, f.err
}

type fakeMenu struct {
	dishes []models.Dish
}

func (f *fakeMenu) Active(_ context.Context, _ primitive.ObjectID) ([]models.Dish, error) {
	return f.dishes, nil
}

type fakeGenerator struct {
	prompt   string
	response string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func expiringLot(name string) models.InventoryLot {
	return models.InventoryLot{
		ID:         primitive.NewObjectID(),
		ItemName:   name,
		Quantity:   500,
		Unit:       "grams",
		ExpiryDate: time.Now().AddDate(0, 0, 1),
	}
}

func TestSuggestHappyPath(t *testing.T) {
	gen := &fakeGenerator{
		response: "Tomato Soup: Slow-simmered soup: Tomatoes: 500: grams; " +
			"Bruschetta: Toasted bread with tomatoes: Tomatoes: 200: grams: Bread: 2: pieces",
	}
	svc := NewService(
		&fakeInventory{lots: []models.InventoryLot{expiringLot("Tomatoes")}},
		&fakeMenu{},
		gen, 1, nil,
	)

	result, err := svc.Suggest(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	require.Len(t, result.Dishes, 2)
	require.Len(t, result.Ingredients, 1)
	assert.Contains(t, gen.prompt, "Tomatoes")
}

func TestSuggestExcludesMenuDishesCaseInsensitively(t *testing.T) {
	gen := &fakeGenerator{
		response: "Tomato Soup: Slow-simmered soup: Tomatoes: 500: grams; " +
			"Bruschetta: Toasted bread with tomatoes: Tomatoes: 200: grams",
	}
	svc := NewService(
		&fakeInventory{lots: []models.InventoryLot{expiringLot("Tomatoes")}},
		&fakeMenu{dishes: []models.Dish{{Name: "TOMATO SOUP"}}},
		gen, 1, nil,
	)

	result, err := svc.Suggest(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	require.Len(t, result.Dishes, 1)
	assert.Equal(t, "Bruschetta", result.Dishes[0].DishName)
}

func TestSuggestNothingExpiringReturnsEmptyResult(t *testing.T) {
	svc := NewService(&fakeInventory{}, &fakeMenu{}, &fakeGenerator{}, 1, nil)

	result, err := svc.Suggest(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.Empty(t, result.Dishes)
	assert.Empty(t, result.Ingredients)
}

func TestSuggestWithoutGeneratorIsUnavailable(t *testing.T) {
	svc := NewService(&fakeInventory{lots: []models.InventoryLot{expiringLot("Tomatoes")}}, &fakeMenu{}, nil, 1, nil)

	_, err := svc.Suggest(context.Background(), primitive.NewObjectID())

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeServiceUnavailable, ae.Code)
	assert.Equal(t, http.StatusServiceUnavailable, ae.HTTPStatus)
}

func TestSuggestGeneratorFailureWrapsUpstreamError(t *testing.T) {
	svc := NewService(
		&fakeInventory{lots: []models.InventoryLot{expiringLot("Tomatoes")}},
		&fakeMenu{},
		&fakeGenerator{err: errors.New("quota exceeded")}, 1, nil,
	)

	_, err := svc.Suggest(context.Background(), primitive.NewObjectID())

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeUpstreamService, ae.Code)
}

func TestSuggestUnparseableResponseIsUpstreamError(t *testing.T) {
	svc := NewService(
		&fakeInventory{lots: []models.InventoryLot{expiringLot("Tomatoes")}},
		&fakeMenu{},
		&fakeGenerator{response: "sorry, I cannot help with that"}, 1, nil,
	)

	_, err := svc.Suggest(context.Background(), primitive.NewObjectID())

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeUpstreamService, ae.Code)
}
