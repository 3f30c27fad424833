package menu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

type fakeStore struct {
	dishes []*models.Dish
}

func (f *fakeStore) InsertDish(_ context.Context, d *models.Dish) error {
	d.ID = primitive.NewObjectID()
	f.dishes = append(f.dishes, d)
	return nil
}

func (f *fakeStore) ActiveDishes(_ context.Context, _ primitive.ObjectID, at time.Time) ([]models.Dish, error) {
	var out []models.Dish
	for _, d := range f.dishes {
		if !d.ActiveOnMenu {
			continue
		}
		if d.EphemeralExpiresAt != nil && !d.EphemeralExpiresAt.After(at) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeStore) UpdateDish(_ context.Context, _ primitive.ObjectID, id primitive.ObjectID, upd *models.Dish) (*models.Dish, error) {
	for _, d := range f.dishes {
		if d.ID == id {
			upd.ID = id
			*d = *upd
			return d, nil
		}
	}
	return nil, apperror.NewNotFound("dish", id.Hex())
}

func (f *fakeStore) DeleteDish(_ context.Context, _ primitive.ObjectID, id primitive.ObjectID) error {
	for i, d := range f.dishes {
		if d.ID == id {
			f.dishes = append(f.dishes[:i], f.dishes[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("dish", id.Hex())
}

func validDish() NewDish {
	return NewDish{
		Name:        "Margherita",
		Price:       9.5,
		Ingredients: []models.Ingredient{{Name: "Cheese", Quantity: 100, Unit: "grams"}},
	}
}

func TestAddPutsDishOnTheMenu(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	dish, err := svc.Add(context.Background(), primitive.NewObjectID(), validDish())
	require.NoError(t, err)

	assert.True(t, dish.ActiveOnMenu)
	assert.False(t, dish.IsEphemeral)

	active, err := svc.Active(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestAddValidation(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	tests := []struct {
		name   string
		mutate func(*NewDish)
	}{
		{name: "missing name", mutate: func(d *NewDish) { d.Name = "" }},
		{name: "no ingredients", mutate: func(d *NewDish) { d.Ingredients = nil }},
		{name: "ingredient without unit", mutate: func(d *NewDish) { d.Ingredients[0].Unit = "" }},
		{name: "non-positive ingredient quantity", mutate: func(d *NewDish) { d.Ingredients[0].Quantity = 0 }},
		{name: "negative price", mutate: func(d *NewDish) { d.Price = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validDish()
			tc.mutate(&in)

			_, err := svc.Add(context.Background(), primitive.NewObjectID(), in)

			var ae *apperror.AppError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperror.CodeInvalidInput, ae.Code)
		})
	}
}

func TestAddEphemeralBatchSetsExpiry(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	ids, err := svc.AddEphemeralBatch(context.Background(), primitive.NewObjectID(), []NewDish{
		validDish(),
		{
			Name:        "Chef Special",
			Price:       14,
			Ingredients: []models.Ingredient{{Name: "Tomatoes", Quantity: 200, Unit: "grams"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	for _, d := range store.dishes {
		assert.True(t, d.IsEphemeral)
		require.NotNil(t, d.EphemeralExpiresAt)
		assert.True(t, d.EphemeralExpiresAt.After(time.Now()))
	}
}

func TestAddEphemeralBatchRejectsEmptyInput(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	_, err := svc.AddEphemeralBatch(context.Background(), primitive.NewObjectID(), nil)

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeInvalidInput, ae.Code)
}

func TestActiveHidesExpiredEphemerals(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	expired := time.Now().Add(-time.Hour)
	in := validDish()
	in.IsEphemeral = true
	in.EphemeralExpiresAt = &expired
	_, err := svc.Add(context.Background(), primitive.NewObjectID(), in)
	require.NoError(t, err)

	active, err := svc.Active(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUpdateKeepsEphemeralDish(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	expiry := time.Now().Add(12 * time.Hour)
	in := validDish()
	in.IsEphemeral = true
	in.EphemeralExpiresAt = &expiry
	dish, err := svc.Add(context.Background(), primitive.NewObjectID(), in)
	require.NoError(t, err)

	// Price correction on an ephemeral special must not make it permanent.
	in.Price = 12.5
	updated, err := svc.Update(context.Background(), primitive.NewObjectID(), dish.ID, in)
	require.NoError(t, err)

	assert.Equal(t, 12.5, updated.Price)
	assert.True(t, updated.IsEphemeral)
	require.NotNil(t, updated.EphemeralExpiresAt)
	assert.True(t, updated.EphemeralExpiresAt.Equal(expiry))
}

func TestUpdateDemotingEphemeralClearsExpiry(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	expiry := time.Now().Add(12 * time.Hour)
	in := validDish()
	in.IsEphemeral = true
	in.EphemeralExpiresAt = &expiry
	dish, err := svc.Add(context.Background(), primitive.NewObjectID(), in)
	require.NoError(t, err)

	in.IsEphemeral = false
	updated, err := svc.Update(context.Background(), primitive.NewObjectID(), dish.ID, in)
	require.NoError(t, err)

	assert.False(t, updated.IsEphemeral)
	assert.Nil(t, updated.EphemeralExpiresAt)
}

func TestDeleteRemovesDish(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	dish, err := svc.Add(context.Background(), primitive.NewObjectID(), validDish())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), primitive.NewObjectID(), dish.ID))

	active, err := svc.Active(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, active)
}
