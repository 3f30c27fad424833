package waste

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
	lot *models.InventoryLot

	decremented []float64
	consumed    []float64
	inserted    []*models.WasteRecord
}

func (f *fakeStore) LotByID(_ context.Context, _ primitive.ObjectID, id primitive.ObjectID) (*models.InventoryLot, error) {
	if f.lot == nil || f.lot.ID != id {
		return nil, apperror.NewNotFound("inventory lot", id.Hex())
	}
	return f.lot, nil
}

func (f *fakeStore) DecrementLot(_ context.Context, _ primitive.ObjectID, qty float64) error {
	f.decremented = append(f.decremented, qty)
	return nil
}

func (f *fakeStore) ConsumeLot(_ context.Context, _ primitive.ObjectID, qty float64) error {
	f.consumed = append(f.consumed, qty)
	return nil
}

func (f *fakeStore) InsertWaste(_ context.Context, w *models.WasteRecord) error {
	f.inserted = append(f.inserted, w)
	return nil
}

func (f *fakeStore) ListWaste(_ context.Context, _ primitive.ObjectID, _, _ *time.Time) ([]models.WasteRecord, error) {
	out := make([]models.WasteRecord, 0, len(f.inserted))
	for _, w := range f.inserted {
		out = append(out, *w)
	}
	return out, nil
}

func storeWithLot(qty, price float64) (*fakeStore, primitive.ObjectID) {
	id := primitive.NewObjectID()
	return &fakeStore{lot: &models.InventoryLot{
		ID:            id,
		ItemName:      "Milk",
		Quantity:      qty,
		Unit:          "liters",
		PurchasePrice: price,
	}}, id
}

func TestRecordSnapshotsLotAndBooksCost(t *testing.T) {
	store, lotID := storeWithLot(10, 1.5)
	svc := NewService(store, nil)

	rec, err := svc.Record(context.Background(), primitive.NewObjectID(), WriteOff{
		LotID:    lotID,
		Quantity: 4,
		Reason:   models.WasteSpoiled,
	})
	require.NoError(t, err)

	assert.Equal(t, "Milk", rec.ItemName)
	assert.Equal(t, "liters", rec.Unit)
	assert.Equal(t, 1.5, rec.Price)
	assert.Equal(t, 6.0, rec.Cost)
	require.NotNil(t, rec.InventoryItem)
	assert.Equal(t, lotID, *rec.InventoryItem)

	require.Len(t, store.decremented, 1)
	assert.Equal(t, 4.0, store.decremented[0])
	assert.Empty(t, store.consumed)
}

func TestRecordExactQuantityDeletesTheLot(t *testing.T) {
	store, lotID := storeWithLot(10, 1.5)
	svc := NewService(store, nil)

	_, err := svc.Record(context.Background(), primitive.NewObjectID(), WriteOff{
		LotID:    lotID,
		Quantity: 10,
		Reason:   models.WasteExpired,
	})
	require.NoError(t, err)

	require.Len(t, store.consumed, 1)
	assert.Equal(t, 10.0, store.consumed[0])
	assert.Empty(t, store.decremented)
}

func TestRecordOverdrawIsRejected(t *testing.T) {
	store, lotID := storeWithLot(5, 1.5)
	svc := NewService(store, nil)

	_, err := svc.Record(context.Background(), primitive.NewObjectID(), WriteOff{
		LotID:    lotID,
		Quantity: 6,
		Reason:   models.WasteSpoiled,
	})

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeInsufficientStock, ae.Code)
	assert.Empty(t, store.decremented)
	assert.Empty(t, store.consumed)
	assert.Empty(t, store.inserted)
}

func TestRecordValidation(t *testing.T) {
	store, lotID := storeWithLot(5, 1.5)
	svc := NewService(store, nil)

	tests := []struct {
		name string
		in   WriteOff
	}{
		{name: "zero quantity", in: WriteOff{LotID: lotID, Quantity: 0, Reason: models.WasteSpoiled}},
		{name: "negative quantity", in: WriteOff{LotID: lotID, Quantity: -1, Reason: models.WasteSpoiled}},
		{name: "unknown reason", in: WriteOff{LotID: lotID, Quantity: 1, Reason: "evaporated"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), primitive.NewObjectID(), tc.in)

			var ae *apperror.AppError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperror.CodeInvalidInput, ae.Code)
		})
	}
}

func TestRecordUnknownLotIsNotFound(t *testing.T) {
	store, _ := storeWithLot(5, 1.5)
	svc := NewService(store, nil)

	_, err := svc.Record(context.Background(), primitive.NewObjectID(), WriteOff{
		LotID:    primitive.NewObjectID(),
		Quantity: 1,
		Reason:   models.WasteSpoiled,
	})

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeNotFound, ae.Code)
}
