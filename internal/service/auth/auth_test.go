package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

type fakeStore struct {
	users       map[string]*models.User
	restaurants map[primitive.ObjectID]*models.Restaurant
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*models.User),
		restaurants: make(map[primitive.ObjectID]*models.Restaurant),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	if _, exists := f.users[u.Email]; exists {
		return apperror.NewInvalidInput("email already registered")
	}
	u.ID = primitive.NewObjectID()
	f.users[u.Email] = u
	return nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (f *fakeStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", id.Hex())
}

func (f *fakeStore) CreateRestaurant(_ context.Context, r *models.Restaurant) error {
	r.ID = primitive.NewObjectID()
	f.restaurants[r.Owner] = r
	return nil
}

func (f *fakeStore) RestaurantByOwner(_ context.Context, owner primitive.ObjectID) (*models.Restaurant, error) {
	r, ok := f.restaurants[owner]
	if !ok {
		return nil, apperror.NewNotFound("restaurant", owner.Hex())
	}
	return r, nil
}

func registration() Registration {
	return Registration{
		Name:           "Ada",
		Email:          "ada@example.com",
		Password:       "correct horse",
		RestaurantName: "Chez Ada",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("6600aa0000000000000000ff")
	require.NoError(t, err)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "6600aa0000000000000000ff", userID)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("user")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret").Verify("not.a.token")
	assert.Error(t, err)
}

func TestRegisterCreatesUserAndRestaurant(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, NewTokenManager("secret"), nil)

	token, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	user, ok := store.users["ada@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	restaurant, err := store.RestaurantByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chez Ada", restaurant.Name)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, NewTokenManager("secret"), nil)

	in := registration()
	in.Email = "  Ada@Example.COM "
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, ok := store.users["ada@example.com"]
	assert.True(t, ok)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newFakeStore(), NewTokenManager("secret"), nil)

	in := registration()
	in.Password = "short"
	_, err := svc.Register(context.Background(), in)

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeInvalidInput, ae.Code)
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeStore()
	tm := NewTokenManager("secret")
	svc := NewService(store, tm, nil)

	_, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, store.users["ada@example.com"].ID.Hex(), userID)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, NewTokenManager("secret"), nil)

	_, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeUnauthorized, ae.Code)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc := NewService(newFakeStore(), NewTokenManager("secret"), nil)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeUnauthorized, ae.Code)
}
