package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/auth"
)

type fakeResolver struct {
	restaurant *models.Restaurant
}

func (f *fakeResolver) RestaurantByOwner(_ context.Context, owner primitive.ObjectID) (*models.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.Owner != owner {
		return nil, apperror.NewNotFound("restaurant", owner.Hex())
	}
	return f.restaurant, nil
}

func testEngine(tokens *auth.TokenManager, resolver RestaurantResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, resolver, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":       c.MustGet(CtxUserID).(primitive.ObjectID).Hex(),
			"restaurant": c.MustGet(CtxRestaurantID).(primitive.ObjectID).Hex(),
		})
	})
	return r
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	owner := primitive.NewObjectID()
	resolver := &fakeResolver{restaurant: &models.Restaurant{
		ID:    primitive.NewObjectID(),
		Owner: owner,
		Name:  "Chez Ada",
	}}

	token, err := tokens.Issue(owner.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	testEngine(tokens, resolver).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), owner.Hex())
	assert.Contains(t, rec.Body.String(), resolver.restaurant.ID.Hex())
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	testEngine(tokens, &fakeResolver{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	forged, err := auth.NewTokenManager("other-secret").Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()

	testEngine(tokens, &fakeResolver{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsUserWithoutRestaurant(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	token, err := tokens.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	testEngine(tokens, &fakeResolver{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
