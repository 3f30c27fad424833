package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/menu"
	"github.com/mamadbah2/resto/internal/service/suggestion"
)

// SuggestionHandler drives the temporary-dish workflow: generating dish
// ideas from expiring stock and publishing the ones the chef accepts.
type SuggestionHandler struct {
	svc    *suggestion.Service
	menu   *menu.Service
	logger *zap.Logger
}

// NewSuggestionHandler constructs the HTTP handler adapter.
func NewSuggestionHandler(svc *suggestion.Service, menuSvc *menu.Service, logger *zap.Logger) *SuggestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionHandler{svc: svc, menu: menuSvc, logger: logger}
}

// Suggest asks the generator for dishes built around soon-to-expire stock.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	result, err := h.svc.Suggest(c.Request.Context(), restaurantFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type tempDishRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Ingredients []models.Ingredient `json:"ingredients" binding:"required"`
	Price       float64             `json:"price" binding:"required"`
	Category    string              `json:"category"`
}

type publishRequest struct {
	Dishes []tempDishRequest `json:"dishes" binding:"required"`
}

// Publish adds accepted suggestions to the menu as ephemeral dishes. They
// drop off the menu automatically after a day.
func (h *SuggestionHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}
	if len(req.Dishes) == 0 {
		respondError(c, h.logger, apperror.NewInvalidInput("dishes must not be empty"))
		return
	}

	inputs := make([]menu.NewDish, 0, len(req.Dishes))
	for _, d := range req.Dishes {
		inputs = append(inputs, menu.NewDish{
			Name:        d.Name,
			Description: d.Description,
			Ingredients: d.Ingredients,
			Price:       d.Price,
			Category:    d.Category,
		})
	}

	ids, err := h.menu.AddEphemeralBatch(c.Request.Context(), restaurantFrom(c), inputs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": ids})
}
