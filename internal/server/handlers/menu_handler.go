package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/menu"
)

// MenuHandler exposes the menu catalog endpoints.
type MenuHandler struct {
	svc    *menu.Service
	logger *zap.Logger
}

// NewMenuHandler constructs the HTTP handler adapter.
func NewMenuHandler(svc *menu.Service, logger *zap.Logger) *MenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuHandler{svc: svc, logger: logger}
}

type dishRequest struct {
	Name               string              `json:"name" binding:"required"`
	Ingredients        []models.Ingredient `json:"ingredients" binding:"required"`
	Price              float64             `json:"price" binding:"required"`
	Category           string              `json:"category"`
	PrepTime           int                 `json:"prepTime"`
	Allergens          []string            `json:"allergens"`
	Description        string              `json:"description"`
	IsEphemeral        bool                `json:"isEphemeral"`
	EphemeralExpiresAt *time.Time          `json:"ephemeralExpiresAt"`
}

func (r dishRequest) toInput() menu.NewDish {
	return menu.NewDish{
		Name:               r.Name,
		Ingredients:        r.Ingredients,
		Price:              r.Price,
		Category:           r.Category,
		PrepTime:           r.PrepTime,
		Allergens:          r.Allergens,
		Description:        r.Description,
		IsEphemeral:        r.IsEphemeral,
		EphemeralExpiresAt: r.EphemeralExpiresAt,
	}
}

// Create adds a dish to the menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	dish, err := h.svc.Add(c.Request.Context(), restaurantFrom(c), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dish)
}

// List returns the active menu, ephemeral dishes included while they last.
func (h *MenuHandler) List(c *gin.Context) {
	dishes, err := h.svc.Active(c.Request.Context(), restaurantFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dishes)
}

// Update replaces a dish's fields.
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	dish, err := h.svc.Update(c.Request.Context(), restaurantFrom(c), id, req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

// Delete removes a dish from the menu.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), restaurantFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
