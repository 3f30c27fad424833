package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/inventory"
)

// InventoryHandler exposes the inventory ledger endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type newLotRequest struct {
	ItemName      string  `json:"itemName" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
	Unit          string  `json:"unit" binding:"required"`
	Category      string  `json:"category"`
	PurchasePrice float64 `json:"purchasePrice"`
	ExpiryDays    int     `json:"expiryDate" binding:"required"`
	EnteredBy     string  `json:"enteredBy"`
}

// Create registers a purchased lot.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req newLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	lot, err := h.svc.Add(c.Request.Context(), restaurantFrom(c), inventory.NewLot{
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		ExpiryDays:    req.ExpiryDays,
		EnteredBy:     req.EnteredBy,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// List returns every lot for the caller's restaurant.
func (h *InventoryHandler) List(c *gin.Context) {
	lots, err := h.svc.List(c.Request.Context(), restaurantFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lots)
}

type updateLotRequest struct {
	ItemName      string  `json:"itemName" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
	Unit          string  `json:"unit" binding:"required"`
	PurchasePrice float64 `json:"purchasePrice"`
	ExpiryDays    int     `json:"expiryDate" binding:"required"`
}

// Update replaces the mutable fields of a lot.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req updateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	lot, err := h.svc.Update(c.Request.Context(), restaurantFrom(c), id, models.LotUpdate{
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		ExpiryDate:    time.Now().UTC().AddDate(0, 0, req.ExpiryDays),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

// Delete removes a lot outright.
func (h *InventoryHandler) Delete(c *gin.Context) {
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
