package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/waste"
)

// WasteHandler exposes waste write-offs and their history.
type WasteHandler struct {
	svc    *waste.Service
	logger *zap.Logger
}

// NewWasteHandler constructs the HTTP handler adapter.
func NewWasteHandler(svc *waste.Service, logger *zap.Logger) *WasteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WasteHandler{svc: svc, logger: logger}
}

type wasteRequest struct {
	InventoryItem string  `json:"inventoryItem" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
	Reason        string  `json:"reason" binding:"required"`
	Description   string  `json:"description"`
}

// Create writes off spoiled or discarded stock.
func (h *WasteHandler) Create(c *gin.Context) {
	var req wasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	lotID, err := primitive.ObjectIDFromHex(req.InventoryItem)
	if err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput("invalid inventoryItem id"))
		return
	}

	record, err := h.svc.Record(c.Request.Context(), restaurantFrom(c), waste.WriteOff{
		LotID:       lotID,
		Quantity:    req.Quantity,
		Reason:      models.WasteReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns waste records, optionally bounded by from/to dates.
func (h *WasteHandler) List(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.History(c.Request.Context(), restaurantFrom(c), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
