package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/service/sales"
)

// SalesHandler exposes sale recording and sale history.
type SalesHandler struct {
	svc    *sales.Recorder
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc *sales.Recorder, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

type saleLineRequest struct {
	DishID   string `json:"dishId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type saleRequest struct {
	Dishes []saleLineRequest `json:"dishes" binding:"required"`
}

// Create records a sale, deducting ingredients from inventory.
func (h *SalesHandler) Create(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperror.NewInvalidInput(err.Error()))
		return
	}

	lines := make([]sales.Line, 0, len(req.Dishes))
	for _, l := range req.Dishes {
		id, err := primitive.ObjectIDFromHex(l.DishID)
		if err != nil {
			respondError(c, h.logger, apperror.NewInvalidInput("invalid dish id "+l.DishID))
			return
		}
		lines = append(lines, sales.Line{DishID: id, Quantity: l.Quantity})
	}

	sale, err := h.svc.Record(c.Request.Context(), restaurantFrom(c), lines)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// List returns recorded sales, optionally bounded by from/to dates.
func (h *SalesHandler) List(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	history, err := h.svc.History(c.Request.Context(), restaurantFrom(c), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
