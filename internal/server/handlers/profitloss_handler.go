package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/service/profitloss"
)

// ProfitLossHandler exposes daily profit computation and its history.
type ProfitLossHandler struct {
	svc    *profitloss.Service
	logger *zap.Logger
}

// NewProfitLossHandler constructs the HTTP handler adapter.
func NewProfitLossHandler(svc *profitloss.Service, logger *zap.Logger) *ProfitLossHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitLossHandler{svc: svc, logger: logger}
}

// Compute runs the day's profit and loss figures and persists the record.
func (h *ProfitLossHandler) Compute(c *gin.Context) {
	record, err := h.svc.Compute(c.Request.Context(), restaurantFrom(c), time.Now().UTC())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns profit and loss records, optionally bounded by from/to dates.
func (h *ProfitLossHandler) List(c *gin.Context) {
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
