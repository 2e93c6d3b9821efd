package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// StockMovementsHandler handles the stock movement history and manual
// adjustments.
type StockMovementsHandler struct {
	*BaseHandler
	inventory *inventory.Service
}

// NewStockMovementsHandler creates a stock movements handler.
func NewStockMovementsHandler(inv *inventory.Service) *StockMovementsHandler {
	return &StockMovementsHandler{BaseHandler: NewBaseHandler(), inventory: inv}
}

// List returns movements, filterable by product, type and date range.
// GET /stock-movements
func (h *StockMovementsHandler) List(c *gin.Context) {
	filter := inventory.MovementFilter{Limit: h.ParseIntQuery(c, "limit", 0)}

	if raw := c.Query("productId"); raw != "" {
		productID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId").WithDetail("value", raw))
			return
		}
		filter.ProductID = &productID
	}
	if raw := c.Query("type"); raw != "" {
		mvType := inventory.MovementType(raw)
		filter.Type = &mvType
	}
	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate").WithDetail("value", raw))
			return
		}
		filter.FromDate = &from
	}
	if raw := c.Query("toDate"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate").WithDetail("value", raw))
			return
		}
		filter.ToDate = &to
	}

	movements, err := h.inventory.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, movements)
}

// Create applies a manual stock adjustment and records the movement.
// A setStock value corrects to an absolute quantity; otherwise the signed
// delta derives from type and quantity.
// POST /stock-movements
func (h *StockMovementsHandler) Create(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId"))
		return
	}

	if req.SetStock != nil {
		movement, err := h.inventory.SetStock(c.Request.Context(), productID, *req.SetStock, req.Reason, req.Notes)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.Created(c, movement)
		return
	}

	if req.Quantity <= 0 {
		h.Error(c, apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity"))
		return
	}

	dir := req.Type.Direction()
	if dir == 0 {
		h.Error(c, apperror.NewValidation("movement type must carry a direction").
			WithDetail("field", "type").
			WithDetail("value", string(req.Type)))
		return
	}

	movement, err := h.inventory.Apply(c.Request.Context(), inventory.Adjustment{
		ProductID:   productID,
		Delta:       dir * req.Quantity,
		Type:        req.Type,
		Reason:      req.Reason,
		RelatedType: entity.RelatedManual,
		Notes:       req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, movement)
}
