package handler

import (
	"net/http"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// itemsRequest carries a snapshot of the caller's item collection
type itemsRequest struct {
	Items []domain.InventoryItem `json:"items" validate:"dive"`
}

// movementRequest pairs an item with the movement to apply to it
type movementRequest struct {
	Item     domain.InventoryItem `json:"item"`
	Movement domain.StockMovement `json:"movement"`
}

// ItemHandler handles item endpoints
type ItemHandler struct {
	service *service.InventoryService
	logger  *logger.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(svc *service.InventoryService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		service: svc,
		logger:  log,
	}
}

func decodeItems(r *http.Request) ([]domain.InventoryItem, error) {
	var req itemsRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		return nil, err
	}
	if err := httputil.Validate(req); err != nil {
		return nil, err
	}
	return req.Items, nil
}

// Status returns the items with their status recomputed
func (h *ItemHandler) Status(w http.ResponseWriter, r *http.Request) {
	items, err := decodeItems(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, h.service.Statuses(items))
}

// ApplyMovement applies one stock movement to an item
func (h *ItemHandler) ApplyMovement(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	result, err := h.service.ApplyMovement(r.Context(), req.Item, req.Movement)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}
