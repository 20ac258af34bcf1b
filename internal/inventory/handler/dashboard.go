package handler

import (
	"net/http"

	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	service *service.InventoryService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.InventoryService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  log,
	}
}

// Stats returns summary statistics for the posted items
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	items, err := decodeItems(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, h.service.Stats(items))
}
