package handler

import (
	"net/http"

	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// AlertHandler handles alert endpoints
type AlertHandler struct {
	service *service.InventoryService
	logger  *logger.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(svc *service.InventoryService, log *logger.Logger) *AlertHandler {
	return &AlertHandler{
		service: svc,
		logger:  log,
	}
}

// Derive returns the alerts for the posted items. Acknowledgment is not carried over.
func (h *AlertHandler) Derive(w http.ResponseWriter, r *http.Request) {
	items, err := decodeItems(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, h.service.Alerts(items))
}
