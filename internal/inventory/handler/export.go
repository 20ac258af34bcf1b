package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/i18n"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// exportRequest is the body of a report export
type exportRequest struct {
	Items     []domain.InventoryItem `json:"items" validate:"dive"`
	Movements []domain.StockMovement `json:"movements" validate:"dive"`
	Alerts    []domain.StockAlert    `json:"alerts"`
	Options   export.Options         `json:"options"`
	Supplier  string                 `json:"supplier"`
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
}

// ExportHandler handles CSV export endpoints
type ExportHandler struct {
	service  *service.ExportService
	defaults export.Options
	logger   *logger.Logger
}

// NewExportHandler creates a new export handler. defaults fill options the body omits.
func NewExportHandler(svc *service.ExportService, defaults export.Options, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		service:  svc,
		defaults: defaults,
		logger:   log,
	}
}

// Kinds lists the available reports
func (h *ExportHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, export.Kinds())
}

// Export builds the report named in the path and serves it as a download
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind, err := export.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	body := exportRequest{Options: h.defaults}
	if err := httputil.DecodeJSONLocalized(r, &body); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	if err := httputil.Validate(body); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	start, err := service.ParseDay(body.StartDate, h.service.Location())
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	end, err := service.ParseDay(body.EndDate, h.service.Location())
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	req := service.ExportRequest{
		Request: export.Request{
			Kind:      kind,
			Items:     body.Items,
			Movements: body.Movements,
			Alerts:    body.Alerts,
			Options:   body.Options,
			Supplier:  body.Supplier,
		},
		StartDate:   start,
		EndDate:     end,
		RequestedBy: httputil.GetUserID(r.Context()),
	}
	if r.Header.Get("Accept-Language") != "" {
		req.Locale = i18n.GetLocaleFromContext(r.Context())
	}

	download := export.DeliveryFunc(func(_ context.Context, doc *export.Document) error {
		httputil.Attachment(w, doc.Filename, doc.ContentType, doc.Bytes())
		return nil
	})

	if _, err := h.service.Export(r.Context(), req, download); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
}
