package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/permissions"
)

// Handlers groups the inventory endpoints
type Handlers struct {
	Items     *ItemHandler
	Alerts    *AlertHandler
	Dashboard *DashboardHandler
	Exports   *ExportHandler
}

// Mount registers the inventory API on r. Callers must install httputil.Identity first.
func (h *Handlers) Mount(r chi.Router) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httputil.RequirePermission(permissions.InventoryRead))
			r.Post("/items/status", h.Items.Status)
			r.Post("/alerts/derive", h.Alerts.Derive)
			r.Post("/dashboard/stats", h.Dashboard.Stats)
		})

		r.With(httputil.RequirePermission(permissions.InventoryAdjust)).
			Post("/movements/apply", h.Items.ApplyMovement)

		r.Route("/exports", func(r chi.Router) {
			r.With(httputil.RequireAnyPermission(permissions.InventoryRead, permissions.InventoryExport)).
				Get("/", h.Exports.Kinds)
			r.With(httputil.RequirePermission(permissions.InventoryExport)).
				Post("/{kind}", h.Exports.Export)
		})
	})
}
