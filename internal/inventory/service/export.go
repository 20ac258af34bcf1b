package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/events"
	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/pkg/errors"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// ExportSettings are the rendering defaults for every export
type ExportSettings struct {
	Location     *time.Location
	Locale       string
	ExpiryWindow time.Duration
}

// ExportRequest is a report request with the selection filters applied before building
type ExportRequest struct {
	export.Request
	// StartDate and EndDate bound the movements report by calendar day
	StartDate *time.Time
	EndDate   *time.Time
	// Locale overrides the default locale for date layouts
	Locale      string
	RequestedBy string
}

// ExportService builds reports and hands them to a delivery
type ExportService struct {
	settings  ExportSettings
	publisher *events.InventoryEventPublisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewExportService creates a new export service.
// A nil publisher disables events; a nil clock uses time.Now.
func NewExportService(settings ExportSettings, publisher *events.InventoryEventPublisher, log *logger.Logger, now func() time.Time) *ExportService {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.ExpiryWindow <= 0 {
		settings.ExpiryWindow = domain.DefaultExpiryWindow
	}
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		settings:  settings,
		publisher: publisher,
		logger:    log.WithComponent("export"),
		now:       now,
	}
}

// Location returns the timezone dates are rendered and filtered in
func (s *ExportService) Location() *time.Location {
	return s.settings.Location
}

// Build produces the document for req without delivering it
func (s *ExportService) Build(req ExportRequest) (*export.Document, error) {
	locale := s.settings.Locale
	if req.Locale != "" {
		locale = req.Locale
	}

	at := s.now()
	builder := export.NewBuilder(s.settings.Location, locale, func() time.Time { return at })

	r := req.Request
	switch r.Kind {
	case export.KindMovements:
		if req.StartDate != nil || req.EndDate != nil {
			r.Movements = domain.FilterMovements(r.Movements, req.StartDate, req.EndDate, s.settings.Location)
		}
	case export.KindAlerts:
		if len(r.Alerts) == 0 {
			r.Alerts = domain.DeriveAlertsWithin(r.Items, at, s.settings.ExpiryWindow)
		}
	}

	return builder.Build(r)
}

// Export builds the report and delivers it exactly once.
// A delivery failure is logged and returned as a DELIVERY_FAILED error.
func (s *ExportService) Export(ctx context.Context, req ExportRequest, delivery export.Delivery) (*export.Document, error) {
	doc, err := s.Build(req)
	if err != nil {
		return nil, err
	}

	if err := delivery.Deliver(ctx, doc); err != nil {
		s.logger.Error().
			Err(err).
			Str("report", string(doc.Kind)).
			Str("filename", doc.Filename).
			Msg("export delivery failed")
		return nil, errors.DeliveryFailed(err)
	}

	s.publisher.PublishReportExported(ctx, doc, req.RequestedBy)

	s.logger.Info().
		Str("report", string(doc.Kind)).
		Str("filename", doc.Filename).
		Int("rows", doc.Table.DataRows()).
		Int("bytes", len(doc.Content)).
		Str("requested_by", req.RequestedBy).
		Msg("report exported")

	return doc, nil
}

// ParseDay parses a range bound given as YYYY-MM-DD in loc, or as an RFC 3339 instant.
// An empty string is an open bound.
func ParseDay(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errors.BadRequest(fmt.Sprintf("invalid date %q: want YYYY-MM-DD", s))
	}
	return &t, nil
}
